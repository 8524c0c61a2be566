package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64
	Nome  string
	Preco float64
}

var itemSchema = MustNew("itens",
	Col("id", func(i *item) any { return &i.ID }),
	Col("nome", func(i *item) any { return &i.Nome }),
	Col("preco", func(i *item) any { return &i.Preco }),
)

func TestDescriptor_Lookup(t *testing.T) {
	assert.Equal(t, "itens", itemSchema.Table())
	assert.True(t, itemSchema.Has("nome"))
	assert.False(t, itemSchema.Has("senha"))
	assert.False(t, itemSchema.Has(""))
	assert.Equal(t, []string{"id", "nome", "preco"}, itemSchema.Names())
}

func TestDescriptor_SatisfiesColumns(t *testing.T) {
	var cols Columns = itemSchema
	assert.Equal(t, "itens", cols.Table())
}

func TestDescriptor_NamesIsACopy(t *testing.T) {
	names := itemSchema.Names()
	names[0] = "mutated"
	assert.Equal(t, "id", itemSchema.Names()[0])
}

func TestDescriptor_TargetsWriteIntoEntity(t *testing.T) {
	var it item
	targets, err := itemSchema.Targets(&it, []string{"nome", "preco"})
	require.NoError(t, err)
	require.Len(t, targets, 2)

	*targets[0].(*string) = "caneta"
	*targets[1].(*float64) = 2.5

	assert.Equal(t, item{Nome: "caneta", Preco: 2.5}, it)

	_, err = itemSchema.Targets(&it, []string{"desconhecida"})
	assert.Error(t, err)
}

func TestDescriptor_GetAndRow(t *testing.T) {
	it := item{ID: 3, Nome: "lapis", Preco: 1}

	v, ok := itemSchema.Get(&it, "nome")
	require.True(t, ok)
	assert.Equal(t, "lapis", v)

	_, ok = itemSchema.Get(&it, "senha")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"id": int64(3), "nome": "lapis"},
		itemSchema.Row(&it, []string{"id", "nome", "senha"}))
}

func TestNew_Errors(t *testing.T) {
	ref := func(i *item) any { return &i.ID }

	_, err := New[item]("", Col("id", ref))
	assert.Error(t, err)

	_, err = New[item]("itens")
	assert.Error(t, err)

	_, err = New("itens", Col("", ref))
	assert.Error(t, err)

	_, err = New("itens", Column[item]{Name: "id"})
	assert.Error(t, err)

	_, err = New("itens", Col("id", ref), Col("id", ref))
	assert.Error(t, err)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew[item]("itens")
	})
}
