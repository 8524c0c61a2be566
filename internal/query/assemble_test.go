package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/consulta/internal/ir"
	"github.com/roach88/consulta/internal/queryir"
)

func TestParseSorts(t *testing.T) {
	tests := []struct {
		name       string
		directives []string
		want       []queryir.Sort
	}{
		{"default asc", []string{"nome"}, []queryir.Sort{{Column: "nome", Direction: queryir.Asc}}},
		{"explicit desc", []string{"idade DESC"}, []queryir.Sort{{Column: "idade", Direction: queryir.Desc}}},
		{"lowercase desc", []string{"idade desc"}, []queryir.Sort{{Column: "idade", Direction: queryir.Desc}}},
		{"unrecognized direction", []string{"idade sideways"}, []queryir.Sort{{Column: "idade", Direction: queryir.Asc}}},
		{"extra spaces", []string{"  nome   desc  "}, []queryir.Sort{{Column: "nome", Direction: queryir.Desc}}},
		{"unknown column dropped", []string{"nome", "preco DESC"}, []queryir.Sort{{Column: "nome", Direction: queryir.Asc}}},
		{"blank dropped", []string{"", "   "}, []queryir.Sort{}},
		{"order kept", []string{"status", "nome DESC", "id"}, []queryir.Sort{
			{Column: "status", Direction: queryir.Asc},
			{Column: "nome", Direction: queryir.Desc},
			{Column: "id", Direction: queryir.Asc},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSorts(tt.directives, pessoas))
		})
	}
}

func TestProject(t *testing.T) {
	assert.Equal(t, []string{"nome"}, Project([]string{"nome", "senha_secreta"}, pessoas))
	assert.Equal(t, []string{"login", "id"}, Project([]string{"login", "id", "login"}, pessoas))
	assert.Nil(t, Project([]string{"senha_secreta"}, pessoas))
	assert.Nil(t, Project(nil, pessoas))
}

func TestRequestLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, Request{}.Limit())
	assert.Equal(t, 0, Request{}.WithLimit(0).Limit())
	assert.Equal(t, 1000, Request{}.WithLimit(1000).Limit())
}

func TestBuild(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{
		"filtros": [{"coluna": "idade", "valor": 30, "filtro": ">"}],
		"ordenacao": ["nome", "preco DESC"],
		"colunas": ["nome", "senha_secreta"],
		"limite": 10
	}`), &req))

	sel, err := Build(req, pessoas)
	require.NoError(t, err)

	assert.Equal(t, queryir.Select{
		From:    "pessoas",
		Columns: []string{"nome"},
		Filter: queryir.And{Predicates: []queryir.Predicate{
			queryir.Compare{Field: "idade", Op: queryir.OpGt, Value: ir.Int(30)},
		}},
		OrderBy: []queryir.Sort{{Column: "nome", Direction: queryir.Asc}},
		Limit:   10,
	}, sel)
	assert.NoError(t, queryir.Validate(sel))
}

func TestBuild_Defaults(t *testing.T) {
	sel, err := Build(Request{}, pessoas)
	require.NoError(t, err)

	assert.Equal(t, "pessoas", sel.From)
	assert.Nil(t, sel.Filter)
	assert.Nil(t, sel.Columns)
	assert.Empty(t, sel.OrderBy)
	assert.Equal(t, 25, sel.Limit)
}

func TestBuild_PropagatesCompileError(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"filtros": {"coluna": "nome", "valor": "a", "filtro": "~="}}`), &req))

	_, err := Build(req, pessoas)
	assert.True(t, IsUnknownOperator(err))
}

func TestRequest_YAML(t *testing.T) {
	src := `
filtros:
  - - {coluna: status, valor: ativo, ou: true}
    - {coluna: status, valor: pendente, ou: true}
  - {coluna: idade, valor: 30, filtro: ">"}
ordenacao: [nome]
limite: 5
`
	var req Request
	require.NoError(t, yaml.Unmarshal([]byte(src), &req))

	sel, err := Build(req, pessoas)
	require.NoError(t, err)

	and, ok := sel.Filter.(queryir.And)
	require.True(t, ok)
	require.Len(t, and.Predicates, 2)
	assert.IsType(t, queryir.Or{}, and.Predicates[0])
	assert.Equal(t, 5, sel.Limit)
}
