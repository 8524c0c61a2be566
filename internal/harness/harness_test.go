package harness

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/filter"
	"github.com/roach88/consulta/internal/query"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestRun_DefaultSeed(t *testing.T) {
	scenario := &Scenario{
		Name:        "default_seed",
		Description: "counts the default rows",
		Steps: []Step{
			{Entity: "usuarios", Request: query.Request{}.WithLimit(100), Expect: &Expect{Count: intPtr(4)}},
			{Entity: "perfis", Request: query.Request{}, Expect: &Expect{Count: intPtr(3)}},
			{
				Entity:  "perfis",
				Request: query.Request{Filtros: filter.Group{filter.NewLeaf("id", filter.OpIn, 1)}},
				Expect:  &Expect{Error: "INVALID_FILTER_VALUE"},
			},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	require.Len(t, result.Steps, 3)

	// Steps are labelled with the entity name, even though perfis lives in
	// table perfil.
	assert.Equal(t, "usuarios", result.Steps[0].Entity)
	assert.Equal(t, "perfis", result.Steps[1].Entity)
	assert.Contains(t, result.Steps[1].SQL, `FROM "perfil"`)
	assert.Equal(t, "perfis", result.Steps[2].Entity)
}

func TestRun_RecordsUnmetExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "unmet",
		Description: "expects the wrong rows",
		Steps: []Step{
			{
				Entity: "usuarios",
				Request: query.Request{
					Filtros: filter.Group{filter.Eq("login", "ana")},
					Colunas: []string{"login"},
				},
				Expect: &Expect{Column: "login", Values: []any{"bruno"}},
			},
			{
				Entity:  "usuarios",
				Request: query.Request{Filtros: filter.Group{filter.NewLeaf("id", "between", 1)}},
			},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "steps[0]: column login")
	assert.Equal(t, "steps[1]: unexpected error UNKNOWN_OPERATOR", result.Errors[1])
}

func TestRun_SeedFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "duplicate",
		Description: "seeds a duplicate login",
		Seed: &Seed{Usuarios: []entity.NovoUsuario{
			{Nome: "Ana", Login: "ana", Perfil: "admin"},
			{Nome: "Outra Ana", Login: "ana", Perfil: "admin"},
		}},
		Steps: []Step{{Entity: "usuarios"}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")
}

func TestRender(t *testing.T) {
	result := &Result{Steps: []StepResult{
		{Entity: "perfis", SQL: `SELECT "nome" FROM "perfil" LIMIT ?`, Params: []any{25}, Rows: []map[string]any{{"nome": "admin"}}},
		{Entity: "usuarios", Error: "UNKNOWN_OPERATOR"},
	}}

	want := "scenario: exemplo\n" +
		"\n[1] perfis\n" +
		"SELECT \"nome\" FROM \"perfil\" LIMIT ?\n-- params: [25]\n" +
		"rows: 1\n{\"nome\":\"admin\"}\n" +
		"\n[2] usuarios\nerror: UNKNOWN_OPERATOR\n"
	assert.Equal(t, want, Render("exemplo", result))
}

func intPtr(n int) *int { return &n }
