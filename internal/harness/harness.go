package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/consulta/internal/engine"
	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/querysql"
	"github.com/roach88/consulta/internal/schema"
	"github.com/roach88/consulta/internal/store"
	"github.com/roach88/consulta/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database. The returned error
// reports infrastructure failures (store, seeding); unmet expectations are
// recorded in the Result instead.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	clock := testutil.NewStepClock(time.Second)
	st, err := store.Open(":memory:", store.WithClock(clock.Now))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := seed(ctx, st, scenario.Seed); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	result := &Result{}
	for i, step := range scenario.Steps {
		sr := executeStep(ctx, st, step)
		result.Steps = append(result.Steps, sr)

		for _, msg := range checkExpect(step.Expect, sr) {
			result.Errors = append(result.Errors, fmt.Sprintf("steps[%d]: %s", i, msg))
		}
	}
	result.Pass = len(result.Errors) == 0

	return result, nil
}

func seed(ctx context.Context, st *store.Store, s *Seed) error {
	if s == nil {
		s = &Seed{Usuarios: testutil.DefaultUsuarios, Perfis: testutil.DefaultPerfis}
	}

	for _, p := range s.Perfis {
		if _, err := st.CreatePerfil(ctx, p); err != nil {
			return err
		}
	}

	for _, u := range s.Usuarios {
		senha := u.Senha
		if senha == "" {
			senha = testutil.SeedPassword
		}
		hash, err := testutil.Passwords.Hash(senha)
		if err != nil {
			return err
		}
		if _, err := st.CreateUsuario(ctx, u, hash); err != nil {
			return err
		}
	}
	return nil
}

func executeStep(ctx context.Context, q store.Querier, step Step) StepResult {
	switch step.Entity {
	case "usuarios":
		return runStep(ctx, q, step.Entity, entity.UsuarioSchema, step.Request)
	case "perfis":
		return runStep(ctx, q, step.Entity, entity.PerfilSchema, step.Request)
	default:
		return StepResult{Entity: step.Entity, Error: fmt.Sprintf("unknown entity %q", step.Entity)}
	}
}

// runStep records results under the step's entity name, not the table name
// (perfis is stored in table perfil).
func runStep[T any](ctx context.Context, q store.Querier, name string, d *schema.Descriptor[T], req query.Request) StepResult {
	sr := StepResult{Entity: name}

	sel, err := query.Build(req, d)
	if err != nil {
		sr.Error = errorCode(err)
		return sr
	}

	sr.SQL, sr.Params, err = querysql.NewSQLCompiler(d).Compile(sel)
	if err != nil {
		sr.Error = err.Error()
		return sr
	}

	found, err := engine.Find(ctx, q, d, sel)
	if err != nil {
		sr.Error = errorCode(err)
		return sr
	}

	columns := sel.Columns
	if len(columns) == 0 {
		columns = d.Names()
	}
	sr.Rows = make([]map[string]any, 0, len(found))
	for i := range found {
		sr.Rows = append(sr.Rows, d.Row(&found[i], columns))
	}
	return sr
}

func errorCode(err error) string {
	var qe *query.Error
	if errors.As(err, &qe) {
		return string(qe.Code)
	}
	return err.Error()
}
