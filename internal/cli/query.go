package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/consulta/internal/config"
	"github.com/roach88/consulta/internal/engine"
	"github.com/roach88/consulta/internal/entity"
	"github.com/roach88/consulta/internal/query"
	"github.com/roach88/consulta/internal/querysql"
	"github.com/roach88/consulta/internal/schema"
	"github.com/roach88/consulta/internal/store"
)

// Entities lists the entity names accepted by the query command.
var Entities = []string{"usuarios", "perfis"}

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	DB      string // database path; defaults to database.path from config
	Explain bool   // print SQL and params instead of executing
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <entity> <request-file>",
		Short: "Run a filtered query from a request document",
		Long: `Compile a JSON or YAML request document against an entity and run it.

Entities: ` + strings.Join(Entities, ", ") + `

With --explain the compiled SQL and its parameters are printed and the
database is not opened.`,
		Args:          cobra.ExactArgs(2),
		ValidArgs:     Entities,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "print the compiled SQL instead of executing it")

	return cmd
}

func runQuery(ctx context.Context, opts *QueryOptions, name, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	req, err := LoadRequest(path)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Loaded %s", path)

	switch name {
	case "usuarios":
		return queryEntity(ctx, opts, formatter, entity.UsuarioSchema, req)
	case "perfis":
		return queryEntity(ctx, opts, formatter, entity.PerfilSchema, req)
	default:
		return formatter.Fail(ExitCommandError, ErrCodeUnknownQuery,
			fmt.Sprintf("unknown entity %q: must be one of %v", name, Entities), nil)
	}
}

func queryEntity[T any](ctx context.Context, opts *QueryOptions, f *OutputFormatter, d *schema.Descriptor[T], req query.Request) error {
	sel, err := query.Build(req, d)
	if err != nil {
		return failQuery(f, err)
	}

	if opts.Explain {
		sqlStr, params, err := querysql.NewSQLCompiler(d).Compile(sel)
		if err != nil {
			return failQuery(f, err)
		}
		return f.Success(ExplainResult{SQL: sqlStr, Params: params})
	}

	dbPath, err := opts.databasePath()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "cannot open store", err.Error())
	}
	defer s.Close()
	f.VerboseLog("Querying %s in %s", d.Table(), dbPath)

	rows, err := engine.Find(ctx, s, d, sel)
	if err != nil {
		return failQuery(f, err)
	}
	return f.Success(QueryResult[T]{Entity: d.Table(), Rows: rows})
}

func (o *QueryOptions) databasePath() (string, error) {
	if o.DB != "" {
		return o.DB, nil
	}
	cfg, err := config.Load(o.Config)
	if err != nil {
		return "", err
	}
	return cfg.Database.Path, nil
}

// failQuery reports a query error. Rejected requests exit with
// ExitFailure, store failures with ExitCommandError.
func failQuery(f *OutputFormatter, err error) error {
	var qe *query.Error
	if !errors.As(err, &qe) {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	if qe.Code == query.ErrCodeStoreError {
		return f.Fail(ExitCommandError, ErrCodeStore, qe.Message, errorDetails(qe.Err))
	}
	return f.Fail(ExitFailure, string(qe.Code), qe.Message, map[string]string{
		"column":   qe.Column,
		"operator": qe.Operator,
	})
}

func errorDetails(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}

// ExplainResult is the output of query --explain.
type ExplainResult struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// Text renders the statement followed by its parameters.
func (r ExplainResult) Text() string {
	return querysql.Explain(r.SQL, r.Params)
}

// QueryResult is the output of an executed query.
type QueryResult[T any] struct {
	Entity string `json:"entity"`
	Rows   []T    `json:"rows"`
}

// Text renders the rows as indented JSON followed by a count.
func (r QueryResult[T]) Text() string {
	data, err := json.MarshalIndent(r.Rows, "", "  ")
	if err != nil {
		return fmt.Sprintf("error rendering rows: %v\n", err)
	}
	return fmt.Sprintf("%s\n(%d row(s) from %s)\n", data, len(r.Rows), r.Entity)
}
