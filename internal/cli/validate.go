package cli

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"
)

//go:embed schema/request.cue
var requestSchema string

// ValidationResult holds the outcome of a request document check.
type ValidationResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Text renders the result for humans.
func (r ValidationResult) Text() string {
	if r.Valid {
		return fmt.Sprintf("✓ %s is a valid request\n", r.File)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s has %d error(s):\n", r.File, len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  - %s\n", e)
	}
	return b.String()
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <request-file>",
		Short: "Check a request document against the request schema",
		Long: `Check a JSON or YAML request document against the request schema
without touching a database.

Unknown keys, operators outside the supported set, non-boolean "ou" flags
and negative limits are reported. Columns are not checked: unknown columns
are ignored at query time.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	raw, err := loadRaw(path)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Loaded %s", path)

	problems, err := ValidateDocument(raw)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result := ValidationResult{File: path, Valid: len(problems) == 0, Errors: problems}
	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.Error(ErrCodeSchema, "invalid request document", result); err != nil {
				return err
			}
		} else if err := formatter.Success(result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d schema error(s)", ErrCodeSchema, len(problems)))
	}
	return formatter.Success(result)
}

// ValidateDocument checks decoded request data against the embedded
// schema and returns one message per violation. The error is non-nil
// only when the schema itself cannot be built.
func ValidateDocument(raw any) ([]string, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(requestSchema, cue.Filename("request.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Requisicao"))

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return []string{err.Error()}, nil
	}

	err := def.Unify(doc).Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}

	var problems []string
	for _, e := range cueerrors.Errors(err) {
		problems = append(problems, describe(e))
	}
	if len(problems) == 0 {
		problems = append(problems, err.Error())
	}
	return problems, nil
}

func describe(e cueerrors.Error) string {
	format, args := e.Msg()
	msg := fmt.Sprintf(format, args...)
	if path := e.Path(); len(path) > 0 {
		return strings.Join(path, ".") + ": " + msg
	}
	return msg
}

// failLoad reports a request file error.
func failLoad(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		var details any
		if loadErr.Err != nil {
			details = loadErr.Err.Error()
		}
		exitCode := ExitCommandError
		if loadErr.Code == ErrCodeDecode {
			exitCode = ExitFailure
		}
		return formatter.Fail(exitCode, loadErr.Code, loadErr.Message, details)
	}
	return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}
