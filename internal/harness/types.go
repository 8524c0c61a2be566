package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step met its expectation.
	Pass bool

	// Steps holds one entry per executed step, in order.
	Steps []StepResult

	// Errors lists unmet expectations as "steps[i]: ..." messages.
	Errors []string
}

// StepResult captures one executed query.
type StepResult struct {
	Entity string
	SQL    string
	Params []any

	// Rows holds the projected columns of each returned row.
	Rows []map[string]any

	// Error is the query error code, or the error text for failures
	// outside the query engine.
	Error string
}
