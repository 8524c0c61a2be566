package harness

import "fmt"

// checkExpect compares a step outcome with its expectation and returns one
// message per mismatch. A step without expectation only has to succeed.
func checkExpect(e *Expect, sr StepResult) []string {
	if e == nil {
		if sr.Error != "" {
			return []string{fmt.Sprintf("unexpected error %s", sr.Error)}
		}
		return nil
	}

	if e.Error != "" {
		if sr.Error != e.Error {
			return []string{fmt.Sprintf("expected error %s, got %q", e.Error, sr.Error)}
		}
		return nil
	}
	if sr.Error != "" {
		return []string{fmt.Sprintf("unexpected error %s", sr.Error)}
	}

	var msgs []string
	if e.Count != nil && len(sr.Rows) != *e.Count {
		msgs = append(msgs, fmt.Sprintf("expected %d row(s), got %d", *e.Count, len(sr.Rows)))
	}

	if e.Column != "" {
		got := make([]any, 0, len(sr.Rows))
		for i, row := range sr.Rows {
			v, ok := row[e.Column]
			if !ok {
				msgs = append(msgs, fmt.Sprintf("row %d: column %q not projected", i, e.Column))
				return msgs
			}
			got = append(got, v)
		}
		if !sameValues(e.Values, got) {
			msgs = append(msgs, fmt.Sprintf("column %s: expected %v, got %v", e.Column, e.Values, got))
		}
	}

	return msgs
}

// sameValues compares by printed form, so YAML ints match int64 columns.
func sameValues(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if fmt.Sprint(want[i]) != fmt.Sprint(got[i]) {
			return false
		}
	}
	return true
}
