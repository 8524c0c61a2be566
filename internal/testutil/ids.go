package testutil

// FixedIDGenerator returns the same request id every time.
//
// Production code generates UUIDs; tests swap this in so log lines and
// response headers can be asserted exactly.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator. If id is empty, Generate
// returns "test-request-id".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-request-id"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
