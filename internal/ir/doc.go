// Package ir provides the value types carried by filter leaves.
//
// Filter values arrive as decoded JSON or YAML (any). They are converted once,
// at the request boundary, into the sealed Value family so that the rest of
// the pipeline (compiler, SQL backend) can switch exhaustively on a closed set
// of types instead of inspecting arbitrary Go values.
//
// Key design constraints:
//   - Strings are NFC normalized on conversion
//   - JSON numbers without a fractional part become Int, others Float
//   - Objects are not filter values; converting one is an error
//   - ir imports nothing internal
package ir
