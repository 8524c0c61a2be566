package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/consulta/internal/query"
)

// LoadError represents an error that occurred while reading a request file.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// isYAML reports whether path names a YAML document. Everything else is
// read as JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func readRequestFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("request file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("read %s", path), Err: err}
	}
	return data, nil
}

// LoadRequest reads a request document (JSON, or YAML by extension).
func LoadRequest(path string) (query.Request, error) {
	data, err := readRequestFile(path)
	if err != nil {
		return query.Request{}, err
	}

	var req query.Request
	if isYAML(path) {
		err = yaml.Unmarshal(data, &req)
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
	}
	if err != nil {
		return query.Request{}, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decode %s", path), Err: err}
	}
	return req, nil
}

// loadRaw reads a request document as untyped data for schema checks.
// JSON is valid YAML, so one decoder serves both.
func loadRaw(path string) (any, error) {
	data, err := readRequestFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Message: fmt.Sprintf("decode %s", path), Err: err}
	}
	return raw, nil
}
