// Package output renders command results for the terminal: indented JSON,
// optionally filtered through a JMESPath expression.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// ValidateQuery checks a JMESPath expression before any request is made.
// An empty expression is valid and means "no filtering".
func ValidateQuery(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return fmt.Errorf("invalid query %q: %w", expr, err)
	}
	return nil
}

// Query applies a JMESPath expression to a value. The value is round-
// tripped through JSON first so the expression sees the wire field names,
// not Go struct fields.
func Query(expr string, value any) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("output: marshal for query: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("output: remarshal for query: %w", err)
	}

	result, err := jmespath.Search(expr, generic)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return result, nil
}

// RenderJSON writes a value as indented JSON, after applying an optional
// JMESPath filter.
func RenderJSON(w io.Writer, value any, expr string) error {
	filtered, err := Query(expr, value)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(filtered); err != nil {
		return fmt.Errorf("output: encode: %w", err)
	}
	return nil
}
