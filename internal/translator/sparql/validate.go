package sparql

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedQuery = errors.New("malformed query")

// Validate performs the structural check applied to every query: it must
// open with PREFIX or SELECT, contain a WHERE body and keep its braces
// balanced.
func Validate(query string) error {
	trimmed := strings.TrimSpace(query)
	upper := strings.ToUpper(trimmed)

	if !strings.HasPrefix(upper, "PREFIX") && !strings.HasPrefix(upper, "SELECT") {
		return fmt.Errorf("%w: must start with PREFIX or SELECT", ErrMalformedQuery)
	}
	if !strings.Contains(upper, "WHERE") {
		return fmt.Errorf("%w: missing WHERE clause", ErrMalformedQuery)
	}

	depth := 0
	for _, r := range trimmed {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected closing brace", ErrMalformedQuery)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed braces", ErrMalformedQuery, depth)
	}
	return nil
}
