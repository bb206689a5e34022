package sieve

import (
	"fmt"
	"strings"

	gosieve "github.com/foxcpp/go-sieve"
)

// Validate loads the rendered script with a Sieve interpreter. Extensions
// the interpreter does not implement are reported like syntax errors, so a
// failure on "body" or "date" scripts does not mean the server rejects them.
func Validate(s SieveScript) error {
	if _, err := gosieve.Load(strings.NewReader(s.Content()), gosieve.DefaultOptions()); err != nil {
		return fmt.Errorf("sieve script %q: %w", s.Name, err)
	}
	return nil
}
