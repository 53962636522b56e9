package processor

import "fmt"

// ParseError is returned when an event or a recording file cannot be decoded.
type ParseError struct {
	// Source names what was being parsed, e.g. an object URL or an event field.
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
