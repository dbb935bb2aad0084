package record

import "fmt"

// ParseError reports a line of a recognized tag that could not be decoded.
type ParseError struct {
	Tag string
	// Line is the 1-based line number within the source, 0 when unknown.
	Line int
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot parse %s record on line %d %q: %v", e.Tag, e.Line, e.Raw, e.Err)
	}
	return fmt.Sprintf("cannot parse %s record %q: %v", e.Tag, e.Raw, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}
