package sweep

import "fmt"

// ParseError reports a malformed sweep expression, pointing at the byte
// offset of the offending token.
type ParseError struct {
	Pos    int
	Reason string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Reason)
}

// RangeError reports a structurally valid but unsatisfiable numeric range,
// such as a zero step or bounds inverted relative to the step sign.
type RangeError struct {
	Reason string
}

// Error implements the error interface for RangeError.
func (e *RangeError) Error() string {
	return e.Reason
}

// UnknownScaleError reports an engineering-notation suffix letter that is
// not in the SI table.
type UnknownScaleError struct {
	Pos    int
	Suffix string
}

// Error implements the error interface for UnknownScaleError.
func (e *UnknownScaleError) Error() string {
	return fmt.Sprintf("unknown scale suffix %q", e.Suffix)
}
