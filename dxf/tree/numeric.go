package tree

import (
	"regexp"
	"strconv"

	"github.com/viant/dxfcut/errs"
)

// FormatFloat renders a computed coordinate/angle back into DXF's
// numeric textual form, used whenever a transform (flatten, boil-down)
// synthesises new attribute values.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// floatGrammar matches "optional sign, integer or fractional digits,
// optional exponent" (spec.md §4.1 "Numeric semantics"); Go's hex-float
// and Inf/NaN spellings are deliberately rejected.
var floatGrammar = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseFloat parses a DXF numeric value, deferred from the parser per
// §4.1: values are stored as strings and only converted when an
// operation needs a number.
func ParseFloat(op, s string) (float64, error) {
	if !floatGrammar.MatchString(s) {
		return 0, errs.New(errs.BadInput, op, "not a valid number: %q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Wrap(errs.BadInput, op, err)
	}
	return f, nil
}

// ParseInt parses a DXF integer-flagged value (int/int_32/int_8 ranges).
func ParseInt(op, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Wrap(errs.BadInput, op, err)
	}
	return n, nil
}

// ParseBool parses a DXF boolean-flagged value (290-299 range): "0"/"1".
func ParseBool(op, s string) (bool, error) {
	n, err := ParseInt(op, s)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
