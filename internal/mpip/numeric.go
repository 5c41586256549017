package mpip

import (
	"regexp"
	"strconv"
)

// Kind is the classification of a token by Coerce.
type Kind int

const (
	NotNumeric Kind = iota
	Integer
	Float
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "not-numeric"
	}
}

// AggregateMarker is the token mpiP writes in a rank column for the row that
// summarizes all ranks. Coerce reports it as NotNumeric; callers translate
// it into model.AggregateTask.
const AggregateMarker = "*"

var (
	integerRe = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatRe   = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Number is the tagged result of Coerce.
type Number struct {
	Kind  Kind
	Int   int
	Float float64
}

// Coerce classifies a single whitespace-free token. It never fails: tokens
// that are not plain decimal numbers are reported as NotNumeric, including
// "inf", "nan" and hexadecimal forms that strconv would otherwise accept.
// Integers too large for int are reported as Float.
func Coerce(tok string) Number {
	if integerRe.MatchString(tok) {
		if v, err := strconv.Atoi(tok); err == nil {
			return Number{Kind: Integer, Int: v, Float: float64(v)}
		}
	}
	if floatRe.MatchString(tok) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return Number{Kind: Float, Float: v}
		}
	}
	return Number{Kind: NotNumeric}
}

// IsNumericLike reports whether tok ends a row label.
func IsNumericLike(tok string) bool {
	return Coerce(tok).Kind != NotNumeric
}

// AsInt returns the value when the token was an integer.
func (n Number) AsInt() (int, bool) {
	if n.Kind != Integer {
		return 0, false
	}
	return n.Int, true
}

// AsFloat returns the value when the token was an integer or a float.
func (n Number) AsFloat() (float64, bool) {
	if n.Kind == NotNumeric {
		return 0, false
	}
	return n.Float, true
}
