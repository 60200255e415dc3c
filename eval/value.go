package eval

import (
	"math"
	"strconv"
)

// Value is the result of evaluating an expression: a Number or a Bool.
type Value interface {
	String() string
	// TypeName names the kind of value in error messages.
	TypeName() string
}

// Number holds both integral and fractional values.
type Number float64

// String prints integral values without a fractional part and other values
// with the shortest decimal that round-trips.
func (n Number) String() string {
	f := float64(n)
	switch {
	case f == 0:
		// also covers -0
		return "0"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (n Number) TypeName() string {
	return "number"
}

var _ Value = Number(0)

type Bool bool

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (b Bool) TypeName() string {
	return "boolean"
}

var _ Value = Bool(false)
