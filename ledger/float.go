package ledger

import (
	"math"
	"strconv"
)

// Float is an optional float64. The reference ledger needs to tell
// "not computable yet" apart from "computed as zero", so absent values are
// carried explicitly instead of as zero (or a blank-string sentinel).
type Float struct {
	Value float64
	Set   bool
}

// F wraps a present value.
func F(v float64) Float {
	return Float{Value: v, Set: true}
}

// Round returns the value rounded to places decimal places. Unset values
// stay unset.
func (f Float) Round(places int) Float {
	if !f.Set {
		return f
	}
	pow := math.Pow10(places)
	return F(math.Round(f.Value*pow) / pow)
}

// String renders the value for tabular output, empty when unset.
func (f Float) String() string {
	if !f.Set {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
