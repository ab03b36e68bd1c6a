// Package player contains the player record model and the statistic catalog.
package player

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is an optional numeric statistic. The zero value is unknown.
// A Value never holds NaN or an infinity.
type Value struct {
	v  float64
	ok bool
}

// Known returns a Value holding v. Non-finite inputs yield an unknown Value.
func Known(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Unknown returns the missing/unparsable Value.
func Unknown() Value { return Value{} }

// Get returns the number and whether it is known.
func (v Value) Get() (float64, bool) { return v.v, v.ok }

// IsKnown reports whether the value holds a finite number.
func (v Value) IsKnown() bool { return v.ok }

// Or returns the number, or fallback when unknown.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

// String formats known values without trailing zeros and unknown ones as "—".
func (v Value) String() string {
	if !v.ok {
		return "—"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// MarshalJSON encodes unknown values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}
