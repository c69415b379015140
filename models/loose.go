package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseFloat is a number that may arrive as a JSON number, a numeric string or null.
// Set reports whether a usable value was present.
type LooseFloat struct {
	Value float64
	Set   bool
}

// Float wraps a known value.
func Float(v float64) LooseFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return LooseFloat{}
	}
	return LooseFloat{Value: v, Set: true}
}

// Or returns the value, or def when nothing usable was supplied.
func (f LooseFloat) Or(def float64) float64 {
	if !f.Set {
		return def
	}
	return f.Value
}

func (f *LooseFloat) UnmarshalJSON(b []byte) error {
	*f = LooseFloat{}
	v, ok := parseLooseNumber(b)
	if ok {
		*f = Float(v)
	}
	return nil
}

func (f LooseFloat) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// LooseInt is the integer counterpart of LooseFloat. Fractions are rounded.
type LooseInt struct {
	Value int
	Set   bool
}

// Int wraps a known value.
func Int(v int) LooseInt {
	return LooseInt{Value: v, Set: true}
}

// Or returns the value, or def when nothing usable was supplied.
func (i LooseInt) Or(def int) int {
	if !i.Set {
		return def
	}
	return i.Value
}

func (i *LooseInt) UnmarshalJSON(b []byte) error {
	*i = LooseInt{}
	v, ok := parseLooseNumber(b)
	if ok && math.Abs(v) < math.MaxInt32 {
		*i = Int(int(math.Round(v)))
	}
	return nil
}

func (i LooseInt) MarshalJSON() ([]byte, error) {
	if !i.Set {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// parseLooseNumber never fails the surrounding decode; junk is reported as absent.
func parseLooseNumber(b []byte) (float64, bool) {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if raw == "" {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
