// Package types provides the typed records shared by the extraction, calculation
// and report composition packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Decimal is a number entered as text on a form. Both "," and "." are accepted
// as the decimal separator. In JSON it may be written as a string or a number.
type Decimal string

// UnmarshalJSON accepts "2,5", "2.5", 2.5 and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

// IsBlank reports whether no value was entered.
func (d Decimal) IsBlank() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Parse returns the numeric value and whether the text was a valid number.
func (d Decimal) Parse() (float64, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Float returns the value, or 0 when it is blank or unparsable.
func (d Decimal) Float() float64 {
	f, _ := d.Parse()
	return f
}

// Int returns the value truncated toward zero, or 0 when it is blank or unparsable.
func (d Decimal) Int() int {
	return int(d.Float())
}

// String returns the value as entered.
func (d Decimal) String() string {
	return strings.TrimSpace(string(d))
}
