package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Decimal is a currency or percentage amount.
//
// The API serializes decimal fields inconsistently: numbers from some
// endpoints, quoted strings from others. Decimal accepts both. Internal
// arithmetic keeps full float precision; rounding to two decimals happens
// only at render time.
type Decimal float64

// UnmarshalJSON accepts both 12.5 and "12.50". Null and the empty string
// decode to zero.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*d = Decimal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(d))
}

// Float returns the amount as a float64.
func (d Decimal) Float() float64 {
	return float64(d)
}
