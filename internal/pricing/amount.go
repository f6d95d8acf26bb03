package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a money or percentage value to two decimals, halves away
// from zero. Use it only where a value is shown or stored, never between
// chained conversions.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Amount is a non-negative money value as entered by the seller. It decodes
// from JSON numbers, numeric strings, empty strings and null, so snapshots
// restored from storage or form fields never fail to load.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := looseNumber(data)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Quantity is a unit count. Zero or negative values count as one unit.
type Quantity int

// Units returns the number of units the quantity stands for.
func (q Quantity) Units() int {
	if q <= 0 {
		return 1
	}
	return int(q)
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	v, err := looseNumber(data)
	if err != nil {
		return err
	}
	*q = Quantity(math.Trunc(v))
	return nil
}

// looseNumber reads a JSON number or string. Blank, null and non-numeric
// strings read as 0.
func looseNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nil
		}
		return v, nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}
