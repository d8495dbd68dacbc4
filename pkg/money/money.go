// Package money holds monetary amounts as integer cents to keep
// aggregation exact.
package money

import (
	"fmt"
	"math"
)

type Cents int64

// FromFloat converts a decimal amount (as found in JSON payloads and
// collaborator responses) to cents with half-up rounding.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float64 returns the decimal representation used in DTOs.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
