package models

import "fmt"

// Money is an amount in minor currency units (e.g. cents, paise).
// All split arithmetic is integer arithmetic on this type.
type Money int64

// String formats the amount as major.minor, e.g. 4500 -> "45.00".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
