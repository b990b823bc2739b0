package arbitrage

import (
	"fmt"
	"math"
)

// Unavailable is what display formatting renders for an unknown value.
const Unavailable = "--"

// FormatMoney renders a nullable currency amount with the given number of
// decimals, "--" when the value is missing or not a number.
func FormatMoney(v *float64, decimals int) string {
	if v == nil || math.IsNaN(*v) {
		return Unavailable
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// FormatPercent renders a nullable percent with an explicit sign for
// positive values, "--" when the value is missing or not a number.
func FormatPercent(v *float64, decimals int) string {
	if v == nil || math.IsNaN(*v) {
		return Unavailable
	}
	sign := ""
	if *v > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.*f%%", sign, decimals, *v)
}
