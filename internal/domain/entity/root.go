package entity

import (
	"math"
	"strconv"
	"strings"
)

// Root is one solution of an equation in x. Exact holds the normalized
// algebraic form when one is known; Real and Imag are always populated.
type Root struct {
	Real  float64
	Imag  float64
	Exact string
}

func (r Root) IsReal() bool {
	return r.Imag == 0
}

func (r Root) String() string {
	if r.Exact != "" {
		return r.Exact
	}
	re := formatFloat(r.Real)
	if r.IsReal() {
		return re
	}
	im := formatFloat(math.Abs(r.Imag))
	sign := " + "
	if r.Imag < 0 {
		sign = " - "
	}
	if r.Real == 0 {
		if r.Imag < 0 {
			return "-" + im + "*I"
		}
		return im + "*I"
	}
	return re + sign + im + "*I"
}

func FormatRoots(roots []Root) string {
	parts := make([]string, 0, len(roots))
	for _, r := range roots {
		parts = append(parts, r.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}
