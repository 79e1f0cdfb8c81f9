// Package cardfmt renders numbers exactly as the card-file writers need
// them and parses the numeric tokens the decoders read.
package cardfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fixed renders v with exactly places digits after the decimal point,
// rounding the binary value correctly (the same result as C's %.Nf).
func Fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// Fixed6 renders v with six decimal places.
func Fixed6(v float64) string { return Fixed(v, 6) }

// Int renders an integer with no padding.
func Int(v int) string { return strconv.Itoa(v) }

// Shortest renders v in the shortest decimal form that parses back to the
// same float64. Integral values keep a trailing ".0", and magnitudes below
// 1e-4 or at or above 1e16 switch to exponent notation with at least two
// exponent digits (1e-05, 1.5e+16). This is the float repr the dataset
// files carry, so a timestamp read as "15" is written back as "15.0".
func Shortest(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// ParseInt parses a base-10 integer token.
func ParseInt(tok string) (int, error) {
	return strconv.Atoi(tok)
}

// ParseFloat parses a finite float token. Fortran-style 'D' exponents are
// accepted; NaN and infinities are rejected.
func ParseFloat(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && strings.ContainsAny(tok, "dD") {
		if v2, err2 := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "E").Replace(tok), 64); err2 == nil {
			v, err = v2, nil
		}
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", tok)
	}
	return v, nil
}
