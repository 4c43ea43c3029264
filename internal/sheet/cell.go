package sheet

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeCell converts a raw spreadsheet cell into its canonical string form.
//
// Numeric cells often arrive as float renderings ("1205.0"); integral values
// lose the fractional part, non-integral values keep their printed precision.
// NaN-like markers become the empty string, everything else is trimmed.
func NormalizeCell(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	switch strings.ToLower(s) {
	case "nan", "#n/a", "n/a":
		return ""
	}

	// Only rewrite strings that look like float renderings, so text such as
	// codes with leading zeros passes through untouched.
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil &&
			!math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) &&
			math.Abs(f) < 1e15 {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	return s
}

// Tristate is the result of parsing a yes/no style cell. Unknown means the
// upload carried no information for the field, which callers must never
// collapse into False.
type Tristate int

const (
	Unknown Tristate = iota
	True
	False
)

var (
	truthyCells = map[string]bool{"yes": true, "y": true, "true": true, "1": true, "apply": true}
	falsyCells  = map[string]bool{"no": true, "n": true, "false": true, "0": true}
)

// ParseBoolCell interprets a cell as a boolean flag.
func ParseBoolCell(value string) Tristate {
	v := strings.ToLower(strings.TrimSpace(NormalizeCell(value)))
	if v == "" {
		return Unknown
	}
	if truthyCells[v] {
		return True
	}
	if falsyCells[v] {
		return False
	}
	return Unknown
}
