package record

import (
	"math"
	"strconv"
	"strings"
)

// AppendValues appends each value to b as a space followed by six decimal fixed notation.
func AppendValues(b []byte, values ...float64) []byte {
	for _, v := range values {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v, 'f', 6, 64)
	}
	return b
}

// FormatLine renders a complete log line: the label verbatim, the values and a newline.
func FormatLine(label string, values ...float64) string {
	b := make([]byte, 0, len(label)+len(values)*12+1)
	b = append(b, label...)
	b = AppendValues(b, values...)
	b = append(b, '\n')
	return string(b)
}

// FormatDecimal renders v as the shortest decimal that reads back to the same float, always with a
// fractional part or exponent ("500.0", "0.25", "1e-05", "1e+16"). Landmark fields are stored in
// this form so that rewriting a log does not drift the text of its values.
func FormatDecimal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
