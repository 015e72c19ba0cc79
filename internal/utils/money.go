package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders an amount the way the dashboard shows it: dollar
// sign, dot as thousands separator, comma decimals only when needed.
// Example: 1500.5 -> "$1.500,50", 1500 -> "$1.500".
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	if cents == 0 {
		return fmt.Sprintf("%s$%s", sign, formatThousand(whole))
	}
	return fmt.Sprintf("%s$%s,%02d", sign, formatThousand(whole), cents)
}

// ParseAmount parses an operator-entered amount like "1.500,50", "1500.50"
// or "1500". Thousands separators are tolerated in either convention; the
// rightmost separator decides which one is the decimal mark.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("monto vacío")
	}
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		// "1.500,50": comma is the decimal mark
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
		lastDot = strings.LastIndex(s, ".")
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			// "1.234.567" or "1.500": dots are grouping only
			s = strings.ReplaceAll(s, ".", "")
		}
	default:
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("monto inválido")
	}
	return v, nil
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
