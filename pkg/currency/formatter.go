package currency

import (
	"fmt"
	"math"
)

// FormatINR groups digits the Indian way: the last three digits, then pairs
// (1,23,45,678). Whole amounts print without decimals; anything else keeps
// its paise (4,500.75).
func FormatINR(amount float64) string {
	paise := math.Round(amount * 100)

	negative := paise < 0
	if negative {
		paise = -paise
	}

	rupees := math.Floor(paise / 100)
	formatted := addIndianSeparators(fmt.Sprintf("%.0f", rupees), ',')
	if frac := paise - rupees*100; frac != 0 {
		formatted += fmt.Sprintf(".%02.0f", frac)
	}

	result := "INR " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addIndianSeparators(s string, sep byte) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	head := s[:n-3]
	tail := s[n-3:]

	numSeps := (len(head) - 1) / 2
	result := make([]byte, 0, n+numSeps+1)

	if len(head)%2 == 1 {
		result = append(result, head[0])
		head = head[1:]
		if len(head) > 0 {
			result = append(result, sep)
		}
	}
	for i := 0; i < len(head); i += 2 {
		result = append(result, head[i], head[i+1])
		if i+2 < len(head) {
			result = append(result, sep)
		}
	}

	result = append(result, sep)
	result = append(result, tail...)
	return string(result)
}
