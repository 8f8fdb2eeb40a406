package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NormalizePhoneIN strips separators and a leading +91 or 0 from an Indian
// mobile number, leaving the 10 digits the API expects.
func NormalizePhoneIN(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	}
	return digits
}

// Rupees formats an amount with Indian digit grouping, e.g. "₹12,34,567.50".
// Whole amounts drop the paise.
func Rupees(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, paise, _ := strings.Cut(fixed, ".")

	grouped := whole
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		grouped = strings.Join(groups, ",") + "," + tail
	}

	out := "₹" + grouped
	if paise != "00" {
		out += "." + paise
	}
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}
