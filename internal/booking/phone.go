package booking

import "strings"

// NormalizePhone converts a customer-entered phone number to E.164 on a
// best-effort basis. Well-formed international numbers pass through;
// domestic-format numbers (leading zero) are reinterpreted under the
// business's default country code. Anything else returns "" and the number
// is omitted from the customer record rather than failing the booking.
func NormalizePhone(raw, defaultCountryCode string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	plus := strings.HasPrefix(trimmed, "+")
	digits := keepDigits(trimmed)
	if digits == "" {
		return ""
	}

	if plus {
		// E.164 allows up to 15 digits; anything shorter than 8 is noise.
		if len(digits) < 8 || len(digits) > 15 {
			return ""
		}
		return "+" + digits
	}

	cc := keepDigits(defaultCountryCode)
	if cc == "" {
		return ""
	}

	// Domestic format: drop the trunk zero and prepend the country code.
	if strings.HasPrefix(digits, "0") && len(digits) >= 9 && len(digits) <= 11 {
		return "+" + cc + digits[1:]
	}

	// Already carries the country code without the plus.
	if strings.HasPrefix(digits, cc) && len(digits) >= 10 && len(digits) <= 15 {
		return "+" + digits
	}

	return ""
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
