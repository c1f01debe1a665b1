package utils

import "strings"

// StripNonDigits removes every character that is not 0-9.
func StripNonDigits(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	return string(digits)
}

// StripLeadingDialCode removes one leading occurrence of dialCode from a
// digit string, for visitors who typed their number with the country code
// already included. Applied at most once, never recursively.
func StripLeadingDialCode(digits, dialCode string) string {
	if dialCode != "" && strings.HasPrefix(digits, dialCode) {
		return digits[len(dialCode):]
	}
	return digits
}

// CombinedForm formats a raw phone as "<dialCode>-<subscriber>", the shape
// the spreadsheet backend stores. An empty raw phone yields an empty string,
// and a value with no digits at all passes through unchanged; footer
// subscriptions carry a literal placeholder instead of a number.
func CombinedForm(dialCode, rawPhone string) string {
	if rawPhone == "" {
		return ""
	}
	digits := StripNonDigits(rawPhone)
	if digits == "" {
		return rawPhone
	}
	return dialCode + "-" + StripLeadingDialCode(digits, dialCode)
}

// SubscriberOnlyForm returns the digits-only subscriber number with the dial
// code stripped. The CRM's mobile field must not carry the dial code.
func SubscriberOnlyForm(rawPhone, dialCode string) string {
	return StripLeadingDialCode(StripNonDigits(rawPhone), dialCode)
}
