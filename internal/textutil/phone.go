package textutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Phone formatting errors
var (
	ErrUnknownPhoneFormat = errors.New("unknown phone format")
	ErrPhoneTooShort      = errors.New("phone number too short")
	ErrPhoneTooLong       = errors.New("too many digits")
	ErrPhoneCountryCode   = errors.New("11-digit US numbers must start with country code '1'")
)

// PhoneFormat describes one output template.
type PhoneFormat struct {
	Country string
	Example string
	Digits  int
}

// PhoneFormats are the supported templates keyed by name.
var PhoneFormats = map[string]PhoneFormat{
	"us":      {Country: "US", Example: "(123) 456-7890", Digits: 10},
	"us_intl": {Country: "US International", Example: "+1 (123) 456-7890", Digits: 10},
	"uk":      {Country: "UK (simplified)", Example: "+44 20 1234 5678", Digits: 10},
	"dots":    {Country: "Dots", Example: "123.456.7890", Digits: 10},
}

// PhoneFormatNames lists the template names in sorted order.
func PhoneFormatNames() []string {
	names := make([]string, 0, len(PhoneFormats))
	for name := range PhoneFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatPhone keeps the digits of number and renders them with the named
// template. A short number is an error when strict; otherwise it is padded
// with leading zeros and padded reports true.
func FormatPhone(number, format string, strict bool) (formatted string, padded bool, err error) {
	spec, ok := PhoneFormats[format]
	if !ok {
		return "", false, fmt.Errorf("%w %q, available: %s",
			ErrUnknownPhoneFormat, format, strings.Join(PhoneFormatNames(), ", "))
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if len(digits) < spec.Digits {
		if strict {
			return "", false, fmt.Errorf("%w: %d digits (need %d), example: %s",
				ErrPhoneTooShort, len(digits), spec.Digits, spec.Example)
		}
		digits = strings.Repeat("0", spec.Digits-len(digits)) + digits
		padded = true
	}

	if len(digits) == 11 && strings.HasPrefix(format, "us") {
		if digits[0] != '1' {
			return "", false, ErrPhoneCountryCode
		}
		digits = digits[1:]
	}

	if len(digits) > spec.Digits {
		return "", false, fmt.Errorf("%w: %d (max %d for this template)", ErrPhoneTooLong, len(digits), spec.Digits)
	}

	area, prefix, line := digits[0:3], digits[3:6], digits[6:10]
	switch format {
	case "us":
		formatted = fmt.Sprintf("(%s) %s-%s", area, prefix, line)
	case "us_intl":
		formatted = fmt.Sprintf("+1 (%s) %s-%s", area, prefix, line)
	case "uk":
		formatted = fmt.Sprintf("+44 %s %s%s", area, prefix, line)
	case "dots":
		formatted = fmt.Sprintf("%s.%s.%s", area, prefix, line)
	default:
		formatted = fmt.Sprintf("%s-%s-%s", area, prefix, line)
	}
	return formatted, padded, nil
}
