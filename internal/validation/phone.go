package validation

import "strings"

const (
	PhoneCountryPrefix = "+216"
	PhoneNationalLen   = 8
)

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NationalPhone converts a stored number to the 8-digit local form shown in
// the profile form.
func NationalPhone(stored string) string {
	v := strings.TrimPrefix(strings.TrimSpace(stored), PhoneCountryPrefix)
	d := digitsOnly(v)
	if len(d) > PhoneNationalLen {
		d = d[:PhoneNationalLen]
	}
	return d
}

// InternationalPhone returns the stored form, or "" unless the input holds
// exactly eight digits.
func InternationalPhone(national string) string {
	d := digitsOnly(national)
	if len(d) != PhoneNationalLen {
		return ""
	}
	return PhoneCountryPrefix + d
}

// ValidateNationalPhone accepts an empty value or exactly eight digits.
func ValidateNationalPhone(national string) error {
	v := strings.TrimSpace(national)
	if v == "" {
		return nil
	}
	if len(v) != PhoneNationalLen || digitsOnly(v) != v {
		return newError("phoneNational", "Phone number must be exactly 8 digits.")
	}
	return nil
}
