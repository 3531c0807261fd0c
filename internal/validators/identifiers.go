package validators

import (
	"regexp"
	"strings"
)

// IdentifierKind tells handles from phone numbers.
type IdentifierKind int

const (
	KindUnknown IdentifierKind = iota
	KindHandle
	KindPhone
)

func (k IdentifierKind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindPhone:
		return "phone"
	default:
		return "unknown"
	}
}

const (
	PINLength  = 4
	CodeLength = 6
)

var (
	handleRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	phoneRe  = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	digitsRe = regexp.MustCompile(`^\d+$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// NormalizeHandle trims whitespace and a leading "@" and checks the result.
func NormalizeHandle(raw string) (string, error) {
	h := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if !handleRe.MatchString(h) {
		return "", ErrInvalidHandle
	}
	return h, nil
}

// NormalizePhone strips separators and returns the number in E.164 form with
// a leading "+".
func NormalizePhone(raw string) (string, error) {
	p := phoneSeparators.Replace(strings.TrimSpace(raw))
	if !phoneRe.MatchString(p) {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(p, "+") {
		p = "+" + p
	}
	return p, nil
}

// ClassifyIdentifier decides whether raw is a handle or a phone number and
// returns it normalised. Input made only of digits and phone separators is a
// phone; anything else is a handle.
func ClassifyIdentifier(raw string) (IdentifierKind, string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return KindUnknown, "", ErrEmptyIdentifier
	}

	if digitsRe.MatchString(strings.TrimPrefix(phoneSeparators.Replace(s), "+")) {
		p, err := NormalizePhone(s)
		return KindPhone, p, err
	}

	h, err := NormalizeHandle(s)
	return KindHandle, h, err
}

// ValidatePIN accepts exactly four digits.
func ValidatePIN(pin string) error {
	if len(pin) != PINLength || !digitsRe.MatchString(pin) {
		return ErrInvalidPIN
	}
	return nil
}

// ValidateCode accepts exactly six digits.
func ValidateCode(code string) error {
	if len(code) != CodeLength || !digitsRe.MatchString(code) {
		return ErrInvalidCode
	}
	return nil
}

// IsDigit reports whether s is a single ASCII digit. The PIN and code pads
// ignore every other key.
func IsDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
