// Package validators holds the field rules shared by the booking, checkout,
// address and profile forms.
package validators

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^\d{10}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// FieldErrors maps a form field to its first failing rule.
type FieldErrors map[string]string

// Add records msg for field unless the field already failed.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Err returns nil when no field failed, so callers can `return errs.Err()`.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func Required(val string) bool {
	return strings.TrimSpace(val) != ""
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	return nil
}

func ValidatePincode(pincode string) error {
	if !pincodeRegex.MatchString(strings.TrimSpace(pincode)) {
		return fmt.Errorf("pincode must be exactly 6 digits")
	}
	return nil
}

func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude out of range")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}
