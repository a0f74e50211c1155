// Package validx validates typed input structs with small composable
// predicates. A Check inspects one string value and returns a short machine
// readable reason when it fails, or "" when the value is acceptable.
package validx

import (
	"net/mail"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// Reasons reported by the stock checks.
const (
	ReasonRequired  = "required"
	ReasonTooShort  = "too_short"
	ReasonTooLong   = "too_long"
	ReasonEmail     = "invalid_email"
	ReasonMismatch  = "mismatch"
	ReasonExtension = "extension_not_allowed"
)

// Check validates a single value.
type Check func(value string) (reason string)

// FieldError names the field that failed and why.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Errors is the set of failures collected by a Validator.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Map flattens the errors into field to reason.
func (e Errors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Reason
	}
	return m
}

// Validator accumulates the first failure of every field.
type Validator struct {
	errs Errors
}

// Field runs checks against value in order and records the first failure.
func (v *Validator) Field(name, value string, checks ...Check) *Validator {
	for _, check := range checks {
		if reason := check(value); reason != "" {
			v.errs = append(v.errs, FieldError{Field: name, Reason: reason})
			break
		}
	}
	return v
}

// Valid reports whether no field has failed so far.
func (v *Validator) Valid() bool { return len(v.errs) == 0 }

// Err returns the collected Errors, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.errs
}

// Required fails on empty or whitespace-only values.
func Required() Check {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ReasonRequired
		}
		return ""
	}
}

// Length bounds the number of characters; max <= 0 means unbounded.
func Length(minLen, maxLen int) Check {
	return func(value string) string {
		n := utf8.RuneCountInString(value)
		if n < minLen {
			return ReasonTooShort
		}
		if maxLen > 0 && n > maxLen {
			return ReasonTooLong
		}
		return ""
	}
}

// Email accepts a bare address (no display name) with a dotted domain.
func Email() Check {
	return func(value string) string {
		value = strings.TrimSpace(value)
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return ReasonEmail
		}
		_, domain, _ := strings.Cut(addr.Address, "@")
		if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
			return ReasonEmail
		}
		return ""
	}
}

// EqualTo requires the value to match other exactly, e.g. a password
// confirmation.
func EqualTo(other string) Check {
	return func(value string) string {
		if value != other {
			return ReasonMismatch
		}
		return ""
	}
}

// Extension requires a filename whose extension, case-insensitively, is one
// of allowed (given without the dot).
func Extension(allowed ...string) Check {
	return func(value string) string {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(value)), ".")
		if ext == "" || !slices.Contains(allowed, ext) {
			return ReasonExtension
		}
		return ""
	}
}
