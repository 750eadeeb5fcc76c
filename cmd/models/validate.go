package models

import (
	"fmt"
	"regexp"
)

// emailPattern is the single shared email validator for every entity and
// service in the system.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > 100 {
		return &ValidationError{Field: "email", Message: "must be at most 100 characters"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	return nil
}

func requireLen(field, value string, max int) error {
	if value == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	return optionalLen(field, value, max)
}

func optionalLen(field, value string, max int) error {
	if len(value) > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}
