package utils

import (
	"fmt"
	"regexp"
)

// Email regex pattern
var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// LeadValidationRules contains validation configuration
type LeadValidationRules struct {
	MaxNameLength    int
	MaxMessageLength int
}

// DefaultValidationRules provides default validation constraints
var DefaultValidationRules = LeadValidationRules{
	MaxNameLength:    100,
	MaxMessageLength: 1000,
}

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateName checks if name meets requirements
func ValidateName(name string) error {
	if len(name) > DefaultValidationRules.MaxNameLength {
		return fmt.Errorf("name must be less than %d characters", DefaultValidationRules.MaxNameLength)
	}
	return nil
}

// ValidateMessage checks if the free-text message meets requirements
func ValidateMessage(message string) error {
	if len(message) > DefaultValidationRules.MaxMessageLength {
		return fmt.Errorf("message must be less than %d characters", DefaultValidationRules.MaxMessageLength)
	}
	return nil
}
