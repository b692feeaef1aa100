// Package util provides small validation and environment helpers shared
// across the service.
package util

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidatePort validates a port number.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %d", port)
	}
	return nil
}

// ValidateNonEmpty validates that a string is not empty.
func ValidateNonEmpty(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address %q: %w", email, err)
	}

	// Reject "Name <addr>" forms; configuration expects a bare address.
	if addr.Address != email {
		return fmt.Errorf("invalid email address %q", email)
	}

	return nil
}

// ValidatePositiveInt validates that a value is strictly positive.
func ValidatePositiveInt(value int, name string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", name, value)
	}
	return nil
}

// ValidateLogLevel validates a log level string.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}

// ValidateLogFormat validates a log format string.
func ValidateLogFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "console":
		return nil
	}
	return fmt.Errorf("invalid log format: %s", format)
}
