package services

import (
	"errors"
	"fmt"
	"strings"

	"sportstravel/internal/models"
)

var (
	// ErrNotFound covers any referenced entity that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is wrapped with the attempted from -> to pair.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrMissingData means quote generation could not fill required fields
	// even after falling back to the lead record.
	ErrMissingData = errors.New("missing data")
)

func invalidTransition(from, to models.LeadStatus) error {
	return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, to)
}

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
