package validation

import (
	"strings"

	"cartridge-quiz/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks a session id path parameter. Session ids are
// ULIDs: 26 characters of Crockford base32.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(id) {
		errs = append(errs, domain.NewInvalidFormatError("session_id", "must be a ULID"))
	}

	return errs
}

// ValidateUnlockRequest validates the email-capture submission.
func (v *Validator) ValidateUnlockRequest(email string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	} else if !domain.ValidEmail(email) {
		errs = append(errs, domain.NewInvalidFormatError("email", "must be a valid email address"))
	}

	return errs
}

// ValidateShareRequest validates the social-share report.
func (v *Validator) ValidateShareRequest(platform string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(platform) == "" {
		errs = append(errs, domain.NewMissingFieldError("platform"))
	} else if len(platform) > 32 {
		errs = append(errs, domain.NewInvalidFormatError("platform", "must be at most 32 characters"))
	}

	return errs
}

// isValidULID checks ULID shape: 26 chars of Crockford's base32.
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'H':
		case c == 'J' || c == 'K' || c == 'M' || c == 'N':
		case c >= 'P' && c <= 'T':
		case c >= 'V' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
