package services

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialMissing means the tenant has no usable WhatsApp Business connection
	ErrCredentialMissing = errors.New("whatsapp business account is not connected")
	// ErrInvalidTransition is returned for a lifecycle move the template's status does not allow
	ErrInvalidTransition = errors.New("invalid template status transition")
	ErrValidation        = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
