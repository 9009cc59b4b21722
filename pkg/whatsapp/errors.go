package whatsapp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrEncoding means a local template cannot be expressed as platform components.
	ErrEncoding = errors.New("whatsapp: template cannot be encoded")
	// ErrDecoding means a platform component array holds a variant the local model cannot represent.
	ErrDecoding = errors.New("whatsapp: template cannot be decoded")
	// ErrRemoteRejected matches every *RemoteError.
	ErrRemoteRejected = errors.New("whatsapp: request rejected by platform")
	// ErrTransport means the platform could not be reached or answered without a usable payload.
	ErrTransport = errors.New("whatsapp: transport failure")
	// ErrAppNotConfigured is returned by onboarding calls when the app id or secret is missing.
	ErrAppNotConfigured = errors.New("whatsapp: app id and secret are not configured")
)

// RemoteError is a structured rejection returned by the Graph API
type RemoteError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	TraceID    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("whatsapp: platform rejected request (%d): %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrRemoteRejected) match any RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}

// IsNotFound reports whether err is a platform rejection for a resource that does not exist.
func IsNotFound(err error) bool {
	var re *RemoteError
	if !errors.As(err, &re) {
		return false
	}
	if re.StatusCode == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(re.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

type errorEnvelope struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		FBTraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

func encodingError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEncoding, fmt.Sprintf(format, args...))
}

func decodingError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecoding, fmt.Sprintf(format, args...))
}
