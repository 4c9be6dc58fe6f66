package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Failure codes form a closed vocabulary shared by the services and the
// transport layer. The transport maps each code to a status via the value
// carried in the error, never by inspecting messages.
const (
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeEmailTaken           = "EMAIL_TAKEN"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeUnknownSubject       = "UNKNOWN_SUBJECT"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeTeacherNotFound      = "TEACHER_NOT_FOUND"
	CodeAlreadyParticipating = "ALREADY_PARTICIPATING"
	CodeNotParticipating     = "NOT_PARTICIPATING"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeInternal             = "INTERNAL"
)

var statusByCode = map[string]int{
	CodeInvalidCredentials:   http.StatusUnauthorized,
	CodeInvalidToken:         http.StatusUnauthorized,
	CodeUnauthorized:         http.StatusUnauthorized,
	CodeEmailTaken:           http.StatusBadRequest,
	CodeAlreadyParticipating: http.StatusBadRequest,
	CodeNotParticipating:     http.StatusBadRequest,
	CodeValidationFailed:     http.StatusBadRequest,
	CodeSessionNotFound:      http.StatusNotFound,
	CodeUserNotFound:         http.StatusNotFound,
	CodeTeacherNotFound:      http.StatusNotFound,
	CodeUnknownSubject:       http.StatusNotFound,
	CodeInternal:             http.StatusInternalServerError,
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError for a known code.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", nil)
}

func NewEmailTaken() error {
	return NewDomainError(CodeEmailTaken, "email is already taken", nil)
}

func NewInvalidToken(err error) error {
	e := NewDomainError(CodeInvalidToken, "invalid or expired token", nil)
	e.Err = err
	return e
}

func NewUnknownSubject() error {
	return NewDomainError(CodeUnknownSubject, "token subject no longer exists", nil)
}

func NewSessionNotFound(id string) error {
	return NewDomainError(CodeSessionNotFound, "session not found", map[string]any{"session_id": id})
}

func NewUserNotFound(id string) error {
	return NewDomainError(CodeUserNotFound, "user not found", map[string]any{"user_id": id})
}

func NewTeacherNotFound(id string) error {
	return NewDomainError(CodeTeacherNotFound, "teacher not found", map[string]any{"teacher_id": id})
}

func NewAlreadyParticipating() error {
	return NewDomainError(CodeAlreadyParticipating, "user already participates in this session", nil)
}

func NewNotParticipating() error {
	return NewDomainError(CodeNotParticipating, "user does not participate in this session", nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, details)
}

func NewInternalError(err error) error {
	e := NewDomainError(CodeInternal, "internal server error", nil)
	e.Err = err
	return e
}

// HasCode reports whether err carries the given failure code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// ToDomainError converts generic errors to DomainError. Storage absence
// becomes a not-found; anything unrecognized is a server fault.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{
			Code:       CodeUserNotFound,
			Message:    "resource not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
