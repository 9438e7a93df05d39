package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")
	// ErrRateNotSet means the lecturer's hourly rate is still zero; this is
	// deliberately distinct from a generic range error so the caller can be
	// told to contact HR rather than to fix their input.
	ErrRateNotSet = errors.New("hourly rate has not been set by HR")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure of a submission; the rules are
// checked independently rather than short-circuited so the caller sees all
// problems at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`

	causes []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes ErrValidation plus any sentinel a rule attached (such as
// ErrRateNotSet), so errors.Is matches either.
func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidation}, e.causes...)
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// AddCause records a field failure backed by a sentinel error.
func (e *ValidationError) AddCause(field string, cause error, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	e.causes = append(e.causes, cause)
}

func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrRateNotSet) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
