package resource

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Envelope is the only body shape ever emitted on failure, independent of
// the negotiated format.
type Envelope struct {
	Kind        string              `json:"kind"`
	Message     string              `json:"message"`
	FieldErrors map[string][]string `json:"field_errors,omitempty"`
	Allowed     []string            `json:"allowed,omitempty"`
	TraceID     string              `json:"trace_id,omitempty"`
}

// Envelope kinds, one per failure taxonomy entry.
const (
	KindNotFound         = "not_found"
	KindValidation       = "validation"
	KindAuthRequired     = "auth_required"
	KindMethodNotAllowed = "method_not_allowed"
	KindInternal         = "internal"
)

// NotFoundError reports that the addressed entity does not exist.
type NotFoundError struct {
	Message string
}

// NewNotFound builds a NotFoundError with a formatted message.
func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

// ValidationError carries per-field failure messages for a rejected payload.
type ValidationError struct {
	Fields map[string][]string
}

// Invalid starts a ValidationError with one offending field.
func Invalid(field string, messages ...string) *ValidationError {
	e := &ValidationError{Fields: make(map[string][]string)}
	return e.Add(field, messages...)
}

// Add appends messages for a field and returns the error for chaining.
func (e *ValidationError) Add(field string, messages ...string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], messages...)
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// AuthenticationRequiredError reports a request that carried no valid
// principal for an operation that demands one.
type AuthenticationRequiredError struct {
	Message string
}

func (e *AuthenticationRequiredError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// MethodNotAllowedError reports a verb outside the resource's allowed set.
type MethodNotAllowedError struct {
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return "method not allowed (allowed: " + strings.Join(e.Allowed, ", ") + ")"
}

// internalMessage is the only text an Internal failure ever shows a client.
const internalMessage = "internal server error"

// Translate is the pure mapping from the failure taxonomy to a status code
// and error envelope. Errors outside the taxonomy are Internal: the envelope
// carries a generic message and the cause stays with the caller for logging.
func Translate(err error) (int, *Envelope) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, &Envelope{Kind: KindNotFound, Message: notFound.Error()}
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, &Envelope{
			Kind:        KindValidation,
			Message:     "request validation failed",
			FieldErrors: validation.Fields,
		}
	}

	var authRequired *AuthenticationRequiredError
	if errors.As(err, &authRequired) {
		return http.StatusUnauthorized, &Envelope{Kind: KindAuthRequired, Message: authRequired.Error()}
	}

	var notAllowed *MethodNotAllowedError
	if errors.As(err, &notAllowed) {
		allowed := make([]string, len(notAllowed.Allowed))
		copy(allowed, notAllowed.Allowed)
		sort.Strings(allowed)
		return http.StatusMethodNotAllowed, &Envelope{
			Kind:    KindMethodNotAllowed,
			Message: "method not allowed",
			Allowed: allowed,
		}
	}

	return http.StatusInternalServerError, &Envelope{Kind: KindInternal, Message: internalMessage}
}
