package resource

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateTaxonomy(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{
			name:    "not found",
			err:     NewNotFound("id %d", 9),
			status:  http.StatusNotFound,
			kind:    KindNotFound,
			message: "id 9",
		},
		{
			name:    "validation",
			err:     Invalid("title", "required"),
			status:  http.StatusBadRequest,
			kind:    KindValidation,
			message: "request validation failed",
		},
		{
			name:    "auth required",
			err:     &AuthenticationRequiredError{},
			status:  http.StatusUnauthorized,
			kind:    KindAuthRequired,
			message: "authentication required",
		},
		{
			name:    "method not allowed",
			err:     &MethodNotAllowedError{Allowed: []string{"POST", "GET"}},
			status:  http.StatusMethodNotAllowed,
			kind:    KindMethodNotAllowed,
			message: "method not allowed",
		},
		{
			name:    "unclassified is internal",
			err:     errors.New("kaboom"),
			status:  http.StatusInternalServerError,
			kind:    KindInternal,
			message: "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, envelope := Translate(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, envelope.Kind)
			assert.Equal(t, tc.message, envelope.Message)
		})
	}
}

func TestTranslateUnwrapsWrappedFailures(t *testing.T) {
	wrapped := errors.Wrap(NewNotFound("id 9"), "looking up book")

	status, envelope := Translate(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, KindNotFound, envelope.Kind)
}

func TestTranslateValidationFields(t *testing.T) {
	err := Invalid("title", "required").Add("year", "must be positive", "must be numeric")

	_, envelope := Translate(err)
	require.NotNil(t, envelope.FieldErrors)
	assert.Equal(t, []string{"required"}, envelope.FieldErrors["title"])
	assert.Equal(t, []string{"must be positive", "must be numeric"}, envelope.FieldErrors["year"])
}

func TestTranslateSortsAllowedVerbs(t *testing.T) {
	_, envelope := Translate(&MethodNotAllowedError{Allowed: []string{"PUT", "DELETE", "GET"}})
	assert.Equal(t, []string{"DELETE", "GET", "PUT"}, envelope.Allowed)
}

func TestTranslateInternalNeverEchoesCause(t *testing.T) {
	_, envelope := Translate(errors.New("connection string user:pass@host"))
	assert.NotContains(t, envelope.Message, "user:pass")
}
