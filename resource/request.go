package resource

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/drblury/restview/jsonutil"
)

// Request is the immutable per-call context handed to handler operations:
// the verb, path parameters, negotiated format, authenticated principal (if
// any), and access to the raw payload. It is created per incoming request
// and discarded once the response is produced.
type Request struct {
	// Verb is the HTTP method of the request.
	Verb string
	// Params holds the path parameters extracted by the router.
	Params map[string]string
	// Format is the negotiated output format identifier.
	Format string
	// Principal is the authenticated caller, nil when anonymous.
	Principal any
	// ReceivedAt is stamped when the dispatcher builds the context. Fields
	// that render "current time" should derive from it instead of reading
	// the clock, keeping renders idempotent.
	ReceivedAt time.Time

	raw *http.Request
}

// Param returns the named path parameter, empty when absent.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// Query returns the named query-string parameter, empty when absent.
func (r *Request) Query(name string) string {
	if r.raw == nil || r.raw.URL == nil {
		return ""
	}
	return r.raw.URL.Query().Get(name)
}

// Context exposes the underlying request context for deadline and
// cancellation propagation into collaborators.
func (r *Request) Context() context.Context {
	if r.raw == nil {
		return context.Background()
	}
	return r.raw.Context()
}

// Decode parses the request payload into v. A malformed or truncated body is
// reported as a ValidationError so it reaches the client as a 400.
func (r *Request) Decode(v any) error {
	if r.raw == nil || r.raw.Body == nil {
		return Invalid("body", "request body is required")
	}
	if err := jsonutil.Decode(r.raw.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return Invalid("body", "request body is required")
		}
		return Invalid("body", "malformed request body: "+err.Error())
	}
	return nil
}

// Header returns the named header from the underlying request.
func (r *Request) Header(name string) string {
	if r.raw == nil {
		return ""
	}
	return r.raw.Header.Get(name)
}
