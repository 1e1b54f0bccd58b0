package resource

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/drblury/restview/emit"
	"github.com/drblury/restview/view"
)

// HandlerFunc is the operation bound to one verb of a resource. It returns a
// value or collection to be rendered, a sentinel (NoContent, Created), or a
// taxonomy failure. Errors outside the taxonomy are treated as Internal.
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

type noContent struct{}

// NoContent is the sentinel a handler returns to acknowledge an operation
// with an empty 204 response, typically a deletion.
var NoContent = noContent{}

// Created wraps a handler result that should be emitted with a 201 status.
type Created struct {
	Value any
}

// Option configures a Resource under construction.
type Option func(*Resource)

// BindOption configures a single verb binding.
type BindOption func(*binding)

type binding struct {
	handler     HandlerFunc
	requireAuth bool
	view        *view.View
}

// RequireAuth marks the verb as requiring an authenticated principal. The
// handler is never invoked for anonymous requests.
func RequireAuth() BindOption {
	return func(b *binding) {
		b.requireAuth = true
	}
}

// WithView attaches the view used to render the handler's result.
func WithView(v *view.View) BindOption {
	return func(b *binding) {
		b.view = v
	}
}

// Get binds a handler to the GET verb.
func Get(handler HandlerFunc, opts ...BindOption) Option {
	return Bind(http.MethodGet, handler, opts...)
}

// Post binds a handler to the POST verb.
func Post(handler HandlerFunc, opts ...BindOption) Option {
	return Bind(http.MethodPost, handler, opts...)
}

// Put binds a handler to the PUT verb.
func Put(handler HandlerFunc, opts ...BindOption) Option {
	return Bind(http.MethodPut, handler, opts...)
}

// Delete binds a handler to the DELETE verb.
func Delete(handler HandlerFunc, opts ...BindOption) Option {
	return Bind(http.MethodDelete, handler, opts...)
}

// Bind attaches a handler to an arbitrary verb.
func Bind(verb string, handler HandlerFunc, opts ...BindOption) Option {
	return func(r *Resource) {
		b := binding{handler: handler}
		for _, opt := range opts {
			if opt != nil {
				opt(&b)
			}
		}
		r.bindings[strings.ToUpper(verb)] = b
	}
}

// WithAuthenticator installs the authentication collaborator consulted
// before handlers that require a principal.
func WithAuthenticator(a Authenticator) Option {
	return func(r *Resource) {
		if a != nil {
			r.auth = a
		}
	}
}

// WithEmitters shares an emitter registry across resources. Without it each
// resource builds the default registry.
func WithEmitters(registry *emit.Registry) Option {
	return func(r *Resource) {
		if registry != nil {
			r.emitters = registry
		}
	}
}

// WithLogger injects the slog logger used for failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resource) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Resource is one logical endpoint: a read-only table of verb bindings with
// their auth requirements and views, an authenticator, and the emitter
// registry. Constructed once at startup and safe for concurrent use.
type Resource struct {
	name     string
	bindings map[string]binding
	allowed  []string
	auth     Authenticator
	emitters *emit.Registry
	log      *slog.Logger
}

// New builds a resource from verb bindings and collaborators. At least one
// verb must be bound; every binding needs a handler.
func New(name string, opts ...Option) (*Resource, error) {
	r := &Resource{
		name:     name,
		bindings: make(map[string]binding),
		auth:     NoAuth{},
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if len(r.bindings) == 0 {
		return nil, errors.Errorf("resource %q: no verbs bound", name)
	}
	for verb, b := range r.bindings {
		if b.handler == nil {
			return nil, errors.Errorf("resource %q: verb %s bound without a handler", name, verb)
		}
		r.allowed = append(r.allowed, verb)
	}
	sort.Strings(r.allowed)

	if r.emitters == nil {
		registry, err := emit.NewRegistry()
		if err != nil {
			return nil, errors.Wrapf(err, "resource %q", name)
		}
		r.emitters = registry
	}
	return r, nil
}

// MustNew is New, panicking on error. Intended for startup wiring.
func MustNew(name string, opts ...Option) *Resource {
	r, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the resource name used in diagnostics.
func (r *Resource) Name() string {
	return r.name
}

// Allowed returns the sorted set of bound verbs.
func (r *Resource) Allowed() []string {
	allowed := make([]string, len(r.allowed))
	copy(allowed, r.allowed)
	return allowed
}

// ServeHTTP drives one request through the dispatch states: negotiate the
// format, check authentication, gate the verb, invoke the handler, render
// through the bound view, and emit. Any failure short-circuits into the
// error path, which still emits an envelope in the negotiated format.
func (r *Resource) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	format, err := r.emitters.Negotiate(requestedFormat(req))
	if err != nil {
		// Unknown format: a client error emitted in the default format,
		// before any handler involvement.
		r.fail(w, req, r.emitters.Default(), Invalid("format", err.Error()))
		return
	}

	defer func() {
		if cause := recover(); cause != nil {
			r.fail(w, req, format, errors.Errorf("panic in handler: %v", cause))
		}
	}()

	b, bound := r.bindings[req.Method]

	principal, authErr := r.auth.Authenticate(req)
	if authErr != nil {
		r.log.Warn("authentication failed",
			"resource", r.name,
			"verb", req.Method,
			"path", req.URL.Path,
			"error", authErr.Error(),
		)
		principal = nil
	}
	if bound && b.requireAuth && principal == nil {
		r.fail(w, req, format, &AuthenticationRequiredError{})
		return
	}

	if !bound {
		r.fail(w, req, format, &MethodNotAllowedError{Allowed: r.Allowed()})
		return
	}

	request := &Request{
		Verb:       req.Method,
		Params:     mux.Vars(req),
		Format:     format,
		Principal:  principal,
		ReceivedAt: time.Now().UTC(),
		raw:        req,
	}

	result, err := b.handler(req.Context(), request)
	if err != nil {
		r.fail(w, req, format, err)
		return
	}

	status := http.StatusOK
	if created, ok := result.(Created); ok {
		status = http.StatusCreated
		result = created.Value
	}
	if _, ok := result.(noContent); ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rendered, err := r.render(b, result)
	if err != nil {
		r.fail(w, req, format, err)
		return
	}

	body, contentType, err := r.emitters.Emit(format, rendered)
	if err != nil {
		r.fail(w, req, format, err)
		return
	}
	r.write(w, status, contentType, body)
}

// render passes the handler result through the bound view unless it is
// already a resolved document (or there is no view, in which case raw data
// flows straight to the emitter).
func (r *Resource) render(b binding, result any) (any, error) {
	if page, ok := result.(*Page); ok {
		return page.Render(b.view)
	}
	if b.view == nil {
		return result, nil
	}
	if isRendered(result) {
		return result, nil
	}
	rendered, err := b.view.Render(result)
	if err != nil {
		return nil, errors.Wrapf(err, "resource %q", r.name)
	}
	return rendered, nil
}

// isRendered reports whether the handler result already came out of a view.
// View.Render hands back a *view.Document for entities and a []any of
// documents for collections; both pass to the emitter untouched.
func isRendered(result any) bool {
	switch v := result.(type) {
	case *view.Document, []*view.Document:
		return true
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, item := range v {
			if _, ok := item.(*view.Document); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (r *Resource) fail(w http.ResponseWriter, req *http.Request, format string, cause error) {
	status, envelope := Translate(cause)

	logger := r.log.With(
		"resource", r.name,
		"verb", req.Method,
		"path", req.URL.Path,
		"status", status,
	)
	if status == http.StatusInternalServerError {
		envelope.TraceID = newTraceID()
		// The cause is logged in full here and nowhere else; the client
		// only ever sees the generic envelope message.
		logger.Error("request failed", "error", cause.Error(), "trace_id", envelope.TraceID)
	} else {
		logger.Warn("request rejected", "kind", envelope.Kind)
	}

	if status == http.StatusMethodNotAllowed {
		w.Header().Set("Allow", strings.Join(envelope.Allowed, ", "))
	}

	body, contentType, err := r.emitters.Emit(format, envelope)
	if err != nil {
		// Emitting the envelope itself failed; fall back to a bare reply
		// rather than recursing.
		r.log.Error("failed to emit error envelope", "error", err.Error())
		http.Error(w, http.StatusText(status), status)
		return
	}
	r.write(w, status, contentType, body)
}

func (r *Resource) write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.log.Error("failed to write response", "error", err.Error())
	}
}

// requestedFormat pulls an explicit format from the URL suffix captured by
// the router, falling back to the format query parameter.
func requestedFormat(req *http.Request) string {
	if format, ok := mux.Vars(req)["format"]; ok && format != "" {
		return format
	}
	return req.URL.Query().Get("format")
}
