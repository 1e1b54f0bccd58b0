// Package emit serialises rendered documents into wire formats. A Registry
// maps format identifiers to emitters and is frozen at construction, making
// negotiation and emission safe for concurrent use across requests. Every
// built-in emitter encodes the same document structure — field names, array
// order, and nesting are identical across formats, only the syntax differs.
package emit

import (
	"sort"

	"github.com/pkg/errors"
)

// Emitter turns a rendered document (a *view.Document, a collection of
// documents, or raw handler data) into response bytes for one wire format.
type Emitter interface {
	Emit(doc any) ([]byte, error)
	ContentType() string
}

// ErrUnknownFormat is returned by Negotiate when the requested format has no
// registered emitter. Callers should treat it as a client error, never as a
// silent fallback to the default format.
var ErrUnknownFormat = errors.New("unknown format")

// Option configures a Registry under construction.
type Option func(*registryConfig)

type registryConfig struct {
	emitters      map[string]Emitter
	defaultFormat string
	builtins      bool
}

// Registry is the immutable format table consulted for every response. It is
// populated once at startup; Emit and Negotiate never mutate it.
type Registry struct {
	emitters      map[string]Emitter
	defaultFormat string
}

// NewRegistry builds a registry containing the built-in json, xml, and jsonp
// emitters plus any custom ones supplied via WithEmitter. The default format
// is json unless overridden with WithDefault.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg := &registryConfig{
		emitters:      make(map[string]Emitter),
		defaultFormat: FormatJSON,
		builtins:      true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	emitters := make(map[string]Emitter, len(cfg.emitters)+3)
	if cfg.builtins {
		emitters[FormatJSON] = JSONEmitter{}
		emitters[FormatXML] = XMLEmitter{}
		emitters[FormatJSONP] = NewJSONPEmitter("")
	}
	for id, emitter := range cfg.emitters {
		emitters[id] = emitter
	}

	if _, ok := emitters[cfg.defaultFormat]; !ok {
		return nil, errors.Errorf("default format %q has no registered emitter", cfg.defaultFormat)
	}
	return &Registry{emitters: emitters, defaultFormat: cfg.defaultFormat}, nil
}

// MustNewRegistry is NewRegistry, panicking on error. Intended for
// package-level registry construction.
func MustNewRegistry(opts ...Option) *Registry {
	r, err := NewRegistry(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// WithEmitter registers a custom emitter under the given format identifier,
// replacing a built-in of the same name.
func WithEmitter(format string, emitter Emitter) Option {
	return func(cfg *registryConfig) {
		if format != "" && emitter != nil {
			cfg.emitters[format] = emitter
		}
	}
}

// WithDefault selects the format used when a request names none.
func WithDefault(format string) Option {
	return func(cfg *registryConfig) {
		if format != "" {
			cfg.defaultFormat = format
		}
	}
}

// WithoutBuiltins drops the built-in emitters, leaving only those supplied
// via WithEmitter.
func WithoutBuiltins() Option {
	return func(cfg *registryConfig) {
		cfg.builtins = false
	}
}

// Default returns the registry's default format identifier.
func (r *Registry) Default() string {
	return r.defaultFormat
}

// Formats lists the registered format identifiers in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.emitters))
	for id := range r.emitters {
		formats = append(formats, id)
	}
	sort.Strings(formats)
	return formats
}

// Negotiate resolves the format for a request. An explicitly requested format
// wins; an empty request falls back to the default; an unregistered format is
// an ErrUnknownFormat client error.
func (r *Registry) Negotiate(requested string) (string, error) {
	if requested == "" {
		return r.defaultFormat, nil
	}
	if _, ok := r.emitters[requested]; !ok {
		return "", errors.Wrapf(ErrUnknownFormat, "%q", requested)
	}
	return requested, nil
}

// Emit serialises doc in the given format, returning the body bytes and the
// content type to send with them.
func (r *Registry) Emit(format string, doc any) ([]byte, string, error) {
	emitter, ok := r.emitters[format]
	if !ok {
		return nil, "", errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	body, err := emitter.Emit(doc)
	if err != nil {
		return nil, "", errors.Wrapf(err, "emitting %s", format)
	}
	return body, emitter.ContentType(), nil
}
