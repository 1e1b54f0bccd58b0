package view

import (
	"reflect"

	"github.com/pkg/errors"
)

// View is a named, ordered list of field descriptors. Views are constructed
// once at startup and are immutable afterwards, which makes them safe to
// share across concurrent renders.
type View struct {
	name   string
	fields []Field
}

// New builds a view from the given fields. It rejects duplicate destination
// keys and compiles any expression fields up front, so per-request rendering
// never pays a compilation cost.
func New(name string, fields ...Field) (*View, error) {
	seen := make(map[string]struct{}, len(fields))
	compiled := make([]Field, 0, len(fields))
	for _, field := range fields {
		if field.dest == "" {
			return nil, errors.Errorf("view %q: field with empty destination", name)
		}
		if _, dup := seen[field.dest]; dup {
			return nil, errors.Errorf("view %q: duplicate destination %q", name, field.dest)
		}
		seen[field.dest] = struct{}{}

		if field.exprSrc != "" {
			program, err := compileExpr(field.exprSrc)
			if err != nil {
				return nil, errors.Wrapf(err, "view %q: field %q", name, field.dest)
			}
			field.program = program
		}
		compiled = append(compiled, field)
	}
	return &View{name: name, fields: compiled}, nil
}

// MustNew is New, panicking on error. Intended for package-level view
// declarations.
func MustNew(name string, fields ...Field) *View {
	v, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the diagnostic name of the view.
func (v *View) Name() string {
	return v.name
}

// Fields returns the view's field descriptors in declared order.
func (v *View) Fields() []Field {
	fields := make([]Field, len(v.fields))
	copy(fields, v.fields)
	return fields
}

// application is the marker a computed transform returns (via Apply) to
// request nested rendering of a sub-view.
type application struct {
	view *View
	src  any
}

// Apply requests that src (an object or a homogeneous collection) be rendered
// through v when the enclosing field is embedded into its document.
func Apply(v *View, src any) any {
	return &application{view: v, src: src}
}

// Render projects src through the view. A single source object yields a
// *Document; a slice or array yields []any of documents in input order.
// Rendering is pure: it never mutates src, and re-rendering an unchanged
// source yields a structurally equal result.
func (v *View) Render(src any) (any, error) {
	if isCollection(src) {
		rv := reflect.ValueOf(src)
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			doc, err := v.renderOne(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, doc)
		}
		return out, nil
	}
	return v.renderOne(src)
}

// RenderDocument renders a single source object, rejecting collections. It is
// a convenience for callers that know the cardinality up front.
func (v *View) RenderDocument(src any) (*Document, error) {
	if isCollection(src) {
		return nil, errors.Errorf("view %q: RenderDocument called with a collection", v.name)
	}
	return v.renderOne(src)
}

func (v *View) renderOne(src any) (*Document, error) {
	doc := NewDocument()
	for _, field := range v.fields {
		value, err := v.resolveField(field, src)
		if err != nil {
			return nil, err
		}
		doc.Set(field.dest, value)
	}
	return doc, nil
}

func (v *View) resolveField(field Field, src any) (any, error) {
	var value any
	switch {
	case field.fn != nil:
		computed, err := field.fn(src)
		if err != nil {
			return nil, errors.Wrapf(err, "view %q: computed field %q", v.name, field.dest)
		}
		value = computed
	case field.program != nil:
		evaluated, err := runExpr(field.program, src)
		if err != nil {
			return nil, errors.Wrapf(err, "view %q: expression field %q", v.name, field.dest)
		}
		value = evaluated
	default:
		value = resolvePath(src, field.segments)
	}
	return v.embed(field, value)
}

// embed normalises a resolved value for inclusion in the document: Absent
// becomes null, Apply requests and nested sub-views are rendered, and
// collections are normalised element-wise.
func (v *View) embed(field Field, value any) (any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case absentMarker:
		return nil, nil
	case *application:
		rendered, err := typed.view.Render(typed.src)
		if err != nil {
			return nil, errors.Wrapf(err, "view %q: field %q", v.name, field.dest)
		}
		return rendered, nil
	case *Document:
		return typed, nil
	case []any:
		out := make([]any, 0, len(typed))
		for _, element := range typed {
			embedded, err := v.embed(field, element)
			if err != nil {
				return nil, err
			}
			out = append(out, embedded)
		}
		return out, nil
	}

	if field.nested != nil {
		rendered, err := field.nested.Render(value)
		if err != nil {
			return nil, errors.Wrapf(err, "view %q: field %q", v.name, field.dest)
		}
		return rendered, nil
	}
	return value, nil
}
