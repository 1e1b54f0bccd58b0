package view

import (
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Transform computes a field value from the source object. Returning an error
// aborts the render; the error surfaces as an internal failure carrying the
// field's destination key.
type Transform func(src any) (any, error)

// FieldOption configures optional behaviour on a field descriptor.
type FieldOption func(*Field)

// Field describes how a single destination key is produced: by resolving a
// dotted attribute path, by invoking a computed transform, or by evaluating a
// compiled expression. Fields are values and immutable once the owning view
// is constructed.
type Field struct {
	dest     string
	segments []string
	fn       Transform
	exprSrc  string
	program  *vm.Program
	nested   *View
}

// Path declares a field resolved by dotted attribute lookup. The destination
// key defaults to the final path segment.
func Path(path string, opts ...FieldOption) Field {
	segments := splitPath(path)
	f := Field{
		dest:     segments[len(segments)-1],
		segments: segments,
	}
	return f.apply(opts)
}

// PathAs declares a path field with an explicit destination key, required
// when the rendered name should differ from the final segment.
func PathAs(path, dest string, opts ...FieldOption) Field {
	f := Field{
		dest:     dest,
		segments: splitPath(path),
	}
	return f.apply(opts)
}

// Computed declares a field produced by a transform. The transform may return
// a scalar, a nested Apply result, or a slice of either.
func Computed(dest string, fn Transform, opts ...FieldOption) Field {
	f := Field{dest: dest, fn: fn}
	return f.apply(opts)
}

// Expr declares a field produced by evaluating an expr-lang expression
// against the source object. The expression is compiled once when the view is
// constructed.
func Expr(dest, expression string, opts ...FieldOption) Field {
	f := Field{dest: dest, exprSrc: expression}
	return f.apply(opts)
}

// WithNested renders the resolved value (or each element of a resolved
// collection) through sub before embedding it.
func WithNested(sub *View) FieldOption {
	return func(f *Field) {
		f.nested = sub
	}
}

// Destination returns the key this field writes into the document.
func (f Field) Destination() string {
	return f.dest
}

func (f Field) apply(opts []FieldOption) Field {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}
