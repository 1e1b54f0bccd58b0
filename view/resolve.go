package view

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

type absentMarker struct{}

// Absent is the well-defined "no such attribute" result of path resolution.
// It renders as null; resolution never fails on a missing segment.
var Absent = absentMarker{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absentMarker)
	return ok
}

// resolvePath walks the dotted path segments against src. A segment landing
// on a collection fans the remaining path out over each element, preserving
// element order. Missing segments resolve to Absent rather than failing.
func resolvePath(src any, segments []string) any {
	current := src
	for i, segment := range segments {
		if current == nil || IsAbsent(current) {
			return Absent
		}
		if isCollection(current) {
			return fanOut(current, segments[i:])
		}
		value, ok := lookup(current, segment)
		if !ok {
			return Absent
		}
		current = value
	}
	return current
}

func fanOut(collection any, segments []string) []any {
	rv := reflect.ValueOf(collection)
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, resolvePath(rv.Index(i).Interface(), segments))
	}
	return out
}

// isCollection reports whether v is an ordered homogeneous collection for the
// purposes of fan-out. Strings and byte slices stay scalar.
func isCollection(v any) bool {
	switch v.(type) {
	case nil, string, []byte:
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// lookup resolves one segment: map key, struct field (json tag, exact, then
// case-insensitive), or a no-argument single-return method. Func-valued
// members are invoked the same way callables are in dynamic attribute access.
func lookup(obj any, segment string) (any, bool) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		if value, ok := mapLookup(rv, segment); ok {
			return callIfCallable(value)
		}
	case reflect.Struct:
		if value, ok := structLookup(rv, segment); ok {
			return callIfCallable(value)
		}
	}

	if value, ok := methodLookup(rv, segment); ok {
		return value, true
	}
	return nil, false
}

func mapLookup(rv reflect.Value, segment string) (any, bool) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	value := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
	if value.IsValid() {
		return value.Interface(), true
	}
	for _, key := range rv.MapKeys() {
		if strings.EqualFold(key.String(), segment) {
			return rv.MapIndex(key).Interface(), true
		}
	}
	return nil, false
}

func structLookup(rv reflect.Value, segment string) (any, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		if tagName(field) == segment {
			return rv.Field(i).Interface(), true
		}
	}
	if field, ok := rt.FieldByName(segment); ok && field.IsExported() {
		if value, err := rv.FieldByIndexErr(field.Index); err == nil {
			return value.Interface(), true
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.IsExported() && strings.EqualFold(field.Name, segment) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func methodLookup(rv reflect.Value, segment string) (any, bool) {
	candidates := []reflect.Value{rv}
	if rv.CanAddr() {
		candidates = append(candidates, rv.Addr())
	} else if rv.Kind() != reflect.Pointer {
		// Methods on pointer receivers need an addressable copy.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		candidates = append(candidates, ptr)
	}

	names := []string{segment, exportedName(segment)}
	for _, candidate := range candidates {
		for _, name := range names {
			method := candidate.MethodByName(name)
			if method.IsValid() {
				return invoke(method)
			}
		}
		rt := candidate.Type()
		for i := 0; i < rt.NumMethod(); i++ {
			if strings.EqualFold(rt.Method(i).Name, segment) {
				return invoke(candidate.Method(i))
			}
		}
	}
	return nil, false
}

func callIfCallable(value any) (any, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Func {
		return invoke(rv)
	}
	return value, true
}

// invoke calls a zero-argument, single-return callable. Anything else, and
// any panic raised by the call, resolves to a missing segment: plain
// attribute lookup never raises.
func invoke(fn reflect.Value) (value any, ok bool) {
	ft := fn.Type()
	if ft.NumIn() != 0 || ft.NumOut() != 1 {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			value, ok = nil, false
		}
	}()
	return fn.Call(nil)[0].Interface(), true
}

func tagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

func exportedName(segment string) string {
	r, size := utf8.DecodeRuneInString(segment)
	if r == utf8.RuneError {
		return segment
	}
	return string(unicode.ToUpper(r)) + segment[size:]
}
