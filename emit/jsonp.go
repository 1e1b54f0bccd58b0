package emit

import (
	"bytes"
	"regexp"

	"github.com/drblury/restview/jsonutil"
)

const (
	jsonpContentType    = "application/javascript"
	defaultJSONPPadding = "callback"
)

// Callback names are restricted to plain identifier chains to keep the
// padding injection-safe.
var jsonpCallbackPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// JSONPEmitter wraps the JSON encoding of a document in a callback
// invocation for script-tag transport.
type JSONPEmitter struct {
	callback string
}

// NewJSONPEmitter returns a JSONP emitter using the given callback name. An
// empty or invalid name falls back to "callback".
func NewJSONPEmitter(callback string) JSONPEmitter {
	if callback == "" || !jsonpCallbackPattern.MatchString(callback) {
		callback = defaultJSONPPadding
	}
	return JSONPEmitter{callback: callback}
}

// Emit implements Emitter.
func (e JSONPEmitter) Emit(doc any) ([]byte, error) {
	body, err := jsonutil.Marshal(doc)
	if err != nil {
		return nil, err
	}

	callback := e.callback
	if callback == "" {
		callback = defaultJSONPPadding
	}

	var buf bytes.Buffer
	buf.Grow(len(callback) + len(body) + 4)
	buf.WriteString(callback)
	buf.WriteByte('(')
	buf.Write(body)
	buf.WriteString(");\n")
	return buf.Bytes(), nil
}

// ContentType implements Emitter.
func (e JSONPEmitter) ContentType() string {
	return jsonpContentType
}
