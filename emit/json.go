package emit

import "github.com/drblury/restview/jsonutil"

// Format identifiers for the built-in emitters.
const (
	FormatJSON  = "json"
	FormatXML   = "xml"
	FormatJSONP = "jsonp"
)

const jsonContentType = "application/json"

// JSONEmitter serialises documents as JSON via sonic. Ordered documents
// marshal their keys in declaration order.
type JSONEmitter struct{}

// Emit implements Emitter.
func (JSONEmitter) Emit(doc any) ([]byte, error) {
	body, err := jsonutil.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}
	return body, nil
}

// ContentType implements Emitter.
func (JSONEmitter) ContentType() string {
	return jsonContentType
}
