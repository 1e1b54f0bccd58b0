package emit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/drblury/restview/view"
)

const (
	xmlContentType = "application/xml"
	// Wire element names: the envelope root and the wrapper for each
	// collection element.
	xmlRootElement     = "response"
	xmlResourceElement = "resource"
)

// XMLEmitter serialises documents as XML. The document root is <response>,
// collection elements are wrapped in <resource>, and document keys become
// element names in declaration order, mirroring the JSON structure exactly.
type XMLEmitter struct{}

// Emit implements Emitter.
func (XMLEmitter) Emit(doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if err := writeXMLValue(enc, xmlRootElement, doc); err != nil {
		return nil, errors.Wrap(err, "encoding xml")
	}
	if err := enc.Flush(); err != nil {
		return nil, errors.Wrap(err, "flushing xml")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ContentType implements Emitter.
func (XMLEmitter) ContentType() string {
	return xmlContentType
}

func writeXMLValue(enc *xml.Encoder, name string, value any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := writeXMLContent(enc, value); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func writeXMLContent(enc *xml.Encoder, value any) error {
	switch typed := value.(type) {
	case nil:
		return nil
	case *view.Document:
		for _, key := range typed.Keys() {
			nested, _ := typed.Get(key)
			if err := writeXMLValue(enc, key, nested); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		// Raw maps have no declared order; sort for determinism.
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := writeXMLValue(enc, key, typed[key]); err != nil {
				return err
			}
		}
		return nil
	case time.Time:
		return writeXMLText(enc, typed.UTC().Format(time.RFC3339))
	case string:
		return writeXMLText(enc, typed)
	case []byte:
		return writeXMLText(enc, string(typed))
	case bool:
		return writeXMLText(enc, strconv.FormatBool(typed))
	case error:
		return writeXMLText(enc, typed.Error())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return writeXMLContent(enc, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := writeXMLValue(enc, xmlResourceElement, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return writeXMLText(enc, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return writeXMLText(enc, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return writeXMLText(enc, strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		return writeXMLText(enc, strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			// Honour omitempty so the XML shape matches what the JSON
			// emitter produces for the same struct.
			if jsonTagOmitEmpty(field) && rv.Field(i).IsZero() {
				continue
			}
			if err := writeXMLValue(enc, xmlFieldName(field), rv.Field(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return writeXMLText(enc, fmt.Sprint(value))
		}
		keys := make([]string, 0, rv.Len())
		for _, key := range rv.MapKeys() {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		for _, key := range keys {
			element := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface()
			if err := writeXMLValue(enc, key, element); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeXMLText(enc, fmt.Sprint(value))
	}
}

func writeXMLText(enc *xml.Encoder, text string) error {
	return enc.EncodeToken(xml.CharData(text))
}

func xmlFieldName(field reflect.StructField) string {
	if name := jsonTagName(field); name != "" {
		return name
	}
	return field.Name
}

// jsonTagName keeps raw-struct XML element names aligned with what the JSON
// emitter would produce for the same value.
func jsonTagOmitEmpty(field reflect.StructField) bool {
	tag := field.Tag.Get("json")
	for _, opt := range strings.Split(tag, ",")[1:] {
		if opt == "omitempty" {
			return true
		}
	}
	return false
}

func jsonTagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i]
		}
	}
	return tag
}
