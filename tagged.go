package choirdeck

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// decodeStrict decodes a single JSON value into v, rejecting keys that v does not declare,
// declared keys that are missing or null, and any trailing data after the value.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after top-level value")
	}
	return requireFields(data, reflect.TypeOf(v), "")
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func fieldPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// requireFields walks data alongside t and reports the first json-tagged field that is absent or null.
// Fields tagged omitempty are optional. Types with their own UnmarshalJSON check their payloads themselves.
func requireFields(data []byte, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			raw, found := fields[name]
			if !found || isNull(raw) {
				if strings.Contains(opts, "omitempty") {
					continue
				}
				if path == "" {
					return errors.Errorf("missing field '%s'", name)
				}
				return errors.Errorf("%s: missing field '%s'", path, name)
			}
			if err := requireFields(raw, f.Type, fieldPath(path, name)); err != nil {
				return err
			}
		}

	case reflect.Map:
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		for k, raw := range entries {
			p := fieldPath(path, k)
			if isNull(raw) {
				return errors.Errorf("%s: null entry", p)
			}
			if err := requireFields(raw, t.Elem(), p); err != nil {
				return err
			}
		}

	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for i, raw := range items {
			p := fieldPath(path, strconv.Itoa(i))
			if isNull(raw) {
				return errors.Errorf("%s: null entry", p)
			}
			if err := requireFields(raw, t.Elem(), p); err != nil {
				return err
			}
		}
	}
	return nil
}

// marshalTagged renders body as a JSON object with the discriminator tagKey:tag as its first key.
// A nil body produces an object carrying only the discriminator.
func marshalTagged(tagKey, tag string, body any) ([]byte, error) {
	key, err := json.Marshal(tagKey)
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)

	if body != nil {
		inner, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		if len(inner) < 2 || inner[0] != '{' {
			return nil, errors.Errorf("tagged variant '%s' payload is not an object", tag)
		}
		if rest := bytes.TrimSpace(inner[1 : len(inner)-1]); len(rest) > 0 {
			buf.WriteByte(',')
			buf.Write(rest)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// splitTagged separates the discriminator tagKey from a JSON object. The returned payload is
// the remaining object (possibly "{}"), ready for strict decoding into the variant type.
func splitTagged(data []byte, tagKey string) (string, []byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", nil, err
	}
	if fields == nil {
		return "", nil, errors.Errorf("expected object with '%s' discriminator, got null", tagKey)
	}

	rawTag, found := fields[tagKey]
	if !found {
		return "", nil, errors.Errorf("missing '%s' discriminator", tagKey)
	}
	var tag string
	if err := json.Unmarshal(rawTag, &tag); err != nil {
		return "", nil, errors.Wrapf(err, "invalid '%s' discriminator", tagKey)
	}
	delete(fields, tagKey)

	payload, err := json.Marshal(fields)
	if err != nil {
		return "", nil, err
	}
	return tag, payload, nil
}

// requireEmpty rejects payload keys for variants that carry no data.
func requireEmpty(tag string, payload []byte) error {
	var rest map[string]json.RawMessage
	if err := json.Unmarshal(payload, &rest); err != nil {
		return err
	}
	if len(rest) > 0 {
		return errors.Errorf("variant '%s' does not accept fields", tag)
	}
	return nil
}
