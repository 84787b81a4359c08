package modelkit

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Encoding selects a canonical document representation.
type Encoding string

const (
	// EncodingJSON renders 2-space indented JSON with sorted keys, so two
	// serializations of equal graphs diff cleanly.
	EncodingJSON Encoding = "json"
	// EncodingYAML renders standard safe YAML.
	EncodingYAML Encoding = "yaml"
	// EncodingMap returns the in-memory keyed-mapping form.
	EncodingMap Encoding = "map"
)

// Serialize validates the graph and renders it in the requested encoding.
// JSON and YAML return a string; EncodingMap returns a map[string]any. An
// encoding outside the supported set returns UnsupportedEncodingError.
func (o *Object) Serialize(enc Encoding) (any, error) {
	doc, err := o.encode()
	if err != nil {
		return nil, err
	}
	switch enc {
	case EncodingJSON:
		b, err := gojson.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case EncodingYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case EncodingMap:
		return doc, nil
	default:
		return nil, &UnsupportedEncodingError{Encoding: enc}
	}
}

// SerializeJSON is Serialize(EncodingJSON) with a string result.
func (o *Object) SerializeJSON() (string, error) {
	v, err := o.Serialize(EncodingJSON)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SerializeYAML is Serialize(EncodingYAML) with a string result.
func (o *Object) SerializeYAML() (string, error) {
	v, err := o.Serialize(EncodingYAML)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// SerializeMap is Serialize(EncodingMap) with a map result.
func (o *Object) SerializeMap() (map[string]any, error) {
	v, err := o.Serialize(EncodingMap)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// Deserialize populates the object from v and returns it. v is either a
// pre-parsed map[string]any or a string/[]byte holding JSON or YAML text.
// Parser errors propagate unwrapped; validation of the populated graph
// returns a *ValidationError.
func (o *Object) Deserialize(v any) (*Object, error) {
	var doc map[string]any
	switch t := v.(type) {
	case map[string]any:
		doc = t
	case string:
		m, err := parseDocument([]byte(t))
		if err != nil {
			return nil, err
		}
		doc = m
	case []byte:
		m, err := parseDocument(t)
		if err != nil {
			return nil, err
		}
		doc = m
	default:
		return nil, fmt.Errorf("modelkit: cannot deserialize %T; want map[string]any, string or []byte", v)
	}
	if err := o.decode(doc); err != nil {
		return nil, err
	}
	return o, nil
}

// parseDocument parses serialized text into the canonical mapping form.
// JSON takes the JSON decoder so wire strings survive untouched; everything
// else goes through the YAML parser, which accepts JSON as a subset anyway.
func parseDocument(b []byte) (map[string]any, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "{") {
		var doc map[string]any
		if err := gojson.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Clone returns an independent deep copy, implemented as a decode of this
// object's encoded form into a fresh instance. The copy shares no mutable
// state with the original.
func (o *Object) Clone() (*Object, error) {
	doc, err := o.encode()
	if err != nil {
		return nil, err
	}
	fresh, err := o.reg.New(o.desc.TypeName)
	if err != nil {
		return nil, err
	}
	if err := fresh.decode(doc); err != nil {
		return nil, err
	}
	return fresh, nil
}

// String renders the object as YAML, mirroring the serialized form used for
// equality. Invalid graphs render their validation error instead.
func (o *Object) String() string {
	s, err := o.SerializeYAML()
	if err != nil {
		return fmt.Sprintf("modelkit.Object(%s) invalid: %v", o.desc.TypeName, err)
	}
	return s
}

// Equal reports whether two objects serialize to the same document.
func (o *Object) Equal(other *Object) bool {
	if other == nil {
		return false
	}
	return o.String() == other.String()
}
