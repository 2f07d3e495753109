// Package payload decodes structured marquee input lines.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Payload is one structured input value.
type Payload struct {
	Prefix  string `json:"prefix,omitempty" jsonschema:"description=Text placed before the marquee (outside the static prefix)"`
	Content string `json:"content" jsonschema:"required,description=Text to scroll"`
	Suffix  string `json:"suffix,omitempty" jsonschema:"description=Text placed after the marquee (inside the static suffix)"`
	Rotate  bool   `json:"rotate" jsonschema:"default=true,description=Whether content wider than the window scrolls"`
}

// Plain wraps an unstructured value so it flows through the same path as a
// decoded one.
func Plain(content string) Payload {
	return Payload{Content: content, Rotate: true}
}

// ErrMissingContent is wrapped by DecodeError when "content" is absent or null.
var ErrMissingContent = errors.New("missing field `content`")

// DecodeError reports a value that could not be decoded as a Payload.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type wirePayload struct {
	Prefix  string  `json:"prefix"`
	Content *string `json:"content"`
	Suffix  string  `json:"suffix"`
	Rotate  *bool   `json:"rotate"`
}

// Decode parses raw as a JSON payload, applying defaults for the optional
// fields. Any failure is returned as a *DecodeError.
func Decode(raw string) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Payload{}, &DecodeError{Raw: raw, Err: err}
	}
	if w.Content == nil {
		return Payload{}, &DecodeError{Raw: raw, Err: ErrMissingContent}
	}
	p := Payload{
		Prefix:  w.Prefix,
		Content: *w.Content,
		Suffix:  w.Suffix,
		Rotate:  true,
	}
	if w.Rotate != nil {
		p.Rotate = *w.Rotate
	}
	return p, nil
}

// Schema returns the JSON Schema for a structured input line.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, RequiredFromJSONSchemaTags: true}
	sch := r.Reflect(&Payload{})
	sch.Title = "marquee payload"
	sch.Description = "One line of input when marquee runs with --json."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
