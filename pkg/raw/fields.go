package raw

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Path-level access to the raw JSON. Paths use gjson/sjson syntax
// ("sub", "roles.0", "a\.b" for a literal dot). Edits keep key order and
// leave untouched bytes as they were, which the tree setters do not.
// None of these touch the signature.

// HeaderField returns the value at path in the header JSON.
func (t *Token) HeaderField(path string) gjson.Result {
	return gjson.Get(t.headerJSON, path)
}

// PayloadField returns the value at path in the payload JSON.
func (t *Token) PayloadField(path string) gjson.Result {
	return gjson.Get(t.payloadJSON, path)
}

// SetHeaderField sets the value at path in the header JSON, creating the
// header object if it is empty.
func (t *Token) SetHeaderField(path string, value any) error {
	out, err := sjson.Set(t.headerJSON, path, value)
	if err != nil {
		return fmt.Errorf("failed to set header field %q: %w", path, err)
	}
	t.headerJSON = out
	return nil
}

// SetPayloadField sets the value at path in the payload JSON, creating
// the payload object if it is empty.
func (t *Token) SetPayloadField(path string, value any) error {
	out, err := sjson.Set(t.payloadJSON, path, value)
	if err != nil {
		return fmt.Errorf("failed to set payload field %q: %w", path, err)
	}
	t.payloadJSON = out
	return nil
}

// SetHeaderFieldRaw sets the value at path in the header JSON to the given
// JSON text, which is inserted verbatim.
func (t *Token) SetHeaderFieldRaw(path, rawJSON string) error {
	out, err := sjson.SetRaw(t.headerJSON, path, rawJSON)
	if err != nil {
		return fmt.Errorf("failed to set header field %q: %w", path, err)
	}
	t.headerJSON = out
	return nil
}

// SetPayloadFieldRaw sets the value at path in the payload JSON to the
// given JSON text, which is inserted verbatim.
func (t *Token) SetPayloadFieldRaw(path, rawJSON string) error {
	out, err := sjson.SetRaw(t.payloadJSON, path, rawJSON)
	if err != nil {
		return fmt.Errorf("failed to set payload field %q: %w", path, err)
	}
	t.payloadJSON = out
	return nil
}

// DeleteHeaderField removes the value at path from the header JSON.
func (t *Token) DeleteHeaderField(path string) error {
	out, err := sjson.Delete(t.headerJSON, path)
	if err != nil {
		return fmt.Errorf("failed to delete header field %q: %w", path, err)
	}
	t.headerJSON = out
	return nil
}

// DeletePayloadField removes the value at path from the payload JSON.
func (t *Token) DeletePayloadField(path string) error {
	out, err := sjson.Delete(t.payloadJSON, path)
	if err != nil {
		return fmt.Errorf("failed to delete payload field %q: %w", path, err)
	}
	t.payloadJSON = out
	return nil
}
