package raw

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/picatz/rawjwt/pkg/base64"
	"github.com/picatz/rawjwt/pkg/diag"
	"github.com/picatz/rawjwt/pkg/signer"
)

// Token is a compact JWT held as three independent, mutable segments.
//
// A Token is a plain value owned by one caller at a time; it is not safe
// for concurrent mutation.
type Token struct {
	headerJSON  string
	payloadJSON string
	signature   []byte

	// original is the compact string the token was parsed from. It is
	// kept for traceability and never used to build output.
	original string

	diag diag.Sink
}

// Parse splits a compact token into its segments and decodes them.
//
// The token must have exactly three dot-separated segments. An unsigned
// token ("header.payload.") has an empty third segment and parses with
// an empty signature. Any other count fails with a *MalformedTokenError.
//
// The header and payload are decoded to text without any JSON validation.
// A segment that is not clean base64url is decoded leniently (see
// base64.DecodeLenient) and a diagnostic is emitted. If the header or
// payload does not decode to valid UTF-8, a diagnostic is emitted and that
// segment's JSON is left empty. Either way the rest of the token is still
// usable, so the only error Parse returns for its input is a
// *MalformedTokenError.
func Parse(token string, opts ...Option) (*Token, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	parts, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	t := &Token{
		original: token,
		diag:     cfg.diag,
	}

	t.headerJSON = t.decodeText(segmentHeader, parts[0])
	t.payloadJSON = t.decodeText(segmentPayload, parts[1])
	t.signature = t.decodeSegment(segmentSignature, parts[2])

	return t, nil
}

// New assembles a token from plain header and payload JSON text and a
// base64url encoded signature. The JSON is not validated. Unlike Parse,
// the signature is decoded strictly and a bad one fails with a
// *SegmentError.
func New(headerJSON, payloadJSON, signature string, opts ...Option) (*Token, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	sig, err := decodeSignature(signature)
	if err != nil {
		return nil, err
	}

	return &Token{
		headerJSON:  headerJSON,
		payloadJSON: payloadJSON,
		signature:   sig,
		diag:        cfg.diag,
	}, nil
}

// splitToken splits a JWT into its three parts, returning an error if the
// token is not in the correct format.
func splitToken(token string) ([3]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return [3]string{}, &MalformedTokenError{Parts: len(parts)}
	}

	return [3]string{parts[0], parts[1], parts[2]}, nil
}

// decodeSegment decodes one segment of a parsed token, falling back to
// lenient decoding when it is not clean base64url.
func (t *Token) decodeSegment(segment, encoded string) []byte {
	b, err := base64.Decode(encoded)
	if err == nil {
		return b
	}

	t.emit("segment is not valid base64url, decoding leniently",
		diag.F("segment", segment),
		diag.F("error", err.Error()),
	)
	return base64.DecodeLenient(encoded)
}

func (t *Token) decodeText(segment, encoded string) string {
	b := t.decodeSegment(segment, encoded)

	if !utf8.Valid(b) {
		t.emit("segment is not valid UTF-8, leaving it empty",
			diag.F("segment", segment),
			diag.F("bytes", len(b)),
		)
		return ""
	}

	return string(b)
}

// emit reports a recoverable problem. A zero Token has no sink and falls
// back to diag.Default.
func (t *Token) emit(msg string, fields ...diag.Field) {
	sink := t.diag
	if sink == nil {
		sink = diag.Default()
	}
	sink.Emit(msg, fields...)
}

// decodeSignature strictly decodes a signature supplied by the caller.
func decodeSignature(encoded string) ([]byte, error) {
	b, err := base64.Decode(encoded)
	if err != nil {
		return nil, &SegmentError{Segment: segmentSignature, Err: err}
	}
	return b, nil
}

// Original returns the compact token this value was parsed from, or the
// empty string if it was assembled with New.
func (t *Token) Original() string {
	return t.original
}

// HeaderJSON returns the header JSON text verbatim.
func (t *Token) HeaderJSON() string {
	return t.headerJSON
}

// PayloadJSON returns the payload JSON text verbatim.
func (t *Token) PayloadJSON() string {
	return t.payloadJSON
}

// SetHeaderJSON replaces the header JSON text. It is not validated, and
// the signature is not touched.
func (t *Token) SetHeaderJSON(headerJSON string) {
	t.headerJSON = headerJSON
}

// SetPayloadJSON replaces the payload JSON text. It is not validated, and
// the signature is not touched.
func (t *Token) SetPayloadJSON(payloadJSON string) {
	t.payloadJSON = payloadJSON
}

// HeaderJSONNode parses the header into a generic JSON tree. Objects are
// map[string]any, arrays []any, and numbers json.Number.
//
// On parse failure it returns nil and emits a diagnostic. Callers that
// need the reason should parse HeaderJSON themselves.
func (t *Token) HeaderJSONNode() any {
	return t.parseNode(segmentHeader, t.headerJSON)
}

// PayloadJSONNode parses the payload into a generic JSON tree, with the
// same failure behavior as HeaderJSONNode.
func (t *Token) PayloadJSONNode() any {
	return t.parseNode(segmentPayload, t.payloadJSON)
}

// SetHeaderJSONNode serializes the tree and uses it as the header JSON.
// If the tree cannot be serialized the header is left unchanged and a
// diagnostic is emitted.
func (t *Token) SetHeaderJSONNode(node any) {
	if text, ok := t.serializeNode(segmentHeader, node); ok {
		t.headerJSON = text
	}
}

// SetPayloadJSONNode serializes the tree and uses it as the payload JSON,
// with the same failure behavior as SetHeaderJSONNode.
func (t *Token) SetPayloadJSONNode(node any) {
	if text, ok := t.serializeNode(segmentPayload, node); ok {
		t.payloadJSON = text
	}
}

func (t *Token) parseNode(segment, text string) any {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var node any
	err := dec.Decode(&node)
	if err == nil {
		// A JSON document is exactly one value.
		if _, trailing := dec.Token(); !errors.Is(trailing, io.EOF) {
			err = fmt.Errorf("unexpected data after top-level value")
		}
	}

	if err != nil {
		t.emit("failed to read json tree",
			diag.F("segment", segment),
			diag.F("error", err.Error()),
		)
		return nil
	}

	return node
}

func (t *Token) serializeNode(segment string, node any) (string, bool) {
	buff := bytes.NewBuffer(nil)

	enc := json.NewEncoder(buff)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(node); err != nil {
		t.emit("failed to write json tree",
			diag.F("segment", segment),
			diag.F("error", err.Error()),
		)
		return "", false
	}

	return strings.TrimSuffix(buff.String(), "\n"), true
}

// Signature returns the raw signature bytes as unpadded base64url text.
// An unsigned token returns the empty string.
func (t *Token) Signature() string {
	return base64.Encode(t.signature)
}

// SignatureBytes returns a copy of the raw signature bytes.
func (t *Token) SignatureBytes() []byte {
	return bytes.Clone(t.signature)
}

// SetSignature decodes base64url text and uses it as the signature. The
// header and payload are not consulted. On a decode error the signature
// is left unchanged.
func (t *Token) SetSignature(signature string) error {
	sig, err := decodeSignature(signature)
	if err != nil {
		return err
	}
	t.signature = sig
	return nil
}

// SetSignatureBytes uses a copy of the given bytes as the signature.
func (t *Token) SetSignatureBytes(signature []byte) {
	t.signature = bytes.Clone(signature)
}

// SigningInput returns the JWS signing input for the current header and
// payload text: base64url(header) "." base64url(payload).
func (t *Token) SigningInput() string {
	return base64.EncodeString(t.headerJSON) + "." + base64.EncodeString(t.payloadJSON)
}

// CalculateAndSetSignature signs the current signing input with s and
// replaces the signature with the result.
//
// The "alg" declared in the header is never compared to s.Algorithm(); a
// header claiming HS256 can be signed with RS256 or not at all. Errors
// from the signer are returned as-is, and the signature is unchanged.
func (t *Token) CalculateAndSetSignature(s signer.Signer) error {
	if s == nil {
		return fmt.Errorf("no signer provided")
	}

	sig, err := s.Sign([]byte(t.SigningInput()))
	if err != nil {
		return err
	}

	t.signature = bytes.Clone(sig)
	return nil
}

// String returns the compact serialization of the current segments. It is
// recomputed on every call, so any mutation is reflected immediately.
func (t *Token) String() string {
	return t.SigningInput() + "." + t.Signature()
}

// Clone returns a copy of the token that shares nothing mutable with t.
// The diagnostic sink and original string carry over.
func (t *Token) Clone() *Token {
	c := *t
	c.signature = bytes.Clone(t.signature)
	return &c
}
