package raw

import (
	"errors"
	"fmt"
)

// ErrMalformedToken is matched by every *MalformedTokenError.
var ErrMalformedToken = errors.New("malformed token")

// MalformedTokenError is returned when a compact token does not resolve
// to exactly three segments.
type MalformedTokenError struct {
	Parts int
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("the token was expected to have 3 parts, but got %d", e.Parts)
}

func (e *MalformedTokenError) Is(target error) bool {
	return target == ErrMalformedToken
}

// SegmentError is returned when a signature passed to New or SetSignature
// is not valid base64url.
type SegmentError struct {
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("failed to decode %s segment: %v", e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// UnsupportedOperationError is returned by every claim-level accessor.
// Raw tokens only deal in raw JSON; use a claims-aware jwt library to
// read typed claims.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("raw token does not support %s", e.Op)
}

// Unwrap makes the error match errors.ErrUnsupported.
func (e *UnsupportedOperationError) Unwrap() error {
	return errors.ErrUnsupported
}

func unsupported(op string) error {
	return &UnsupportedOperationError{Op: op}
}

const (
	segmentHeader    = "header"
	segmentPayload   = "payload"
	segmentSignature = "signature"
)
