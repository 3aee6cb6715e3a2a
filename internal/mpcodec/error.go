package mpcodec

import (
	"fmt"

	"mcpkg/internal/errkind"
)

// CodecError is the narrow error type every codec operation fails with.
// Domain packages translate it via errkind.FromCodec.
type CodecError struct {
	Kind    errkind.CodecKind
	Message string
	Cause   error
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mpcodec: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("mpcodec: %s", e.Message)
}

func (e *CodecError) Unwrap() error { return e.Cause }

func newErr(kind errkind.CodecKind, message string) *CodecError {
	return &CodecError{Kind: kind, Message: message}
}

func wrapErr(kind errkind.CodecKind, message string, cause error) *CodecError {
	return &CodecError{Kind: kind, Message: message, Cause: cause}
}
