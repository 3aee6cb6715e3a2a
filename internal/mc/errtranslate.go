package mc

import (
	"errors"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mpcodec"
)

// translateCodecErr maps a *mpcodec.CodecError into the flat errkind.Kind
// taxonomy every other package deals in, per errkind.FromCodec. Non-codec
// errors pass through unchanged so callers can still wrap arbitrary I/O
// failures without losing them.
func translateCodecErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *mpcodec.CodecError
	if errors.As(err, &ce) {
		return errkind.Wrap(errkind.FromCodec(ce.Kind), err, ce.Message)
	}
	return err
}

// boolToInt32 renders a bool on the wire the way the codec's i32 fields
// expect: 1 for true, 0 for false.
func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
