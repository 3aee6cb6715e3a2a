package mpcodec

import (
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"mcpkg/internal/errkind"
)

// Reader parses a single tagged, int-keyed MessagePack map. Strings and
// binaries returned by its Get* methods are views into values already
// decoded by the underlying msgpack library (not copies taken from the
// original wire buffer), so their lifetime is simply the Reader's —
// there is no separate destroy step required to release them, unlike the
// C original where they pointed directly into the backing buffer.
type Reader struct {
	raw map[int]interface{}
}

// NewReader parses buf as a top-level tagged map.
func NewReader(buf []byte) (*Reader, error) {
	var raw map[int]interface{}
	if err := msgpack.Unmarshal(buf, &raw); err != nil {
		return nil, wrapErr(errkind.CodecParse, "unmarshal", err)
	}
	if raw == nil {
		return nil, newErr(errkind.CodecParse, "empty document")
	}
	return &Reader{raw: raw}, nil
}

// ExpectTag requires the root map to carry TAG==want.Name() and a numeric
// VERSION >= 1, returning that version.
func (r *Reader) ExpectTag(want Tag) (int, error) {
	info, ok := tagTable[want]
	if !ok {
		return 0, newErr(errkind.CodecInvalidArgument, "unknown tag")
	}
	nameRaw, ok := r.raw[KeyTag]
	if !ok {
		return 0, newErr(errkind.CodecParse, "missing tag")
	}
	name, ok := AsString(nameRaw)
	if !ok || name != info.Name {
		return 0, newErr(errkind.CodecParse, "tag mismatch")
	}
	verRaw, ok := r.raw[KeyVersion]
	if !ok {
		return 0, newErr(errkind.CodecParse, "missing version")
	}
	version, ok := AsInt64(verRaw)
	if !ok || version < 1 {
		return 0, newErr(errkind.CodecParse, "invalid version")
	}
	return int(version), nil
}

// GetInt32 looks up a signed 32-bit field.
func (r *Reader) GetInt32(key int) (int32, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := AsInt64(raw)
	if !ok {
		return 0, true, newErr(errkind.CodecParse, "expected integer")
	}
	return int32(n), true, nil
}

// GetUint32 looks up an unsigned 32-bit field.
func (r *Reader) GetUint32(key int) (uint32, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := AsInt64(raw)
	if !ok {
		return 0, true, newErr(errkind.CodecParse, "expected integer")
	}
	return uint32(n), true, nil
}

// GetInt64 looks up a signed 64-bit field.
func (r *Reader) GetInt64(key int) (int64, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := AsInt64(raw)
	if !ok {
		return 0, true, newErr(errkind.CodecParse, "expected integer")
	}
	return n, true, nil
}

// GetString looks up a string field.
func (r *Reader) GetString(key int) (string, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return "", false, nil
	}
	s, ok := AsString(raw)
	if !ok {
		return "", true, newErr(errkind.CodecParse, "expected string")
	}
	return s, true, nil
}

// GetBin looks up a binary field.
func (r *Reader) GetBin(key int) ([]byte, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case []byte:
		return v, true, nil
	case string:
		return []byte(v), true, nil
	default:
		return nil, true, newErr(errkind.CodecParse, "expected binary")
	}
}

// GetStringList materializes an owned []string for key, or (nil,false,nil)
// if the key is absent.
func (r *Reader) GetStringList(key int) ([]string, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return nil, false, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, true, newErr(errkind.CodecParse, "expected array")
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := AsString(item)
		if !ok {
			return nil, true, newErr(errkind.CodecParse, "expected string element")
		}
		out = append(out, s)
	}
	return out, true, nil
}

// GetDigest reads a single nested digest map.
func (r *Reader) GetDigest(key int) (DigestWire, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return DigestWire{}, false, nil
	}
	dw, err := parseDigestValue(raw)
	if err != nil {
		return DigestWire{}, true, err
	}
	return dw, true, nil
}

// GetDigestList reads an array of nested digest maps.
func (r *Reader) GetDigestList(key int) ([]DigestWire, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return nil, false, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, true, newErr(errkind.CodecParse, "expected array")
	}
	out := make([]DigestWire, 0, len(arr))
	for _, item := range arr {
		dw, err := parseDigestValue(item)
		if err != nil {
			return nil, true, err
		}
		out = append(out, dw)
	}
	return out, true, nil
}

// GetArray reads an arbitrary nested array, each element typically a nested
// map accessed via AsMap.
func (r *Reader) GetArray(key int) ([]interface{}, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return nil, false, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, true, newErr(errkind.CodecParse, "expected array")
	}
	return arr, true, nil
}

// GetMap reads an arbitrary nested map field.
func (r *Reader) GetMap(key int) (map[string]interface{}, bool, error) {
	raw, ok := r.raw[key]
	if !ok {
		return nil, false, nil
	}
	m, ok := AsMap(raw)
	if !ok {
		return nil, true, newErr(errkind.CodecParse, "expected map")
	}
	return m, true, nil
}

func parseDigestValue(raw interface{}) (DigestWire, error) {
	m, ok := AsMap(raw)
	if !ok {
		return DigestWire{}, newErr(errkind.CodecParse, "digest: expected map")
	}
	nameRaw, ok := m["0"]
	name, nameOK := AsString(nameRaw)
	if !ok || !nameOK || name != tagTable[TagDigest].Name {
		return DigestWire{}, newErr(errkind.CodecParse, "digest: tag mismatch")
	}
	algoRaw, ok := m["2"]
	algo, algoOK := AsInt64(algoRaw)
	if !ok || !algoOK {
		return DigestWire{}, newErr(errkind.CodecParse, "digest: missing algo")
	}
	hexRaw, ok := m["3"]
	hex, hexOK := AsString(hexRaw)
	if !ok || !hexOK {
		return DigestWire{}, newErr(errkind.CodecParse, "digest: missing hex")
	}
	return DigestWire{Algo: uint32(algo), Hex: hex}, nil
}

// AsInt64 normalizes any of the integer types msgpack/v5 may produce when
// decoding into interface{} (int64 at the top level where the Go map's
// value type is concrete, or the narrower int/uint family when decoded via
// a more specific path) into an int64.
func AsInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}

// AsString normalizes a string or []byte value to a string.
func AsString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// AsMap normalizes a nested map value. A value nested inside a field
// declared as interface{} decodes through msgpack/v5's generic map
// handling as map[string]interface{} (its keys stringified) even though
// the field was written with integer keys; AsMap accepts either shape so
// callers never have to special-case nesting depth.
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[int]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[strconv.Itoa(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
