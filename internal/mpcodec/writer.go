package mpcodec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"mcpkg/internal/errkind"
)

// DigestWire is the wire shape of a digest value: algorithm id plus hex
// string. internal/mc converts to/from its richer, validated Digest type.
type DigestWire struct {
	Algo uint32
	Hex  string
}

// Writer builds a single tagged, int-keyed MessagePack map. Callers declare
// the exact number of key/value pairs up front via MapBegin (the count
// includes the two header pairs written by WriteHeader) and the writer
// refuses to Finish unless exactly that many pairs were written.
type Writer struct {
	fields   map[int]interface{}
	order    []int
	declared int
	finished bool
}

// NewWriter allocates an empty writer.
func NewWriter() *Writer {
	return &Writer{fields: make(map[int]interface{}), declared: -1}
}

// MapBegin declares the exact number of key/value pairs this writer will
// emit, the header pair included. It may be called only once per writer.
func (w *Writer) MapBegin(n int) error {
	if w.finished {
		return newErr(errkind.CodecInvalidArgument, "map_begin after finish")
	}
	if w.declared >= 0 {
		return newErr(errkind.CodecInvalidArgument, "map_begin already called")
	}
	if n <= 0 {
		return newErr(errkind.CodecInvalidArgument, "map_begin: n must be positive")
	}
	w.declared = n
	return nil
}

func (w *Writer) set(key int, v interface{}) error {
	if w.finished {
		return newErr(errkind.CodecInvalidArgument, "write after finish")
	}
	if w.declared < 0 {
		return newErr(errkind.CodecInvalidArgument, "map_begin not called")
	}
	if _, exists := w.fields[key]; exists {
		return newErr(errkind.CodecInvalidArgument, fmt.Sprintf("key %d written twice", key))
	}
	if len(w.order) >= w.declared {
		return newErr(errkind.CodecInvalidArgument, "more pairs written than declared")
	}
	w.fields[key] = v
	w.order = append(w.order, key)
	return nil
}

// WriteHeader emits the reserved TAG and VERSION pairs for tag. Counts as
// two of the pairs declared by MapBegin.
func (w *Writer) WriteHeader(tag Tag) error {
	info, ok := tagTable[tag]
	if !ok {
		return newErr(errkind.CodecInvalidArgument, "unknown tag")
	}
	if err := w.set(KeyTag, info.Name); err != nil {
		return err
	}
	return w.set(KeyVersion, int64(info.Version))
}

// KVInt32 writes a signed 32-bit integer field.
func (w *Writer) KVInt32(key int, v int32) error { return w.set(key, int64(v)) }

// KVUint32 writes an unsigned 32-bit integer field.
func (w *Writer) KVUint32(key int, v uint32) error { return w.set(key, int64(v)) }

// KVInt64 writes a signed 64-bit integer field.
func (w *Writer) KVInt64(key int, v int64) error { return w.set(key, v) }

// KVString writes a UTF-8 string field.
func (w *Writer) KVString(key int, v string) error { return w.set(key, v) }

// KVBin writes a binary blob field.
func (w *Writer) KVBin(key int, v []byte) error { return w.set(key, v) }

// KVNil writes an explicit nil field.
func (w *Writer) KVNil(key int) error { return w.set(key, nil) }

// KVStringList writes an ordered list of strings.
func (w *Writer) KVStringList(key int, v []string) error {
	arr := make([]interface{}, len(v))
	for i, s := range v {
		arr[i] = s
	}
	return w.set(key, arr)
}

// KVDigest writes a single digest as a nested tagged map.
func (w *Writer) KVDigest(key int, d DigestWire) error {
	return w.set(key, digestMap(d))
}

// KVDigestList writes an ordered list of digests as an array of nested
// tagged maps.
func (w *Writer) KVDigestList(key int, ds []DigestWire) error {
	arr := make([]interface{}, len(ds))
	for i, d := range ds {
		arr[i] = digestMap(d)
	}
	return w.set(key, arr)
}

// KVMap writes an arbitrary nested int-keyed map, for entities (ModRef,
// ModMetadata) that embed one another without a top-level tag of their own.
func (w *Writer) KVMap(key int, m map[int]interface{}) error { return w.set(key, m) }

// KVArray writes an arbitrary array of pre-built values (e.g. an array of
// KVMap-shaped maps), for fields like a dependency list.
func (w *Writer) KVArray(key int, items []interface{}) error { return w.set(key, items) }

func digestMap(d DigestWire) map[int]interface{} {
	info := tagTable[TagDigest]
	return map[int]interface{}{
		KeyTag:     info.Name,
		KeyVersion: int64(info.Version),
		2:          int64(d.Algo),
		3:          d.Hex,
	}
}

// Finish validates that exactly the declared number of pairs were written
// and returns the encoded buffer. The writer must not be used afterwards
// except via Destroy.
func (w *Writer) Finish() ([]byte, error) {
	if w.finished {
		return nil, newErr(errkind.CodecInvalidArgument, "finish called twice")
	}
	if len(w.order) != w.declared {
		return nil, newErr(errkind.CodecParse, fmt.Sprintf("declared %d pairs, wrote %d", w.declared, len(w.order)))
	}
	data, err := msgpack.Marshal(w.fields)
	w.finished = true
	if err != nil {
		return nil, wrapErr(errkind.CodecIO, "marshal", err)
	}
	return data, nil
}

// Destroy releases the writer. Safe to call at any point, including after a
// failed write; only legal operation once Destroy has been called.
func (w *Writer) Destroy() {
	w.finished = true
	w.fields = nil
	w.order = nil
}
