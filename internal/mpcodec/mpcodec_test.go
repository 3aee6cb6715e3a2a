package mpcodec

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	if err := w.MapBegin(5); err != nil {
		t.Fatalf("map_begin: %v", err)
	}
	if err := w.WriteHeader(TagProvider); err != nil {
		t.Fatalf("write_header: %v", err)
	}
	if err := w.KVInt32(2, 1); err != nil {
		t.Fatalf("kv int32: %v", err)
	}
	if err := w.KVString(3, "modrinth"); err != nil {
		t.Fatalf("kv string: %v", err)
	}
	if err := w.KVUint32(6, 0x3F); err != nil {
		t.Fatalf("kv uint32: %v", err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	version, err := r.ExpectTag(TagProvider)
	if err != nil {
		t.Fatalf("expect tag: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
	id, found, err := r.GetInt32(2)
	if err != nil || !found || id != 1 {
		t.Fatalf("GetInt32(2) = %d,%v,%v", id, found, err)
	}
	name, found, err := r.GetString(3)
	if err != nil || !found || name != "modrinth" {
		t.Fatalf("GetString(3) = %q,%v,%v", name, found, err)
	}
	flags, found, err := r.GetUint32(6)
	if err != nil || !found || flags != 0x3F {
		t.Fatalf("GetUint32(6) = %d,%v,%v", flags, found, err)
	}
	if _, found, err := r.GetString(99); found || err != nil {
		t.Fatalf("absent key should report found=false, no error; got %v %v", found, err)
	}
}

func TestWriterDeclaredCountMismatch(t *testing.T) {
	w := NewWriter()
	if err := w.MapBegin(3); err != nil {
		t.Fatalf("map_begin: %v", err)
	}
	if err := w.WriteHeader(TagDigest); err != nil {
		t.Fatalf("write_header: %v", err)
	}
	// Only 2 of the declared 3 pairs written.
	if _, err := w.Finish(); err == nil {
		t.Fatalf("expected finish to fail on declared/written mismatch")
	}
}

func TestWriterTooManyPairs(t *testing.T) {
	w := NewWriter()
	if err := w.MapBegin(2); err != nil {
		t.Fatalf("map_begin: %v", err)
	}
	if err := w.WriteHeader(TagDigest); err != nil {
		t.Fatalf("write_header: %v", err)
	}
	if err := w.KVInt32(2, 1); err == nil {
		t.Fatalf("expected error writing beyond declared count")
	}
}

func TestReaderTagMismatch(t *testing.T) {
	w := NewWriter()
	_ = w.MapBegin(2)
	_ = w.WriteHeader(TagProvider)
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if _, err := r.ExpectTag(TagLoader); err == nil {
		t.Fatalf("expected tag mismatch error")
	}
}

func TestReaderTruncatedBuffer(t *testing.T) {
	w := NewWriter()
	_ = w.MapBegin(2)
	_ = w.WriteHeader(TagProvider)
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := NewReader(buf[:len(buf)/2]); err == nil {
		t.Fatalf("expected parse error on truncated buffer")
	}
}

func TestDigestRoundTrip(t *testing.T) {
	w := NewWriter()
	_ = w.MapBegin(3)
	_ = w.WriteHeader(TagModMetadata)
	if err := w.KVDigest(2, DigestWire{Algo: 2, Hex: "abcd"}); err != nil {
		t.Fatalf("kv digest: %v", err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if _, err := r.ExpectTag(TagModMetadata); err != nil {
		t.Fatalf("expect tag: %v", err)
	}
	d, found, err := r.GetDigest(2)
	if err != nil || !found {
		t.Fatalf("get digest: %v %v %v", d, found, err)
	}
	if d.Algo != 2 || d.Hex != "abcd" {
		t.Fatalf("unexpected digest: %+v", d)
	}
}

func TestDigestListRoundTrip(t *testing.T) {
	w := NewWriter()
	_ = w.MapBegin(3)
	_ = w.WriteHeader(TagModMetadata)
	ds := []DigestWire{{Algo: 1, Hex: "aa"}, {Algo: 2, Hex: "bb"}}
	if err := w.KVDigestList(2, ds); err != nil {
		t.Fatalf("kv digest list: %v", err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	got, found, err := r.GetDigestList(2)
	if err != nil || !found || len(got) != 2 {
		t.Fatalf("get digest list: %v %v %v", got, found, err)
	}
	if got[0] != ds[0] || got[1] != ds[1] {
		t.Fatalf("digest list mismatch: %+v", got)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	w := NewWriter()
	_ = w.MapBegin(3)
	_ = w.WriteHeader(TagVersionFamily)
	versions := []string{"1.21.8", "1.21.7"}
	if err := w.KVStringList(4, versions); err != nil {
		t.Fatalf("kv string list: %v", err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	got, found, err := r.GetStringList(4)
	if err != nil || !found {
		t.Fatalf("get string list: %v %v", found, err)
	}
	if len(got) != 2 || got[0] != "1.21.8" || got[1] != "1.21.7" {
		t.Fatalf("unexpected versions: %v", got)
	}
}
