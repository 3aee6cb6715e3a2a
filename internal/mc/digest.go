package mc

import (
	"strings"

	"mcpkg/internal/errkind"
	"mcpkg/internal/mpcodec"
)

// DigestAlgo identifies a content-hashing algorithm.
type DigestAlgo uint32

const (
	DigestAlgoUnknown DigestAlgo = iota
	DigestAlgoSHA1
	DigestAlgoSHA256
	DigestAlgoSHA512
	DigestAlgoMD5
)

var digestAlgoNames = map[DigestAlgo]string{
	DigestAlgoSHA1:   "sha1",
	DigestAlgoSHA256: "sha256",
	DigestAlgoSHA512: "sha512",
	DigestAlgoMD5:    "md5",
}

var digestAlgoHexLen = map[DigestAlgo]int{
	DigestAlgoSHA1:   40,
	DigestAlgoSHA256: 64,
	DigestAlgoSHA512: 128,
	DigestAlgoMD5:    32,
}

func (a DigestAlgo) String() string {
	if s, ok := digestAlgoNames[a]; ok {
		return s
	}
	return "unknown"
}

// Digest is a validated content hash: a known algorithm paired with a
// lowercase hex string of the exact length that algorithm requires.
type Digest struct {
	Algo DigestAlgo
	Hex  string
}

// New builds a Digest, validating hex against algo's known length and
// alphabet. A malformed digest is an errkind.Parse failure, not a
// programming error, so New reports it rather than panicking.
func New(algo DigestAlgo, hex string) (Digest, error) {
	wantLen, ok := digestAlgoHexLen[algo]
	if !ok {
		return Digest{}, errkind.New(errkind.InvalidArgument, "unknown digest algorithm")
	}
	lower := strings.ToLower(hex)
	if len(lower) != wantLen {
		return Digest{}, errkind.New(errkind.Parse, "digest hex length does not match algorithm")
	}
	for _, c := range lower {
		if !isHexDigit(c) {
			return Digest{}, errkind.New(errkind.Parse, "digest hex contains non-hex characters")
		}
	}
	return Digest{Algo: algo, Hex: lower}, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// FromString parses "algo:hex" (e.g. "sha256:abc123...").
func FromString(s string) (Digest, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Digest{}, false
	}
	for algo, name := range digestAlgoNames {
		if name == strings.ToLower(parts[0]) {
			d, err := New(algo, parts[1])
			if err != nil {
				return Digest{}, false
			}
			return d, true
		}
	}
	return Digest{}, false
}

// Clone returns an independent copy of d. Digest holds no shared mutable
// state, so this is a plain value copy; kept for symmetry with the other
// entities' Clone methods.
func (d Digest) Clone() Digest { return d }

// Pack serializes d as a standalone libmcpkg.digest document.
func (d Digest) Pack() ([]byte, error) {
	w := mpcodec.NewWriter()
	if err := w.MapBegin(4); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.WriteHeader(mpcodec.TagDigest); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVUint32(2, uint32(d.Algo)); err != nil {
		return nil, translateCodecErr(err)
	}
	if err := w.KVString(3, d.Hex); err != nil {
		return nil, translateCodecErr(err)
	}
	buf, err := w.Finish()
	if err != nil {
		return nil, translateCodecErr(err)
	}
	return buf, nil
}

// UnpackDigest parses a standalone libmcpkg.digest document produced by Pack.
func UnpackDigest(buf []byte) (Digest, error) {
	r, err := mpcodec.NewReader(buf)
	if err != nil {
		return Digest{}, translateCodecErr(err)
	}
	if _, err := r.ExpectTag(mpcodec.TagDigest); err != nil {
		return Digest{}, translateCodecErr(err)
	}
	algo, _, err := r.GetUint32(2)
	if err != nil {
		return Digest{}, translateCodecErr(err)
	}
	hex, _, err := r.GetString(3)
	if err != nil {
		return Digest{}, translateCodecErr(err)
	}
	return New(DigestAlgo(algo), hex)
}
