package mc

// MaybeOwned replaces the C original's char* + owns_base_url bool pairing.
// A Static value points at a package-level constant and is cheap to Clone;
// an Owned value carries its own copy, produced once a caller overrides the
// default (e.g. a user-supplied provider base URL from config).
type MaybeOwned struct {
	value string
	owned bool
}

// Static wraps a value that is never mutated by its holder, such as a
// built-in template string. Cloning a Static is a cheap copy of the string
// header, matching the original's "points at static storage" case.
func Static(s string) MaybeOwned { return MaybeOwned{value: s, owned: false} }

// Owned wraps a value the holder is responsible for, such as one read from
// configuration or assembled at runtime.
func Owned(s string) MaybeOwned { return MaybeOwned{value: s, owned: true} }

// String returns the underlying value regardless of ownership.
func (m MaybeOwned) String() string { return m.value }

// IsOwned reports whether this value was constructed via Owned.
func (m MaybeOwned) IsOwned() bool { return m.owned }

// Clone returns an independent copy. Since Go strings are immutable and
// already copy-by-value, this simply returns m unchanged; the method exists
// to keep call sites symmetric with the rest of the Clone-based copy
// discipline used across mc and registry.
func (m MaybeOwned) Clone() MaybeOwned { return m }
