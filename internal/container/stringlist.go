package container

// StringList is an ordered sequence of owned strings. Push duplicates its
// input (Go strings are immutable so "duplicate" is just a copy of the
// header — no separate allocation is needed — but the method keeps the
// name the spec uses, since conceptually the list takes its own copy).
type StringList struct {
	items []string
}

// NewStringList creates an empty string list.
func NewStringList() *StringList {
	return &StringList{}
}

// Push appends s to the list.
func (l *StringList) Push(s string) {
	l.items = append(l.items, s)
}

// Len returns the number of strings held.
func (l *StringList) Len() int {
	return len(l.items)
}

// At returns the string at index i (borrowed: do not mutate the returned
// value's backing array via unsafe means) or ("", false) if out of range.
func (l *StringList) At(i int) (string, bool) {
	if i < 0 || i >= len(l.items) {
		return "", false
	}
	return l.items[i], true
}

// Slice returns a copy of the list contents as a plain []string.
func (l *StringList) Slice() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// FromSlice builds a StringList from an existing []string, copying it.
func FromSlice(ss []string) *StringList {
	l := &StringList{items: make([]string, len(ss))}
	copy(l.items, ss)
	return l
}
