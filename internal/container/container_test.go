package container

import "testing"

func TestSeqPushOrder(t *testing.T) {
	s := NewSeq[int](0)
	for _, v := range []int{3, 1, 4, 1, 5} {
		s.Push(v)
	}
	if s.Len() != 5 {
		t.Fatalf("expected len 5, got %d", s.Len())
	}
	want := []int{3, 1, 4, 1, 5}
	for i, w := range want {
		got, ok := s.At(i)
		if !ok || *got != w {
			t.Fatalf("At(%d) = %v,%v want %d", i, got, ok, w)
		}
	}
	if _, ok := s.At(5); ok {
		t.Fatalf("expected out-of-range At to report false")
	}
}

func TestSeqRemoveAt(t *testing.T) {
	s := NewSeq[string](0)
	s.Push("a")
	s.Push("b")
	s.Push("c")
	if !s.RemoveAt(1) {
		t.Fatalf("expected RemoveAt to succeed")
	}
	got, _ := s.At(1)
	if *got != "c" {
		t.Fatalf("expected c after removing b, got %s", *got)
	}
	if s.RemoveAt(10) {
		t.Fatalf("expected out-of-range RemoveAt to fail")
	}
}

func TestStringListPushAndAt(t *testing.T) {
	l := NewStringList()
	l.Push("alpha")
	l.Push("beta")
	if l.Len() != 2 {
		t.Fatalf("expected len 2, got %d", l.Len())
	}
	got, ok := l.At(0)
	if !ok || got != "alpha" {
		t.Fatalf("At(0) = %q,%v want alpha", got, ok)
	}
	if _, ok := l.At(2); ok {
		t.Fatalf("expected out-of-range At to report false")
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []string{"x", "y"}
	l := FromSlice(src)
	src[0] = "mutated"
	got, _ := l.At(0)
	if got != "x" {
		t.Fatalf("FromSlice should copy input, got %q", got)
	}
}
