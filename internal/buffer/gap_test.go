package buffer

import (
	"bytes"
	"strings"
	"testing"
)

func newFrom(t *testing.T, s string) *GapBuffer {
	t.Helper()
	b, err := NewFrom([]byte(s))
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	return b
}

func content(b *GapBuffer) string {
	return string(b.Extract(0, b.Len()))
}

func TestEmptyBuffer(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
	if got := b.Get(0); got != -1 {
		t.Fatalf("Get(0) = %d, want -1", got)
	}
}

func TestGetAcrossGap(t *testing.T) {
	b := newFrom(t, "hello")
	if err := b.Insert(2, []byte("XY")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	want := "heXYllo"
	for i := 0; i < len(want); i++ {
		if got := b.Get(i); got != int(want[i]) {
			t.Fatalf("Get(%d) = %q, want %q", i, byte(got), want[i])
		}
	}
	if got := b.Get(len(want)); got != -1 {
		t.Fatalf("Get(end) = %d, want -1", got)
	}
}

func TestCopySpansGap(t *testing.T) {
	b := newFrom(t, "abcdef")
	if err := b.Erase(2, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	dst := make([]byte, 10)
	n := b.Copy(dst, 0)
	if n != 4 || string(dst[:n]) != "abef" {
		t.Fatalf("Copy = %q (%d), want %q (4)", dst[:n], n, "abef")
	}
	n = b.Copy(dst[:2], 1)
	if n != 2 || string(dst[:2]) != "be" {
		t.Fatalf("Copy offset = %q (%d), want %q (2)", dst[:2], n, "be")
	}
}

func TestReplaceMiddle(t *testing.T) {
	b := newFrom(t, "one two three")
	if err := b.Replace(4, 3, []byte("2")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := content(b); got != "one 2 three" {
		t.Fatalf("content = %q, want %q", got, "one 2 three")
	}
	if b.Len() != 11 {
		t.Fatalf("Len = %d, want 11", b.Len())
	}
}

func TestEraseAtGapBoundary(t *testing.T) {
	b := newFrom(t, "abcdef")
	// Park the gap at position 3, then erase around the boundary.
	if err := b.Insert(3, nil); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.Erase(2, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if got := content(b); got != "abef" {
		t.Fatalf("content = %q, want %q", got, "abef")
	}
}

func TestGrowBeyondInitialGap(t *testing.T) {
	b := newFrom(t, "ab")
	big := strings.Repeat("x", MinExtend+100)
	if err := b.Insert(1, []byte(big)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.Len() != 2+len(big) {
		t.Fatalf("Len = %d, want %d", b.Len(), 2+len(big))
	}
	if got := b.Get(0); got != 'a' {
		t.Fatalf("Get(0) = %q, want 'a'", byte(got))
	}
	if got := b.Get(b.Len() - 1); got != 'b' {
		t.Fatalf("Get(last) = %q, want 'b'", byte(got))
	}
	if got := b.Get(1); got != 'x' {
		t.Fatalf("Get(1) = %q, want 'x'", byte(got))
	}
}

func TestLengthAccounting(t *testing.T) {
	// Mirror every buffer edit against a plain byte slice and verify the
	// logical content never diverges.
	b := newFrom(t, "The quick brown fox")
	model := []byte("The quick brown fox")

	apply := func(pos, erase int, src string) {
		t.Helper()
		if err := b.Replace(pos, erase, []byte(src)); err != nil {
			t.Fatalf("Replace(%d, %d, %q): %v", pos, erase, src, err)
		}
		next := append([]byte{}, model[:pos]...)
		next = append(next, src...)
		next = append(next, model[pos+erase:]...)
		model = next
	}

	apply(4, 5, "slow")
	apply(0, 0, ">> ")
	apply(len(model), 0, " jumps")
	apply(3, 4, "")
	apply(10, 2, "RO")

	if got := content(b); got != string(model) {
		t.Fatalf("content = %q, want %q", got, model)
	}
	if b.Len() != len(model) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(model))
	}
}

func TestCloseGapBytes(t *testing.T) {
	b := newFrom(t, "find me")
	if err := b.Insert(4, []byte(" it,")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.CloseGap(); err != nil {
		t.Fatalf("CloseGap: %v", err)
	}
	if got := string(b.Bytes()); got != "find it, me" {
		t.Fatalf("Bytes = %q, want %q", got, "find it, me")
	}
}

func TestWriteTo(t *testing.T) {
	b := newFrom(t, "hello world")
	if err := b.Replace(6, 5, []byte("gap buffers")); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(b.Len()) {
		t.Fatalf("WriteTo n = %d, want %d", n, b.Len())
	}
	if out.String() != "hello gap buffers" {
		t.Fatalf("written = %q, want %q", out.String(), "hello gap buffers")
	}
}
