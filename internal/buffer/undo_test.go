package buffer

import "testing"

func TestCoalesceTypedInsertions(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("a"))
	l.Record(1, nil, []byte("b"))
	l.Record(2, nil, []byte("c"))

	u := l.Tail()
	if u == nil {
		t.Fatalf("tail = nil")
	}
	if u.Pos != 0 || string(u.Inserted) != "abc" || len(u.Erased) != 0 {
		t.Fatalf("tail = {%d, %q, %q}, want {0, \"\", \"abc\"}", u.Pos, u.Erased, u.Inserted)
	}
	if l.Undo() != u {
		t.Fatalf("Undo returned a different record")
	}
	if l.Undo() != nil {
		t.Fatalf("expected a single coalesced record")
	}
}

func TestCoalesceBackspaces(t *testing.T) {
	// Typing "abc" then backspacing twice: one insert record and one
	// erase record accumulated right-to-left.
	l := &UndoLog{}
	l.Record(0, nil, []byte("a"))
	l.Record(1, nil, []byte("b"))
	l.Record(2, nil, []byte("c"))
	l.Record(2, []byte("c"), nil)
	l.Record(1, []byte("b"), nil)

	u := l.Undo()
	if u == nil || u.Pos != 1 || string(u.Erased) != "bc" || len(u.Inserted) != 0 {
		t.Fatalf("erase record = %+v, want {Pos:1 Erased:\"bc\"}", u)
	}
	u = l.Undo()
	if u == nil || u.Pos != 0 || string(u.Inserted) != "abc" {
		t.Fatalf("insert record = %+v, want {Pos:0 Inserted:\"abc\"}", u)
	}
	if l.Undo() != nil {
		t.Fatalf("expected exactly two records")
	}
}

func TestCoalesceForwardDeletes(t *testing.T) {
	l := &UndoLog{}
	l.Record(3, []byte("x"), nil)
	l.Record(3, []byte("y"), nil)
	l.Record(3, []byte("z"), nil)

	u := l.Undo()
	if u == nil || u.Pos != 3 || string(u.Erased) != "xyz" {
		t.Fatalf("record = %+v, want {Pos:3 Erased:\"xyz\"}", u)
	}
	if l.Undo() != nil {
		t.Fatalf("expected a single coalesced record")
	}
}

func TestNoCoalesceAcrossCursorJump(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("a"))
	l.Record(5, nil, []byte("b")) // not contiguous with pos 0+1

	if l.Undo() == nil || l.Undo() == nil {
		t.Fatalf("expected two separate records")
	}
}

func TestNoCoalesceMixedKinds(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("a"))
	l.Record(0, []byte("a"), nil)

	if l.Undo() == nil || l.Undo() == nil {
		t.Fatalf("expected insert and erase to stay separate")
	}
}

func TestTruncateOnNewEdit(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("one "))
	l.Record(4, nil, []byte("two "))
	if l.Undo() == nil {
		t.Fatalf("Undo = nil, want record")
	}

	// Recording after an undo drops the orphaned redo branch.
	l.Record(4, nil, []byte("2 "))
	if l.Redo() != nil {
		t.Fatalf("Redo survived a new edit")
	}
	u := l.Undo()
	if u == nil || string(u.Inserted) != "2 " {
		t.Fatalf("newest record = %+v, want Inserted \"2 \"", u)
	}
	u = l.Undo()
	if u == nil || string(u.Inserted) != "one " {
		t.Fatalf("oldest record = %+v, want Inserted \"one \"", u)
	}
}

func TestUndoRedoTraversal(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("aa"))
	l.Record(5, nil, []byte("bb"))

	if l.AtBase() {
		t.Fatalf("AtBase = true before undo")
	}
	if u := l.Undo(); u == nil || u.Pos != 5 {
		t.Fatalf("first undo = %+v, want Pos 5", u)
	}
	if u := l.Undo(); u == nil || u.Pos != 0 {
		t.Fatalf("second undo = %+v, want Pos 0", u)
	}
	if !l.AtBase() {
		t.Fatalf("AtBase = false after undoing everything")
	}
	if l.Undo() != nil {
		t.Fatalf("Undo past base")
	}

	if u := l.Redo(); u == nil || u.Pos != 0 {
		t.Fatalf("first redo = %+v, want Pos 0", u)
	}
	if u := l.Redo(); u == nil || u.Pos != 5 {
		t.Fatalf("second redo = %+v, want Pos 5", u)
	}
	if l.Redo() != nil {
		t.Fatalf("Redo past tail")
	}
}

func TestClear(t *testing.T) {
	l := &UndoLog{}
	l.Record(0, nil, []byte("a"))
	l.Clear()
	if l.Undo() != nil || l.Redo() != nil || l.Tail() != nil {
		t.Fatalf("log not empty after Clear")
	}
	if !l.AtBase() {
		t.Fatalf("AtBase = false after Clear")
	}
}
