package buffer

// UndoRecord describes one edit: at Pos, Erased was removed and Inserted
// was put in its place. Either payload may be empty.
type UndoRecord struct {
	Pos      int
	Erased   []byte
	Inserted []byte

	prev, next *UndoRecord
}

// UndoLog is an ordered list of edit records with a cursor marking the
// last applied forward edit. A nil cursor means "before head". Recording
// a new edit truncates everything after the cursor, so redo history is
// lost as soon as the document diverges.
type UndoLog struct {
	head, tail *UndoRecord
	cur        *UndoRecord
}

// Record registers an edit that erased the bytes in erased and inserted
// the bytes in inserted at pos. Both slices are copied. Single-byte edits
// contiguous with the newest record of the same kind are coalesced into
// it, so typing a word or backspacing through one produces one record.
func (l *UndoLog) Record(pos int, erased, inserted []byte) {
	l.truncate()

	u := l.tail
	switch {
	case u != nil && len(erased) == 0 && len(inserted) == 1 &&
		len(u.Erased) == 0 && pos == u.Pos+len(u.Inserted):
		// Typing onward from the last insertion.
		u.Inserted = append(u.Inserted, inserted[0])

	case u != nil && len(erased) == 1 && len(inserted) == 0 &&
		len(u.Inserted) == 0 && pos == u.Pos:
		// Forward delete at the same spot.
		u.Erased = append(u.Erased, erased[0])

	case u != nil && len(erased) == 1 && len(inserted) == 0 &&
		len(u.Inserted) == 0 && pos == u.Pos-1:
		// Backspace walking left.
		u.Pos--
		u.Erased = append([]byte{erased[0]}, u.Erased...)

	default:
		u = &UndoRecord{
			Pos:      pos,
			Erased:   append([]byte(nil), erased...),
			Inserted: append([]byte(nil), inserted...),
			prev:     l.tail,
		}
		if l.tail != nil {
			l.tail.next = u
		}
		if l.head == nil {
			l.head = u
		}
		l.tail = u
	}
	l.cur = l.tail
}

// truncate drops every record after the cursor.
func (l *UndoLog) truncate() {
	if l.cur == nil {
		l.head, l.tail = nil, nil
		return
	}
	l.cur.next = nil
	l.tail = l.cur
}

// Undo returns the record at the cursor and steps the cursor toward the
// head, or nil if there is nothing left to undo. The caller applies the
// record inverted: erase Inserted, put back Erased.
func (l *UndoLog) Undo() *UndoRecord {
	u := l.cur
	if u == nil {
		return nil
	}
	l.cur = u.prev
	return u
}

// Redo steps the cursor toward the tail and returns the record to
// reapply, or nil at the end of the log.
func (l *UndoLog) Redo() *UndoRecord {
	if l.cur == nil {
		if l.head == nil {
			return nil
		}
		l.cur = l.head
	} else {
		if l.cur.next == nil {
			return nil
		}
		l.cur = l.cur.next
	}
	return l.cur
}

// AtBase reports whether every recorded edit has been undone.
func (l *UndoLog) AtBase() bool {
	return l.cur == nil
}

// Clear drops the whole log. Called on save: records never coalesce
// across a save boundary.
func (l *UndoLog) Clear() {
	l.head, l.tail, l.cur = nil, nil, nil
}

// Tail returns the newest record, or nil.
func (l *UndoLog) Tail() *UndoRecord {
	return l.tail
}
