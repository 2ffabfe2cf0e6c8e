package editor

import "github.com/okoval/ted/internal/logger"

// replace removes erase bytes at pos and inserts src, optionally
// recording the edit for undo. The erased bytes are captured before the
// buffer mutates so the undo payload survives. On a failed gap growth
// the buffer and log are untouched and the error lands on the status
// bar.
func (d *Document) replace(pos, erase int, src []byte, record bool) bool {
	var erased []byte
	if record {
		erased = d.buf.Extract(pos, erase)
	}
	if err := d.buf.Replace(pos, erase, src); err != nil {
		logger.Error("buffer replace failed", "pos", pos, "erase", erase, "insert", len(src), "err", err)
		d.ws.setStatus("Error: " + err.Error())
		return false
	}
	if record {
		d.log.Record(pos, erased, src)
	}
	d.dirty = true
	return true
}

func (d *Document) insert(pos int, src []byte) bool {
	return d.replace(pos, 0, src, true)
}

func (d *Document) eraseSection(pos, n int) bool {
	return d.replace(pos, n, nil, true)
}

//
// Selection
//

// updateSelection plants the anchor at the current position when sel is
// set and none exists yet, and drops it otherwise.
func (d *Document) updateSelection(sel bool) {
	if sel {
		if d.anchor == -1 {
			d.anchor = d.linePos + d.col
		}
		d.refresh = true
	} else {
		if d.anchor != -1 {
			d.refresh = true
		}
		d.anchor = -1
	}
}

// selection returns the ordered selection range, or ok=false when there
// is no anchor or the anchor equals the cursor.
func (d *Document) selection() (start, end int, ok bool) {
	if d.anchor == -1 {
		return -1, -1, false
	}
	pos := d.linePos + d.col
	switch {
	case pos == d.anchor:
		return -1, -1, false
	case pos < d.anchor:
		return pos, d.anchor, true
	default:
		return d.anchor, pos, true
	}
}

// selectedText returns a copy of the selected bytes, or nil.
func (d *Document) selectedText() []byte {
	start, end, ok := d.selection()
	if !ok {
		return nil
	}
	return d.buf.Extract(start, end-start)
}

// eraseSelection removes the selected range, leaving the cursor at its
// start. Reports whether anything was erased.
func (d *Document) eraseSelection() bool {
	start, end, ok := d.selection()
	if !ok {
		return false
	}
	d.moveTo(start, false)
	d.eraseSection(start, end-start)
	d.anchor = -1
	d.refresh = true
	return true
}

func (d *Document) selectAll() {
	d.anchor = 0
	d.refresh = true
	d.moveTo(d.buf.Len(), false)
}

//
// Editing primitives
//

func (d *Document) insertChar(ch byte) {
	d.eraseSelection()
	if !d.insert(d.linePos+d.col, []byte{ch}) {
		return
	}
	d.col++
	d.lastCol = d.col
	d.adjust()
	if !d.refresh {
		d.lineUpdate = true
	}
}

func (d *Document) newline() {
	d.eraseSelection()
	if !d.insert(d.linePos+d.col, []byte{'\n'}) {
		return
	}
	d.col = 0
	d.lastCol = 0
	d.line++
	d.linePos = d.nextLine(d.linePos)

	d.refresh = true
	if d.line >= d.topLine+d.ws.lines {
		d.topPos = d.nextLine(d.topPos)
		d.topLine++
	}
	d.adjust()
}

func (d *Document) backspace() {
	if d.eraseSelection() {
		return
	}
	if d.linePos+d.col == 0 {
		return
	}
	if d.col == 0 {
		// Join with the previous line; a preceding CR goes with the LF.
		pos := d.linePos - 1
		d.eraseSection(pos, 1)
		if d.buf.Get(pos-1) == '\r' {
			pos--
			d.eraseSection(pos, 1)
		}

		d.line--
		d.linePos = d.lineStart(pos)
		d.col = pos - d.linePos
		d.refresh = true

		if d.line < d.topLine {
			d.topPos = d.linePos
			d.topLine = d.line
		}
	} else {
		d.col--
		d.eraseSection(d.linePos+d.col, 1)
		d.lineUpdate = true
	}

	d.lastCol = d.col
	d.adjust()
}

func (d *Document) del() {
	if d.eraseSelection() {
		return
	}
	pos := d.linePos + d.col
	ch := d.buf.Get(pos)
	if ch < 0 {
		return
	}

	d.eraseSection(pos, 1)
	if ch == '\r' && d.buf.Get(pos) == '\n' {
		d.eraseSection(pos, 1)
	}

	if ch == '\n' || ch == '\r' {
		d.refresh = true
	} else {
		d.lineUpdate = true
	}
}

//
// Undo / redo
//

// undo backs out the newest applied edit. The replay bypasses undo
// recording. Undoing the last record clears the dirty flag: the buffer
// is back at its baseline.
func (d *Document) undo() {
	u := d.log.Undo()
	if u == nil {
		return
	}
	d.moveTo(u.Pos, false)
	d.replace(u.Pos, len(u.Inserted), u.Erased, false)
	if d.log.AtBase() {
		d.dirty = false
	}
	d.anchor = -1
	d.refresh = true
}

func (d *Document) redo() {
	u := d.log.Redo()
	if u == nil {
		return
	}
	d.moveTo(u.Pos, false)
	d.replace(u.Pos, len(u.Erased), u.Inserted, false)
	d.dirty = true
	d.anchor = -1
	d.refresh = true
}

//
// Clipboard
//

func (d *Document) copySelection() {
	if text := d.selectedText(); text != nil {
		d.ws.clipboard = text
	}
}

func (d *Document) cutSelection() {
	d.copySelection()
	d.eraseSelection()
}

func (d *Document) pasteClipboard() {
	d.eraseSelection()
	pos := d.linePos + d.col
	if !d.insert(pos, d.ws.clipboard) {
		return
	}
	d.moveTo(pos+len(d.ws.clipboard), false)
	d.refresh = true
}
