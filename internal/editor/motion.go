package editor

// Cursor motion. Every motion takes a sel flag: with sel the selection
// anchor is planted before moving (shift variants), without it any
// selection is dropped.

func (d *Document) up(sel bool) {
	d.updateSelection(sel)
	newPos := d.prevLine(d.linePos)
	if newPos < 0 {
		return
	}

	d.linePos = newPos
	d.line--
	if d.line < d.topLine {
		d.topPos = d.linePos
		d.topLine = d.line
		d.refresh = true
	}
	d.adjust()
}

func (d *Document) down(sel bool) {
	d.updateSelection(sel)
	newPos := d.nextLine(d.linePos)
	if newPos < 0 {
		return
	}

	d.linePos = newPos
	d.line++
	if d.line >= d.topLine+d.ws.lines {
		d.topPos = d.nextLine(d.topPos)
		d.topLine++
		d.refresh = true
	}
	d.adjust()
}

func (d *Document) left(sel bool) {
	d.updateSelection(sel)
	if d.col > 0 {
		d.col--
	} else {
		newPos := d.prevLine(d.linePos)
		if newPos < 0 {
			return
		}
		d.col = d.lineLength(newPos)
		d.linePos = newPos
		d.line--
		if d.line < d.topLine {
			d.topPos = d.linePos
			d.topLine = d.line
			d.refresh = true
		}
	}
	d.lastCol = d.col
	d.adjust()
}

func (d *Document) right(sel bool) {
	d.updateSelection(sel)
	if d.col < d.lineLength(d.linePos) {
		d.col++
	} else {
		newPos := d.nextLine(d.linePos)
		if newPos < 0 {
			return
		}
		d.col = 0
		d.linePos = newPos
		d.line++
		if d.line >= d.topLine+d.ws.lines {
			d.topPos = d.nextLine(d.topPos)
			d.topLine++
			d.refresh = true
		}
	}
	d.lastCol = d.col
	d.adjust()
}

// wordChar reports whether ch is ASCII alphanumeric.
func wordChar(ch int) bool {
	return (ch >= 'A' && ch <= 'Z') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= '0' && ch <= '9')
}

// wordLeft walks backward, first over non-word bytes, then over word
// bytes, stopping at the start of the word (or position 0).
func (d *Document) wordLeft(sel bool) {
	d.updateSelection(sel)
	pos := d.linePos + d.col
	phase := 0
	for pos > 0 {
		ch := d.buf.Get(pos - 1)
		if phase == 0 {
			if wordChar(ch) {
				phase = 1
			}
		} else if !wordChar(ch) {
			break
		}

		pos--
		if pos < d.linePos {
			d.linePos = d.prevLine(d.linePos)
			d.line--
			d.refresh = true
		}
	}
	d.col = pos - d.linePos
	if d.line < d.topLine {
		d.topPos = d.linePos
		d.topLine = d.line
	}

	d.lastCol = d.col
	d.adjust()
}

// wordRight mirrors wordLeft walking forward.
func (d *Document) wordRight(sel bool) {
	d.updateSelection(sel)
	pos := d.linePos + d.col
	end := d.buf.Len()
	next := d.nextLine(d.linePos)
	phase := 0
	for pos < end {
		ch := d.buf.Get(pos)
		if phase == 0 {
			if wordChar(ch) {
				phase = 1
			}
		} else if !wordChar(ch) {
			break
		}

		pos++
		if pos == next {
			d.linePos = next
			next = d.nextLine(d.linePos)
			d.line++
			d.refresh = true
		}
	}
	d.col = pos - d.linePos
	if d.line >= d.topLine+d.ws.lines {
		d.topPos = d.nextLine(d.topPos)
		d.topLine++
	}

	d.lastCol = d.col
	d.adjust()
}

func (d *Document) home(sel bool) {
	d.updateSelection(sel)
	d.col = 0
	d.lastCol = 0
	d.adjust()
}

func (d *Document) end(sel bool) {
	d.updateSelection(sel)
	d.col = d.lineLength(d.linePos)
	d.lastCol = d.col
	d.adjust()
}

func (d *Document) top(sel bool) {
	d.updateSelection(sel)
	d.topPos, d.topLine, d.margin = 0, 0, 0
	d.linePos, d.line, d.col, d.lastCol = 0, 0, 0, 0
	d.refresh = true
}

func (d *Document) bottom(sel bool) {
	d.updateSelection(sel)
	for {
		newPos := d.nextLine(d.linePos)
		if newPos < 0 {
			break
		}
		d.linePos = newPos
		d.line++
		if d.line >= d.topLine+d.ws.lines {
			d.topPos = d.nextLine(d.topPos)
			d.topLine++
			d.refresh = true
		}
	}
	d.col = d.lineLength(d.linePos)
	d.lastCol = d.col
	d.adjust()
}

func (d *Document) pageUp(sel bool) {
	d.updateSelection(sel)
	if d.line < d.ws.lines {
		d.linePos, d.topPos = 0, 0
		d.line, d.topLine = 0, 0
	} else {
		for i := 0; i < d.ws.lines; i++ {
			newPos := d.prevLine(d.linePos)
			if newPos < 0 {
				return
			}
			d.linePos = newPos
			d.line--
			if d.topLine > 0 {
				d.topPos = d.prevLine(d.topPos)
				d.topLine--
			}
		}
	}
	d.refresh = true
	d.adjust()
}

func (d *Document) pageDown(sel bool) {
	d.updateSelection(sel)
	for i := 0; i < d.ws.lines; i++ {
		newPos := d.nextLine(d.linePos)
		if newPos < 0 {
			break
		}
		d.linePos = newPos
		d.line++
		d.topPos = d.nextLine(d.topPos)
		d.topLine++
	}
	d.refresh = true
	d.adjust()
}
