package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okoval/ted/internal/buffer"
	"github.com/okoval/ted/internal/logger"
)

// Document is one open buffer: gap storage, undo history, cursor and
// scroll state, and the selection anchor. Documents are linked into the
// workspace ring via prev/next.
type Document struct {
	buf *buffer.GapBuffer
	log *buffer.UndoLog

	linePos int // absolute offset of the current line's first byte
	line    int // zero-based line number of the current line
	col     int // byte offset of the cursor within the current line
	lastCol int // remembered col for vertical navigation

	topPos  int // offset of the first visible line
	topLine int // line number of the first visible line
	margin  int // leftmost visible visual column

	anchor int // selection anchor, -1 when no selection

	refresh    bool // full redraw requested
	lineUpdate bool // current-line redraw requested
	dirty      bool
	newFile    bool // never been saved under a real name

	filename string

	ws         *Workspace
	prev, next *Document
}

func (d *Document) Filename() string { return d.filename }
func (d *Document) Dirty() bool      { return d.dirty }

// Content returns the whole document as a string. Test helper.
func (d *Document) Content() string {
	return string(d.buf.Extract(0, d.buf.Len()))
}

// Position is the cursor's absolute byte offset.
func (d *Document) Position() int {
	return d.linePos + d.col
}

// bindNew initializes an empty buffer. With an empty name the document
// becomes Untitled-N and is flagged as never saved.
func (d *Document) bindNew(name string) error {
	if name != "" {
		d.filename = name
	} else {
		d.ws.untitled++
		d.filename = fmt.Sprintf("Untitled-%d", d.ws.untitled)
		d.newFile = true
	}
	buf, err := buffer.New()
	if err != nil {
		return err
	}
	d.buf = buf
	d.log = &buffer.UndoLog{}
	d.anchor = -1
	return nil
}

// load reads the file into a fresh gap buffer. The stored filename is
// the canonical absolute path.
func (d *Document) load(name string) error {
	path := canonPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	buf, err := buffer.NewFrom(data)
	if err != nil {
		return err
	}
	d.filename = path
	d.buf = buf
	d.log = &buffer.UndoLog{}
	d.anchor = -1
	logger.Debug("loaded file", "path", path, "bytes", len(data))
	return nil
}

// loadStdin ingests standard input as the synthetic document "<stdin>".
func (d *Document) loadStdin(data []byte) error {
	buf, err := buffer.NewFrom(data)
	if err != nil {
		return err
	}
	d.filename = "<stdin>"
	d.buf = buf
	d.log = &buffer.UndoLog{}
	d.anchor = -1
	return nil
}

// save writes prefix then suffix to the document's filename, truncating
// with mode 0644. Saving clears the undo log: edits never coalesce
// across a save boundary.
func (d *Document) save() error {
	f, err := os.OpenFile(d.filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := d.buf.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	d.dirty = false
	d.log.Clear()
	logger.Info("saved file", "path", d.filename, "bytes", d.buf.Len())
	return nil
}

// canonPath canonicalizes name, falling back to the absolute or literal
// path when resolution fails.
func canonPath(name string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return name
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

//
// Positional helpers
//

// lineLength is the number of bytes from linePos up to the next line
// terminator or end of file.
func (d *Document) lineLength(linePos int) int {
	pos := linePos
	for {
		ch := d.buf.Get(pos)
		if ch < 0 || ch == '\n' || ch == '\r' {
			break
		}
		pos++
	}
	return pos - linePos
}

// lineStart walks back to the first byte of the line containing pos.
func (d *Document) lineStart(pos int) int {
	for pos > 0 && d.buf.Get(pos-1) != '\n' {
		pos--
	}
	return pos
}

// nextLine returns the position just after the next '\n' at or after
// pos, or -1 if there is none.
func (d *Document) nextLine(pos int) int {
	for {
		ch := d.buf.Get(pos)
		if ch < 0 {
			return -1
		}
		pos++
		if ch == '\n' {
			return pos
		}
	}
}

// prevLine returns the first byte of the line preceding the one
// containing pos, or -1 if pos is on the first line.
func (d *Document) prevLine(pos int) int {
	if pos == 0 {
		return -1
	}
	for pos > 0 {
		pos--
		if d.buf.Get(pos) == '\n' {
			break
		}
	}
	if d.buf.Get(pos) != '\n' {
		return -1
	}
	for pos > 0 {
		pos--
		if d.buf.Get(pos) == '\n' {
			return pos + 1
		}
	}
	return 0
}

// visualColumn walks col bytes from linePos expanding tabs to the next
// multiple of the tab width.
func (d *Document) visualColumn(linePos, col int) int {
	tab := d.ws.tabWidth
	c := 0
	for pos := linePos; col > 0; col-- {
		ch := d.buf.Get(pos)
		if ch < 0 {
			break
		}
		if ch == '\t' {
			c += tab - c%tab
		} else {
			c++
		}
		pos++
	}
	return c
}

// moveTo steps the cursor to the absolute position pos, updating line
// bookkeeping and scrolling the viewport when a line boundary crossing
// leaves it. With center set, any scroll recenters the target line at
// mid-screen.
func (d *Document) moveTo(pos int, center bool) {
	scrolled := false
	for {
		cur := d.linePos + d.col
		if pos < cur {
			if pos >= d.linePos {
				d.col = pos - d.linePos
			} else {
				d.col = 0
				d.linePos = d.prevLine(d.linePos)
				d.line--
				if d.topLine > d.line {
					d.topPos = d.linePos
					d.topLine--
					d.refresh = true
					scrolled = true
				}
			}
		} else if pos > cur {
			next := d.nextLine(d.linePos)
			if next == -1 {
				if pos > d.buf.Len() {
					pos = d.buf.Len()
				}
				d.col = pos - d.linePos
				break
			} else if pos < next {
				d.col = pos - d.linePos
			} else {
				d.col = 0
				d.linePos = next
				d.line++
				if d.line >= d.topLine+d.ws.lines {
					d.topPos = d.nextLine(d.topPos)
					d.topLine++
					d.refresh = true
					scrolled = true
				}
			}
		} else {
			break
		}
	}

	if scrolled && center {
		tl := d.line - d.ws.lines/2
		if tl < 0 {
			tl = 0
		}
		for d.topLine != tl {
			if d.topLine > tl {
				d.topPos = d.prevLine(d.topPos)
				d.topLine--
			} else {
				d.topPos = d.nextLine(d.topPos)
				d.topLine++
			}
		}
	}
}

// adjust clamps the cursor to the current line using lastCol as the goal
// column and scrolls horizontally in steps of 4 visual columns so the
// cursor stays inside [margin, margin+cols).
func (d *Document) adjust() {
	ll := d.lineLength(d.linePos)
	d.col = d.lastCol
	if d.col > ll {
		d.col = ll
	}

	col := d.visualColumn(d.linePos, d.col)
	for col < d.margin {
		d.margin -= 4
		if d.margin < 0 {
			d.margin = 0
		}
		d.refresh = true
	}
	for col-d.margin >= d.ws.cols {
		d.margin += 4
		d.refresh = true
	}
}
