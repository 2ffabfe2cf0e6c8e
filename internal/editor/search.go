package editor

import (
	"bytes"
	"strings"
)

// jumpStopChars terminate the filename scan under the cursor.
const jumpStopChars = "!@\"'#%&()[]{}*?+:;\r\n\t "

// findNext searches for the workspace's stored needle forward from the
// cursor, byte-exact. On a hit the match becomes the selection and the
// viewport centers on it; on a miss the terminal bell rings and nothing
// moves.
func (d *Document) findNext() {
	needle := d.ws.search
	if needle == "" {
		return
	}
	if err := d.buf.CloseGap(); err != nil {
		d.ws.setStatus("Error: " + err.Error())
		return
	}
	from := d.linePos + d.col
	idx := bytes.Index(d.buf.Bytes()[from:], []byte(needle))
	if idx >= 0 {
		pos := from + idx
		d.anchor = pos
		d.moveTo(pos+len(needle), true)
	} else {
		d.ws.beep = true
	}
	d.refresh = true
}

// gotoLine moves to the start of the given 1-based line, centering the
// viewport. Out-of-range lines ring the bell.
func (d *Document) gotoLine(lineno int) {
	d.anchor = -1
	pos := 0
	if lineno > 0 {
		for l := 0; l < lineno-1; l++ {
			pos = d.nextLine(pos)
			if pos < 0 {
				break
			}
		}
	} else {
		pos = -1
	}

	if pos >= 0 {
		d.moveTo(pos, true)
	} else {
		d.ws.beep = true
	}
	d.refresh = true
}

// jumpTarget extracts the file reference under the cursor: the selection
// if one exists, otherwise bytes forward from the cursor up to a stop
// character, with an optional ":<digits>" line suffix.
func (d *Document) jumpTarget() (name string, lineno int) {
	if text := d.selectedText(); text != nil {
		return string(text), 0
	}

	var b strings.Builder
	pos := d.linePos + d.col
	for {
		ch := d.buf.Get(pos)
		if ch < 0 || strings.IndexByte(jumpStopChars, byte(ch)) >= 0 {
			break
		}
		b.WriteByte(byte(ch))
		pos++
	}

	if d.buf.Get(pos) == ':' {
		pos++
		for {
			ch := d.buf.Get(pos)
			if ch < '0' || ch > '9' {
				break
			}
			lineno = lineno*10 + (ch - '0')
			pos++
		}
	}
	return b.String(), lineno
}
