package editor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Render paints the workspace. Edits request either a full refresh or a
// single-line update; with neither pending only the status bar is
// redrawn. The terminal cursor lands at (visual column − margin, line −
// top line).
func (ws *Workspace) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	ws.cols = w
	ws.lines = h - 1
	if ws.lines < 1 {
		ws.lines = 1
	}

	if ws.helpActive {
		ws.renderHelp(s, w, h)
		s.HideCursor()
		s.Show()
		return
	}

	d := ws.current
	if d.refresh {
		pos := d.topPos
		for y := 0; y < ws.lines; y++ {
			if pos < 0 {
				ws.clearRow(s, y, w)
			} else {
				ws.drawLine(s, d, y, pos)
				pos = d.nextLine(pos)
			}
		}
		d.refresh = false
		d.lineUpdate = false
	} else if d.lineUpdate {
		ws.drawLine(s, d, d.line-d.topLine, d.linePos)
		d.lineUpdate = false
	}

	ws.renderStatus(s, w, h-1, d)

	if ws.prompt != nil {
		x := len(ws.prompt.label) + len(ws.prompt.buf)
		s.ShowCursor(x, h-1)
	} else if ws.confirm != nil {
		s.ShowCursor(len(ws.confirm.message), h-1)
	} else {
		cx := d.visualColumn(d.linePos, d.col) - d.margin
		cy := d.line - d.topLine
		if cx >= 0 && cx < w && cy >= 0 && cy < ws.lines {
			s.ShowCursor(cx, cy)
		} else {
			s.HideCursor()
		}
	}
	s.Show()
}

// drawLine paints the document line starting at pos onto screen row y,
// expanding tabs, skipping the horizontal margin, and styling the
// selected range. A selection that runs past the line end highlights
// the rest of the row.
func (ws *Workspace) drawLine(s tcell.Screen, d *Document, y, pos int) {
	selStart, selEnd, hasSel := d.selection()
	margin := d.margin
	maxCol := ws.cols + margin

	x := 0
	col := 0
	hilite := false
	for col < maxCol {
		if hasSel {
			hilite = pos >= selStart && pos < selEnd
		}

		ch := d.buf.Get(pos)
		if ch < 0 || ch == '\r' || ch == '\n' {
			break
		}

		style := ws.styleText
		if hilite {
			style = ws.styleSelection
		}
		if ch == '\t' {
			spaces := ws.tabWidth - col%ws.tabWidth
			for spaces > 0 && col < maxCol {
				if margin > 0 {
					margin--
				} else {
					s.SetContent(x, y, ' ', nil, style)
					x++
				}
				col++
				spaces--
			}
		} else {
			if margin > 0 {
				margin--
			} else {
				s.SetContent(x, y, rune(ch), nil, style)
				x++
			}
			col++
		}
		pos++
	}

	// Selection reaching past the line end claims the remaining row.
	pad := ws.styleText
	if hilite && hasSel && pos < selEnd {
		pad = ws.styleSelection
	}
	for ; x < ws.cols; x++ {
		s.SetContent(x, y, ' ', nil, pad)
	}
}

func (ws *Workspace) clearRow(s tcell.Screen, y, w int) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, ws.styleText)
	}
}

// renderStatus draws the bottom row: an active prompt or confirmation,
// a transient message, or the regular filename / dirty / Ln / Col line.
func (ws *Workspace) renderStatus(s tcell.Screen, w, y int, d *Document) {
	var text string
	switch {
	case ws.prompt != nil:
		text = ws.prompt.label + string(ws.prompt.buf)
	case ws.confirm != nil:
		text = ws.confirm.message
	case ws.statusMessage != "":
		text = ws.statusMessage
	default:
		nameWidth := w - 19
		if nameWidth < 0 {
			nameWidth = 0
		}
		mark := ' '
		if d.dirty {
			mark = '*'
		}
		text = fmt.Sprintf("%-*.*s%c Ln %-6dCol %-4d",
			nameWidth, nameWidth, d.filename, mark,
			d.line+1, d.visualColumn(d.linePos, d.col)+1)
	}

	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, ws.styleStatus)
		x++
	}
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, ws.styleStatus)
	}
}

var helpText = []string{
	"Editor Command Summary",
	"======================",
	"",
	"<up>         Move one line up (*)         Ctrl+N  New editor",
	"<down>       Move one line down (*)       Ctrl+O  Open file",
	"<left>       Move one character left (*)  Ctrl+S  Save file",
	"<right>      Move one character right (*) Ctrl+W  Close file",
	"<pgup>       Move one page up (*)         Ctrl+Q  Quit",
	"<pgdn>       Move one page down (*)       Ctrl+P  Pipe command",
	"Ctrl+<left>  Move to previous word (*)    Ctrl+A  Select all",
	"Ctrl+<right> Move to next word (*)        Ctrl+C  Copy selection to clipboard",
	"<home>       Move to start of line (*)    Ctrl+X  Cut selection to clipboard",
	"<end>        Move to end of line (*)      Ctrl+V  Paste from clipboard",
	"Ctrl+<home>  Move to start of file (*)    Ctrl+Z  Undo",
	"Ctrl+<end>   Move to end of file (*)      Ctrl+R  Redo",
	"<backspace>  Delete previous character    Ctrl+F  Find text",
	"<delete>     Delete current character     Ctrl+G  Find next",
	"Shift+<tab>  Next editor                  Ctrl+L  Goto line",
	"Ctrl+<tab>   Previous editor              F1      Help",
	"                                          F3      Navigate to file",
	"(*) Extends selection if combined         F5      Redraw screen",
	"    with Shift",
	"",
	"Press any key to continue...",
}

func (ws *Workspace) renderHelp(s tcell.Screen, w, h int) {
	for y := 0; y < h; y++ {
		line := ""
		if y < len(helpText) {
			line = helpText[y]
		}
		line = line + strings.Repeat(" ", max(0, w-len(line)))
		for x, r := range line {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, ws.styleText)
		}
	}
}
