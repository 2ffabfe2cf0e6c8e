package editor

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

type promptKind int

const (
	promptOpen promptKind = iota
	promptSaveAs
	promptFind
	promptGoto
	promptPipe
)

// prompt is a one-line input on the status row. It starts prefilled
// with the current selection, Enter submits, Esc cancels.
type prompt struct {
	kind  promptKind
	label string
	buf   []byte
}

type confirmKind int

const (
	confirmClose confirmKind = iota
	confirmQuit
	confirmOverwrite
)

// confirm is a pending y/n question on the status row. Anything but
// y/Y answers no.
type confirm struct {
	kind      confirmKind
	message   string
	doc       *Document
	filename  string    // confirmOverwrite: target path
	quitStart *Document // confirmQuit: where the dirty scan started
}

func (ws *Workspace) startPrompt(kind promptKind, label string) {
	p := &prompt{kind: kind, label: label}
	if text := ws.current.selectedText(); text != nil {
		max := ws.cols - len(label) - 1
		if len(text) <= max {
			p.buf = text
		}
	}
	ws.prompt = p
}

func (ws *Workspace) startConfirm(kind confirmKind, message string, d *Document) *confirm {
	c := &confirm{kind: kind, message: message, doc: d}
	ws.confirm = c
	return c
}

// handlePrompt edits the pending prompt. Submitting an empty prompt is
// the same as cancelling.
func (ws *Workspace) handlePrompt(ev *tcell.EventKey) {
	p := ws.prompt
	switch ev.Key() {
	case tcell.KeyEscape:
		ws.prompt = nil
		ws.current.refresh = true
	case tcell.KeyEnter:
		ws.prompt = nil
		if len(p.buf) > 0 {
			ws.finishPrompt(p)
		}
		ws.current.refresh = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= ' ' && r < 0x100 && len(p.buf) < ws.cols-len(p.label)-1 {
			p.buf = append(p.buf, byte(r))
		}
	}
}

func (ws *Workspace) finishPrompt(p *prompt) {
	text := string(p.buf)
	switch p.kind {
	case promptOpen:
		ws.openPath(text)
	case promptSaveAs:
		ws.saveAs(text)
	case promptFind:
		ws.search = text
		ws.current.findNext()
	case promptGoto:
		lineno, err := strconv.Atoi(text)
		if err != nil {
			lineno = 0
		}
		ws.current.gotoLine(lineno)
	case promptPipe:
		ws.pipeCommand(text)
	}
}

// saveAs binds the document to a new name, asking before clobbering an
// existing file.
func (ws *Workspace) saveAs(name string) {
	if fileExists(name) {
		c := ws.startConfirm(confirmOverwrite, "Overwrite "+name+" (y/n)? ", ws.current)
		c.filename = name
		return
	}
	ws.bindAndSave(ws.current, name)
}

func (ws *Workspace) bindAndSave(d *Document, name string) {
	d.filename = canonPath(name)
	d.newFile = false
	ws.finishSave(d)
}

// handleConfirm resolves a pending y/n question. Returns true when the
// editor should exit.
func (ws *Workspace) handleConfirm(ev *tcell.EventKey) bool {
	c := ws.confirm
	ws.confirm = nil
	yes := ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y')

	switch c.kind {
	case confirmClose:
		if yes {
			ws.finishClose(c.doc)
		}
	case confirmQuit:
		if yes {
			ws.continueQuit(c.doc.next, c.quitStart)
		}
	case confirmOverwrite:
		if yes {
			ws.bindAndSave(c.doc, c.filename)
		}
	}
	if ws.current != nil {
		ws.current.refresh = true
	}
	return ws.quit
}
