package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/okoval/ted/internal/config"
	"github.com/okoval/ted/internal/logger"
	"github.com/okoval/ted/internal/session"
)

// Workspace owns the ring of open documents and everything shared
// between them: clipboard, search needle, untitled counter, terminal
// geometry, and the modal prompt/confirm state driven by the key loop.
type Workspace struct {
	current *Document

	clipboard []byte
	search    string
	untitled  int

	cols  int // terminal columns
	lines int // text view rows (terminal rows minus the status bar)

	tabWidth int
	viewOnly bool

	styleText      tcell.Style
	styleSelection tcell.Style
	styleStatus    tcell.Style

	statusMessage string
	prompt        *prompt
	confirm       *confirm
	helpActive    bool

	beep bool // ring the terminal bell on next render
	sync bool // full terminal resync requested (F5)
	quit bool

	sessions *session.Manager
}

// NewWorkspace builds an empty workspace from the configuration. The
// session manager may be nil.
func NewWorkspace(cfg config.Config, sm *session.Manager) *Workspace {
	tab := cfg.Editor.TabWidth
	if tab <= 0 {
		tab = 8
	}
	return &Workspace{
		tabWidth: tab,
		viewOnly: cfg.Editor.ViewMode,
		cols:     80,
		lines:    24,
		styleText: tcell.StyleDefault.
			Foreground(tcell.GetColor(cfg.Theme.Foreground)).
			Background(tcell.GetColor(cfg.Theme.Background)),
		styleSelection: tcell.StyleDefault.
			Foreground(tcell.GetColor(cfg.Theme.SelectionForeground)).
			Background(tcell.GetColor(cfg.Theme.SelectionBackground)),
		styleStatus: tcell.StyleDefault.
			Foreground(tcell.GetColor(cfg.Theme.StatuslineForeground)).
			Background(tcell.GetColor(cfg.Theme.StatuslineBackground)),
		sessions: sm,
	}
}

// Current returns the focused document, nil only before the first
// document is created.
func (ws *Workspace) Current() *Document { return ws.current }

// SetViewOnly switches the workspace into the read-only variant: all
// mutating bindings are ignored and Esc exits.
func (ws *Workspace) SetViewOnly(v bool) { ws.viewOnly = v }

// Resize records the terminal geometry. The bottom row is the status
// bar.
func (ws *Workspace) Resize(cols, rows int) {
	ws.cols = cols
	ws.lines = rows - 1
	if ws.lines < 1 {
		ws.lines = 1
	}
	if ws.current != nil {
		ws.current.refresh = true
	}
}

// createDocument splices a new document into the ring after current and
// focuses it.
func (ws *Workspace) createDocument() *Document {
	d := &Document{ws: ws, anchor: -1, refresh: true}
	if ws.current != nil {
		d.next = ws.current.next
		d.prev = ws.current
		ws.current.next.prev = d
		ws.current.next = d
	} else {
		d.next = d
		d.prev = d
	}
	ws.current = d
	return d
}

// deleteDocument unsplices d from the ring. Focus falls back to the
// previous document, or nil when the ring empties.
func (ws *Workspace) deleteDocument(d *Document) {
	if d.next == d {
		ws.current = nil
	} else if ws.current == d {
		ws.current = d.prev
	}
	d.next.prev = d.prev
	d.prev.next = d.next
	d.next, d.prev = nil, nil
}

// findByPath scans the ring for a document whose filename matches the
// canonicalized name.
func (ws *Workspace) findByPath(name string) *Document {
	if ws.current == nil {
		return nil
	}
	path := canonPath(name)
	d := ws.current
	for {
		if d.filename == path {
			return d
		}
		d = d.next
		if d == ws.current {
			return nil
		}
	}
}

// OpenArg opens a startup file argument. A missing file becomes a new
// document bound to that path; any other failure is returned so the
// process can exit nonzero.
func (ws *Workspace) OpenArg(name string) error {
	d := ws.createDocument()
	err := d.load(name)
	if err == nil {
		ws.restoreSession(d)
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return d.bindNew(canonPath(name))
	}
	ws.deleteDocument(d)
	return fmt.Errorf("%s: %w", name, err)
}

// NewUntitled creates an empty Untitled-N document.
func (ws *Workspace) NewUntitled() error {
	return ws.createDocument().bindNew("")
}

// ReadStdin ingests r as the "<stdin>" document.
func (ws *Workspace) ReadStdin(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return ws.createDocument().loadStdin(data)
}

// openPath focuses an already-open document for name, or loads it into a
// new one. Load errors roll the new document back and land on the
// status bar.
func (ws *Workspace) openPath(name string) {
	if d := ws.findByPath(name); d != nil {
		ws.current = d
		d.refresh = true
		return
	}
	prev := ws.current
	d := ws.createDocument()
	if err := d.load(name); err != nil {
		logger.Warn("open failed", "path", name, "err", err)
		ws.deleteDocument(d)
		ws.current = prev
		ws.setStatus(fmt.Sprintf("Error opening %s (%v)", name, errMessage(err)))
		return
	}
	ws.restoreSession(d)
	d.refresh = true
}

// jumpToFile opens or focuses the file reference under the cursor and
// optionally moves to a line within it.
func (ws *Workspace) jumpToFile() {
	d := ws.current
	name, lineno := d.jumpTarget()
	if name == "" {
		return
	}

	target := ws.findByPath(name)
	if target != nil {
		ws.current = target
	} else {
		prev := ws.current
		target = ws.createDocument()
		if err := target.load(name); err != nil {
			ws.beep = true
			ws.deleteDocument(target)
			ws.current = prev
			ws.current.refresh = true
			return
		}
		ws.restoreSession(target)
	}

	if lineno > 0 {
		target.gotoLine(lineno)
	}
	target.refresh = true
}

// nextFile rotates focus forward in the ring.
func (ws *Workspace) nextFile() {
	ws.current = ws.current.next
	ws.current.refresh = true
}

// prevFile rotates focus backward in the ring.
func (ws *Workspace) prevFile() {
	ws.current = ws.current.prev
	ws.current.refresh = true
}

// saveCurrent saves the focused document, detouring through the save-as
// prompt for documents that never had a real name.
func (ws *Workspace) saveCurrent() {
	d := ws.current
	if !d.dirty && !d.newFile {
		return
	}
	if d.newFile {
		ws.startPrompt(promptSaveAs, "Save as: ")
		return
	}
	ws.finishSave(d)
}

func (ws *Workspace) finishSave(d *Document) {
	if err := d.save(); err != nil {
		logger.Error("save failed", "path", d.filename, "err", err)
		ws.setStatus(fmt.Sprintf("Error saving document (%v)", errMessage(err)))
	} else {
		ws.recordSession(d)
	}
	d.refresh = true
}

// closeCurrent closes the focused document, asking first when there are
// unsaved changes. The workspace always keeps one document open.
func (ws *Workspace) closeCurrent() {
	d := ws.current
	if d.dirty {
		ws.startConfirm(confirmClose, fmt.Sprintf("Close %s without saving changes (y/n)? ", d.filename), d)
		return
	}
	ws.finishClose(d)
}

func (ws *Workspace) finishClose(d *Document) {
	ws.recordSession(d)
	ws.deleteDocument(d)
	if ws.current == nil {
		if err := ws.NewUntitled(); err != nil {
			ws.quit = true
			return
		}
	}
	ws.current.refresh = true
}

// startQuit begins the quit sequence: every dirty document must be
// confirmed before the editor exits.
func (ws *Workspace) startQuit() {
	start := ws.current
	if start.dirty {
		c := ws.startConfirm(confirmQuit, fmt.Sprintf("Close %s without saving changes (y/n)? ", start.filename), start)
		c.quitStart = start
		return
	}
	ws.continueQuit(start.next, start)
}

// continueQuit scans the ring from d up to start for the next dirty
// document and raises a confirmation for it; with none left the
// workspace records session state and quits.
func (ws *Workspace) continueQuit(d, start *Document) {
	for d != start {
		if d.dirty {
			c := ws.startConfirm(confirmQuit, fmt.Sprintf("Close %s without saving changes (y/n)? ", d.filename), d)
			c.quitStart = start
			return
		}
		d = d.next
	}
	ws.recordAllSessions()
	ws.quit = true
}

// pipeCommand runs a shell command and replaces the selection (or
// inserts at the cursor) with its standard output.
func (ws *Workspace) pipeCommand(cmdline string) {
	d := ws.current
	out, err := exec.Command("sh", "-c", cmdline).Output()
	if err != nil {
		logger.Warn("pipe command failed", "cmd", cmdline, "err", err)
		ws.setStatus(fmt.Sprintf("Error running command (%v)", errMessage(err)))
		d.refresh = true
		return
	}
	d.eraseSelection()
	pos := d.linePos + d.col
	if d.insert(pos, out) {
		d.moveTo(pos+len(out), false)
	}
	d.refresh = true
}

// setStatus shows a transient message on the status bar; it clears on
// the next keystroke.
func (ws *Workspace) setStatus(msg string) {
	ws.statusMessage = msg
}

// TakeBeep reports and clears the pending bell request.
func (ws *Workspace) TakeBeep() bool {
	b := ws.beep
	ws.beep = false
	return b
}

// TakeSync reports and clears the pending full-resync request.
func (ws *Workspace) TakeSync() bool {
	s := ws.sync
	ws.sync = false
	return s
}

//
// Session persistence
//

func (ws *Workspace) restoreSession(d *Document) {
	if ws.sessions == nil || !sessionEligible(d) {
		return
	}
	if st, ok := ws.sessions.FileState(d.filename); ok {
		d.gotoLine(st.Line + 1)
		ws.beep = false // stale positions from a shrunken file stay silent
		col := st.Col
		if ll := d.lineLength(d.linePos); col > ll {
			col = ll
		}
		d.moveTo(d.linePos+col, false)
		d.anchor = -1
		d.lastCol = d.col
		d.adjust()
	}
}

func (ws *Workspace) recordSession(d *Document) {
	if ws.sessions == nil || !sessionEligible(d) {
		return
	}
	ws.sessions.SetFileState(d.filename, session.FileState{Line: d.line, Col: d.col})
}

func (ws *Workspace) recordAllSessions() {
	if ws.current == nil {
		return
	}
	d := ws.current
	for {
		ws.recordSession(d)
		d = d.next
		if d == ws.current {
			break
		}
	}
}

// sessionEligible excludes untitled and stdin documents: their names do
// not survive the process.
func sessionEligible(d *Document) bool {
	return !d.newFile && strings.HasPrefix(d.filename, "/")
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// errMessage strips an *os.PathError wrapper down to the underlying cause.
func errMessage(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
