package editor

import (
	"github.com/gdamore/tcell/v2"
)

// HandleKey dispatches one key event and reports whether the editor
// should exit. All state transitions for the keystroke complete before
// the caller reads the next event.
func (ws *Workspace) HandleKey(ev *tcell.EventKey) bool {
	if ws.statusMessage != "" {
		ws.statusMessage = ""
	}
	if ws.helpActive {
		ws.helpActive = false
		ws.current.refresh = true
		return false
	}
	if ws.confirm != nil {
		return ws.handleConfirm(ev)
	}
	if ws.prompt != nil {
		ws.handlePrompt(ev)
		return false
	}

	d := ws.current
	mod := ev.Modifiers()
	sel := mod&tcell.ModShift != 0
	ctrl := mod&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyRune:
		if ctrl || mod&tcell.ModAlt != 0 {
			return false
		}
		r := ev.Rune()
		if r >= 0x20 && r <= 0x7f && !ws.viewOnly {
			d.insertChar(byte(r))
		}

	case tcell.KeyUp:
		if ctrl {
			d.top(sel)
		} else {
			d.up(sel)
		}
	case tcell.KeyDown:
		if ctrl {
			d.bottom(sel)
		} else {
			d.down(sel)
		}
	case tcell.KeyLeft:
		if ctrl {
			d.wordLeft(sel)
		} else {
			d.left(sel)
		}
	case tcell.KeyRight:
		if ctrl {
			d.wordRight(sel)
		} else {
			d.right(sel)
		}
	case tcell.KeyHome:
		if ctrl {
			d.top(sel)
		} else {
			d.home(sel)
		}
	case tcell.KeyEnd:
		if ctrl {
			d.bottom(sel)
		} else {
			d.end(sel)
		}
	case tcell.KeyPgUp:
		d.pageUp(sel)
	case tcell.KeyPgDn:
		d.pageDown(sel)

	case tcell.KeyTab:
		if ctrl {
			ws.prevFile()
		} else if !ws.viewOnly {
			d.insertChar('\t')
		}
	case tcell.KeyBacktab:
		ws.nextFile()

	case tcell.KeyEnter:
		if !ws.viewOnly {
			d.newline()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if !ws.viewOnly {
			d.backspace()
		}
	case tcell.KeyDelete:
		if !ws.viewOnly {
			d.del()
		}

	case tcell.KeyCtrlA:
		d.selectAll()
	case tcell.KeyCtrlC:
		d.copySelection()
	case tcell.KeyCtrlX:
		if !ws.viewOnly {
			d.cutSelection()
		}
	case tcell.KeyCtrlV:
		if !ws.viewOnly {
			d.pasteClipboard()
		}
	case tcell.KeyCtrlZ:
		if !ws.viewOnly {
			d.undo()
		}
	case tcell.KeyCtrlR:
		if !ws.viewOnly {
			d.redo()
		}

	case tcell.KeyCtrlF:
		ws.startPrompt(promptFind, "Find: ")
	case tcell.KeyCtrlG:
		d.findNext()
	case tcell.KeyCtrlL:
		ws.startPrompt(promptGoto, "Goto line: ")
	case tcell.KeyCtrlT:
		d.top(false)
	case tcell.KeyCtrlB:
		d.bottom(false)

	case tcell.KeyCtrlO:
		if !ws.viewOnly {
			ws.startPrompt(promptOpen, "Open file: ")
		}
	case tcell.KeyCtrlN:
		if !ws.viewOnly {
			if err := ws.NewUntitled(); err == nil {
				ws.current.refresh = true
			}
		}
	case tcell.KeyCtrlW:
		if !ws.viewOnly {
			ws.closeCurrent()
		}
	case tcell.KeyCtrlS:
		if !ws.viewOnly {
			ws.saveCurrent()
		}
	case tcell.KeyCtrlP:
		if !ws.viewOnly {
			ws.startPrompt(promptPipe, "Command: ")
		}
	case tcell.KeyCtrlQ:
		ws.startQuit()
		return ws.quit

	case tcell.KeyCtrlU:
		ws.jumpToFile()
	case tcell.KeyCtrlY, tcell.KeyF1:
		ws.helpActive = true
	case tcell.KeyF3:
		ws.jumpToFile()
	case tcell.KeyF5:
		ws.sync = true
		ws.current.refresh = true

	case tcell.KeyEscape:
		if ws.viewOnly {
			return true
		}
	}
	return ws.quit
}
