package app

import (
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/okoval/ted/internal/config"
	"github.com/okoval/ted/internal/editor"
	"github.com/okoval/ted/internal/logger"
	"github.com/okoval/ted/internal/session"
)

// App is the top-level runtime for ted.
type App struct {
	args     []string
	viewOnly bool
}

func New(args []string) *App {
	a := &App{}
	for _, arg := range args {
		switch arg {
		case "-view", "--view":
			a.viewOnly = true
		default:
			a.args = append(a.args, arg)
		}
	}
	return a
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(os.Getenv("TED_DEBUG") != ""); err == nil {
		defer logger.Close()
	}

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session manager unavailable", "err", err)
		sm = nil
	} else {
		defer sm.Stop()
	}

	ws := editor.NewWorkspace(cfg, sm)
	if a.viewOnly {
		ws.SetViewOnly(true)
	}

	for _, name := range a.args {
		if err := ws.OpenArg(name); err != nil {
			return err
		}
	}
	if ws.Current() == nil {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			if err := ws.NewUntitled(); err != nil {
				return err
			}
		} else {
			// tcell reads keys from /dev/tty, so the console stays
			// usable after stdin is drained.
			if err := ws.ReadStdin(os.Stdin); err != nil {
				return err
			}
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	w, h := s.Size()
	ws.Resize(w, h)

	for {
		ws.Render(s)
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ws.HandleKey(ev) {
				return nil
			}
			if ws.TakeBeep() {
				s.Beep()
			}
			if ws.TakeSync() {
				s.Sync()
				w, h := s.Size()
				ws.Resize(w, h)
			}
		case *tcell.EventResize:
			s.Sync()
			w, h := ev.Size()
			ws.Resize(w, h)
		}
	}
}
