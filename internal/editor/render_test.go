package editor

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestRenderText(t *testing.T) {
	ws, _ := newTestDoc(t, "first line\nsecond\n")
	s := newSimScreen(t, 20, 5)

	ws.Render(s)
	if got := strings.TrimRight(screenRow(s, 0), " "); got != "first line" {
		t.Fatalf("row 0 = %q, want %q", got, "first line")
	}
	if got := strings.TrimRight(screenRow(s, 1), " "); got != "second" {
		t.Fatalf("row 1 = %q, want %q", got, "second")
	}
}

func TestRenderStatusLine(t *testing.T) {
	ws, d := newTestDoc(t, "abc")
	d.filename = "/tmp/f.txt"
	s := newSimScreen(t, 40, 5)

	ws.Render(s)
	row := screenRow(s, 4)
	if !strings.Contains(row, "/tmp/f.txt") {
		t.Fatalf("status = %q, missing filename", row)
	}
	if !strings.Contains(row, "Ln 1") || !strings.Contains(row, "Col 1") {
		t.Fatalf("status = %q, missing Ln/Col", row)
	}
	if strings.Contains(row, "*") {
		t.Fatalf("status = %q shows dirty marker on clean document", row)
	}

	d.insertChar('!')
	ws.Render(s)
	if !strings.Contains(screenRow(s, 4), "*") {
		t.Fatalf("status missing dirty marker after edit")
	}
}

func TestRenderCursorWithTab(t *testing.T) {
	ws, d := newTestDoc(t, "\tX")
	d.moveTo(2, false)
	s := newSimScreen(t, 20, 5)

	ws.Render(s)
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	if x != 9 || y != 0 {
		t.Fatalf("cursor = (%d,%d), want (9,0)", x, y)
	}
}

func TestRenderSelectionStyle(t *testing.T) {
	ws, d := newTestDoc(t, "abc")
	d.anchor = 1
	d.moveTo(2, false)
	s := newSimScreen(t, 10, 3)

	ws.Render(s)
	cells, _, _ := s.GetContents()
	_, bgNormal, _ := cells[0].Style.Decompose()
	_, bgSelected, _ := cells[1].Style.Decompose()
	if bgSelected == bgNormal {
		t.Fatalf("selection background not applied")
	}
	_, bgAfter, _ := cells[2].Style.Decompose()
	if bgAfter != bgNormal {
		t.Fatalf("selection style leaked past its end")
	}
}

func TestRenderLineUpdateRepaintsCurrentRow(t *testing.T) {
	ws, d := newTestDoc(t, "one\ntwo\n")
	s := newSimScreen(t, 20, 5)
	ws.Render(s)

	d.moveTo(3, false)
	d.insertChar('!')
	if d.refresh {
		t.Fatalf("single-char insert requested a full refresh")
	}
	ws.Render(s)
	if got := strings.TrimRight(screenRow(s, 0), " "); got != "one!" {
		t.Fatalf("row 0 = %q, want %q", got, "one!")
	}
}

func TestRenderPromptOnStatusRow(t *testing.T) {
	ws, _ := newTestDoc(t, "")
	s := newSimScreen(t, 30, 4)

	ws.HandleKey(key(tcell.KeyCtrlF))
	typeString(ws, "abc")
	ws.Render(s)

	row := screenRow(s, 3)
	if !strings.HasPrefix(row, "Find: abc") {
		t.Fatalf("status row = %q, want Find: abc prefix", row)
	}
	x, y, _ := s.GetCursor()
	if x != len("Find: abc") || y != 3 {
		t.Fatalf("prompt cursor = (%d,%d), want (%d,3)", x, y, len("Find: abc"))
	}
}

func TestRenderConfirmOnStatusRow(t *testing.T) {
	ws, d := newTestDoc(t, "")
	d.dirty = true
	s := newSimScreen(t, 60, 4)

	ws.HandleKey(key(tcell.KeyCtrlW))
	ws.Render(s)
	if !strings.Contains(screenRow(s, 3), "without saving changes") {
		t.Fatalf("confirm message missing from status row")
	}
}

func TestRenderHelpScreen(t *testing.T) {
	ws, _ := newTestDoc(t, "")
	s := newSimScreen(t, 80, 24)

	ws.HandleKey(key(tcell.KeyF1))
	ws.Render(s)
	if !strings.Contains(screenRow(s, 0), "Editor Command Summary") {
		t.Fatalf("help header missing")
	}
}

func TestRenderMarginClipsLongLine(t *testing.T) {
	ws, d := newTestDoc(t, "0123456789abcdefghij\n")
	s := newSimScreen(t, 10, 3)
	ws.Resize(10, 3)

	d.moveTo(15, false)
	d.lastCol = d.col
	d.adjust()
	ws.Render(s)

	row := screenRow(s, 0)
	if !strings.HasPrefix(row, string("0123456789abcdefghij"[d.margin:d.margin+10])) {
		t.Fatalf("row = %q with margin %d", row, d.margin)
	}
	x, _, visible := s.GetCursor()
	if !visible || x != 15-d.margin {
		t.Fatalf("cursor x = %d visible=%v, want %d", x, visible, 15-d.margin)
	}
}
