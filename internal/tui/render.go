package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/mglenn/vimulator/internal/input/mode"
	"github.com/mglenn/vimulator/internal/simulator"
)

var (
	styleDefault = tcell.StyleDefault
	styleGutter  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// render draws the buffer, status line, and message line.
func (a *App) render() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if w == 0 || h < 3 {
		a.screen.Show()
		return
	}

	ds := a.sim.DisplayState()
	textRows := h - 2
	a.scrollTo(ds.Cursor.Line, textRows)

	gutter := 0
	if a.cfg.UI.LineNumbers {
		gutter = numberWidth(len(ds.Lines)) + 1
	}

	for row := 0; row < textRows; row++ {
		lineNo := a.topLine + row
		if lineNo >= len(ds.Lines) {
			a.screen.SetContent(0, row, '~', nil, styleGutter)
			continue
		}
		if gutter > 0 {
			num := fmt.Sprintf("%*d", gutter-1, lineNo+1)
			a.drawText(0, row, num, styleGutter)
		}
		a.drawLine(gutter, row, ds.Lines[lineNo], w-gutter)
	}

	a.drawStatusLine(ds, w, h-2)
	a.drawMessageLine(ds, h-1)
	a.placeCursor(ds, gutter, textRows)
	a.screen.Show()
}

// scrollTo keeps the cursor line inside the viewport.
func (a *App) scrollTo(line, rows int) {
	if line < a.topLine {
		a.topLine = line
	}
	if line >= a.topLine+rows {
		a.topLine = line - rows + 1
	}
	if a.topLine < 0 {
		a.topLine = 0
	}
}

// drawLine renders one buffer line with tab expansion, clipped to
// width cells.
func (a *App) drawLine(x, y int, line string, width int) {
	col := 0
	for _, gr := range graphemes(line) {
		if col >= width {
			return
		}
		if gr.first == '\t' && len(gr.rest) == 0 {
			col += a.tabAdvance(col)
			continue
		}
		a.screen.SetContent(x+col, y, gr.first, gr.rest, styleDefault)
		col += gr.width
	}
}

func (a *App) drawStatusLine(ds simulator.DisplayState, w, y int) {
	left := " " + ds.ModeLabel
	if ds.Recording != 0 {
		left += fmt.Sprintf("  recording @%c", ds.Recording)
	}
	if a.cfg.UI.ShowPending && ds.Pending != "" {
		left += "  " + ds.Pending
	}
	right := fmt.Sprintf("%d:%d ", ds.Cursor.Line+1, ds.Cursor.Col+1)

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	a.drawText(0, y, left, styleStatus)
	if pad := w - uniseg.StringWidth(right); pad > 0 {
		a.drawText(pad, y, right, styleStatus)
	}
}

func (a *App) drawMessageLine(ds simulator.DisplayState, y int) {
	switch {
	case ds.Mode == mode.Command:
		a.drawText(0, y, ds.CommandLine, styleDefault)
	case a.cfg.UI.ShowStatus && ds.Status != "":
		style := styleDefault
		if a.lastFailed {
			style = styleError
		}
		a.drawText(0, y, ds.Status, style)
	}
}

// placeCursor positions the hardware cursor, accounting for the
// gutter, tab expansion, and wide characters.
func (a *App) placeCursor(ds simulator.DisplayState, gutter, textRows int) {
	if ds.Mode == mode.Command {
		a.screen.ShowCursor(uniseg.StringWidth(ds.CommandLine), textRows+1)
		return
	}
	row := ds.Cursor.Line - a.topLine
	if row < 0 || row >= textRows {
		a.screen.HideCursor()
		return
	}

	col := 0
	runes := []rune(ds.Lines[ds.Cursor.Line])
	for i := 0; i < ds.Cursor.Col && i < len(runes); i++ {
		if runes[i] == '\t' {
			col += a.tabAdvance(col)
		} else {
			col += uniseg.StringWidth(string(runes[i]))
		}
	}
	a.screen.ShowCursor(gutter+col, row)
}

func (a *App) drawText(x, y int, text string, style tcell.Style) {
	for _, gr := range graphemes(text) {
		a.screen.SetContent(x, y, gr.first, gr.rest, style)
		x += gr.width
	}
}

// tabAdvance returns how many cells a tab occupies starting at col.
func (a *App) tabAdvance(col int) int {
	tw := a.cfg.Editor.TabWidth
	return tw - col%tw
}

// grapheme is one user-perceived character ready for SetContent.
type grapheme struct {
	first rune
	rest  []rune
	width int
}

func graphemes(s string) []grapheme {
	var out []grapheme
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		g := grapheme{first: runes[0], width: gr.Width()}
		if len(runes) > 1 {
			g.rest = runes[1:]
		}
		out = append(out, g)
	}
	return out
}

func numberWidth(n int) int {
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	return w
}
