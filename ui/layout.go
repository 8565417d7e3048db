package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// draw lays out the status line, the current page, the bottom line and the
// popup, if any.
func (g *GuiType) draw() {
	s := g.Screen
	w, h := s.Size()
	if w < 3 || h < 3 {
		return
	}

	t := &CurrentTheme
	base := t.Style()

	statusStyle := tcell.StyleDefault.Foreground(t.HelpFgColor).Background(t.HelpBgColor)
	RenderTemplate(g.Status.Template(), w, t).Draw(s, 0, 0, w, 1, 0, statusStyle, nil)

	_, page := g.Router.Current()
	pageH := h - 2
	if page != nil {
		g.pageCanvas = RenderTemplate(page.Template(), w, t)
	}

	if g.pageCanvas != nil {
		maxScroll := g.pageCanvas.Height() - pageH
		if g.scroll > maxScroll {
			g.scroll = maxScroll
		}
		if g.scroll < 0 {
			g.scroll = 0
		}

		var focus *Hotspot
		if g.popup == nil {
			focus = g.focused()
		}
		g.pageCanvas.Draw(s, 0, 1, w, pageH, g.scroll, base, focus)
	}

	g.drawBottom(w, h-1)

	if g.popup != nil {
		g.drawPopup(w, h)
	}

	s.Show()
}

func (g *GuiType) drawBottom(w, y int) {
	t := &CurrentTheme
	style := tcell.StyleDefault.Foreground(t.HelpFgColor).Background(t.BgColor)
	text := g.tip

	if Notification.On {
		text = Notification.Message
		if Notification.Error {
			style = tcell.StyleDefault.Foreground(t.ErrorFgColor).Background(t.BgColor)
		} else {
			style = tcell.StyleDefault.Foreground(t.HelpFgColor).Background(t.HelpBgColor)
		}
	}

	text = runewidth.Truncate(text, w, "…")

	for x := 0; x < w; x++ {
		g.Screen.SetContent(x, y, ' ', nil, t.Style())
	}

	x := w - runewidth.StringWidth(text)
	for _, ch := range text {
		g.Screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func (g *GuiType) drawPopup(w, h int) {
	t := &CurrentTheme
	base := t.Style()

	pw := min(POPUP_WIDTH, w-2)
	g.popupCanvas = RenderTemplate(g.popup.Template, pw-2, t)

	ph := min(g.popupCanvas.Height()+2, h)
	x0 := (w - pw) / 2
	y0 := (h - ph) / 2

	frame := tcell.StyleDefault.Foreground(t.ActionBgColor).Background(t.BgColor)
	for x := x0; x < x0+pw; x++ {
		g.Screen.SetContent(x, y0, '─', nil, frame)
		g.Screen.SetContent(x, y0+ph-1, '─', nil, frame)
	}
	for y := y0; y < y0+ph; y++ {
		g.Screen.SetContent(x0, y, '│', nil, frame)
		g.Screen.SetContent(x0+pw-1, y, '│', nil, frame)
	}
	g.Screen.SetContent(x0, y0, '╭', nil, frame)
	g.Screen.SetContent(x0+pw-1, y0, '╮', nil, frame)
	g.Screen.SetContent(x0, y0+ph-1, '╰', nil, frame)
	g.Screen.SetContent(x0+pw-1, y0+ph-1, '╯', nil, frame)

	title := runewidth.Truncate(" "+g.popup.Title+" ", pw-4, "…")
	x := x0 + 2
	for _, ch := range title {
		g.Screen.SetContent(x, y0, ch, nil, frame.Bold(true))
		x += runewidth.RuneWidth(ch)
	}

	g.popupX, g.popupY = x0+1, y0+1
	g.popupCanvas.Draw(g.Screen, g.popupX, g.popupY, pw-2, ph-2, 0, base, g.focused())
}
