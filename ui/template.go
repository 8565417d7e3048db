package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
)

// Template language:
//
//	<c> </c>          center following rows
//	<w> </w>          wrap long rows at word boundaries
//	<b> <u> <i> <r> <s> <dim> <blink> and their closing tags
//	<color fg:red bg:g.HelpBgColor> </color>
//	<line text:"title">   the row becomes a horizontal rule
//	<l text:... action:... tip:... id:...>
//	<button text:... id:... tip:... color:... bgcolor:... disabled:true>
//	<lt>              a literal "<"
//
// Clicking a link reports its action; a button reports "button <id>".
type Cell struct {
	Ch    rune // 0 marks the right half of a wide rune
	Style tcell.Style
}

type Hotspot struct {
	X, Y             int
	L                int
	ID               string
	Value            string
	Tip              string
	Disabled         bool
	Cells            []Cell
	CellsHighlighted []Cell
}

type Canvas struct {
	Width    int
	Lines    [][]Cell
	Hotspots []*Hotspot
}

var escaper = strings.NewReplacer("<", "<lt>", "\t", " ", "\r", "")

// Escape makes untrusted text safe to embed in a template.
func Escape(s string) string {
	return escaper.Replace(s)
}

type renderState struct {
	bold, blink, reverse, underline, dim, italic, strike bool
	fg, bg                                               *tcell.Color
	centered, autowrap                                   bool
}

func (rs *renderState) style(t *Theme) tcell.Style {
	fg, bg := t.FgColor, t.BgColor
	if rs.fg != nil {
		fg = *rs.fg
	}
	if rs.bg != nil {
		bg = *rs.bg
	}

	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(rs.bold).
		Blink(rs.blink).
		Reverse(rs.reverse).
		Underline(rs.underline).
		Dim(rs.dim).
		Italic(rs.italic).
		StrikeThrough(rs.strike)
}

type item struct {
	cells []Cell
	hs    *Hotspot
}

type renderer struct {
	theme  *Theme
	width  int
	canvas *Canvas
	st     renderState

	row         []item
	rowW        int
	rowCentered bool
	wrapped     bool
	drawLine    bool
	lineText    string
}

func RenderTemplate(template string, width int, t *Theme) *Canvas {
	c := &Canvas{Width: width}

	if width < 3 {
		return c // no space to render
	}

	r := &renderer{theme: t, width: width, canvas: c}

	for _, line := range strings.Split(template, "\n") {
		if strings.Contains(line, "\t") {
			log.Warn().Msgf("tabs are not allowed in templates : %s", line)
			line = strings.ReplaceAll(line, "\t", " ")
		}
		r.renderLine(line)
	}

	return c
}

func (r *renderer) renderLine(line string) {
	r.wrapped = false

	left := 0
	for _, m := range tagRe.FindAllStringIndex(line, -1) {
		r.addText(line[left:m[0]])
		r.addTag(line[m[0]:m[1]])
		left = m[1]
	}
	r.addText(line[left:])

	r.flush()
}

func (r *renderer) push(it item) {
	if len(r.row) == 0 {
		r.rowCentered = r.st.centered
	}
	r.row = append(r.row, it)
	r.rowW += len(it.cells)
}

func (r *renderer) addText(s string) {
	if s == "" {
		return
	}

	style := r.st.style(r.theme)

	if !r.st.autowrap {
		r.push(item{cells: addCells(nil, style, s)})
		return
	}

	for _, word := range splitWords(s) {
		cells := addCells(nil, style, word)

		if word[0] == ' ' {
			if r.wrapped && r.rowW == 0 {
				continue // no leading blanks on continuation rows
			}
			room := r.width - r.rowW
			if room <= 0 {
				continue
			}
			if len(cells) > room {
				cells = cells[:room]
			}
			r.push(item{cells: cells})
			continue
		}

		for len(cells) > 0 {
			room := r.width - r.rowW
			if len(cells) <= room {
				r.push(item{cells: cells})
				break
			}
			if r.rowW > 0 {
				r.wrap()
				continue
			}
			// the word does not fit an empty row, break it
			n := room
			if n < len(cells) && cells[n].Ch == 0 {
				n--
			}
			r.push(item{cells: cells[:n]})
			cells = cells[n:]
			r.wrap()
		}
	}
}

func (r *renderer) wrap() {
	r.flush()
	r.wrapped = true
}

func (r *renderer) addWidget(cells []Cell, hs *Hotspot) {
	if r.st.autowrap && r.rowW > 0 && r.rowW+len(cells) > r.width {
		r.wrap()
	}
	r.push(item{cells: cells, hs: hs})
}

func (r *renderer) addTag(tag string) {
	tagName, tagParams := ParseTag(tag)

	switch tagName {
	case "c":
		r.st.centered = true
	case "/c":
		r.st.centered = false
	case "w":
		r.st.autowrap = true
	case "/w":
		r.st.autowrap = false
	case "b":
		r.st.bold = true
	case "/b":
		r.st.bold = false
	case "u":
		r.st.underline = true
	case "/u":
		r.st.underline = false
	case "r":
		r.st.reverse = true
	case "/r":
		r.st.reverse = false
	case "dim":
		r.st.dim = true
	case "/dim":
		r.st.dim = false
	case "i":
		r.st.italic = true
	case "/i":
		r.st.italic = false
	case "s":
		r.st.strike = true
	case "/s":
		r.st.strike = false
	case "blink":
		r.st.blink = true
	case "/blink":
		r.st.blink = false
	case "color":
		if tagParams["fg"] != "" {
			c := r.theme.ParseColor(tagParams["fg"])
			r.st.fg = &c
		}
		if tagParams["bg"] != "" {
			c := r.theme.ParseColor(tagParams["bg"])
			r.st.bg = &c
		}
	case "/color":
		r.st.fg = nil
		r.st.bg = nil
	case "line":
		r.drawLine = true
		r.lineText = tagParams["text"]
	case "lt":
		r.addText("<")
	case "l":
		r.addLink(tagParams)
	case "button":
		r.addButton(tagParams)
	default:
		log.Warn().Msgf("unknown template tag: %s", tag)
	}
}

func (r *renderer) addLink(p map[string]string) {
	t := r.theme
	bg := t.BgColor
	if r.st.bg != nil {
		bg = *r.st.bg
	}

	text := p["text"]
	cells := addCells(nil, tcell.StyleDefault.Foreground(t.EmFgColor).Background(bg), text)
	hl := addCells(nil, tcell.StyleDefault.Foreground(t.SelFgColor).Background(t.SelBgColor), text)

	r.addWidget(cells, &Hotspot{
		ID:               p["id"],
		Value:            p["action"],
		Tip:              p["tip"],
		Cells:            cells,
		CellsHighlighted: hl,
	})
}

func (r *renderer) addButton(p map[string]string) {
	t := r.theme
	text := p["text"]

	id := p["id"]
	if id == "" {
		id = text
	}

	tip := p["tip"]
	if tip == "" {
		tip = text
	}

	disabled := p["disabled"] == "true"

	fg, bg := t.BgColor, t.EmFgColor
	if p["color"] != "" {
		fg = t.ParseColor(p["color"])
	}
	if p["bgcolor"] != "" {
		bg = t.ParseColor(p["bgcolor"])
	}
	if disabled {
		fg, bg = t.BgColor, t.DisabledFgColor
	}

	edge := tcell.StyleDefault.Foreground(bg).Background(t.BgColor)
	face := tcell.StyleDefault.Foreground(fg).Background(bg).Bold(true)

	cells := addCells(nil, edge, "\ue0b6")
	cells = addCells(cells, face, text)
	cells = addCells(cells, edge, "\ue0b4")

	sedge := tcell.StyleDefault.Foreground(t.SelBgColor).Background(t.BgColor)
	sface := tcell.StyleDefault.Foreground(t.SelFgColor).Background(t.SelBgColor).Bold(true)

	hl := addCells(nil, sedge, "\ue0b6")
	hl = addCells(hl, sface, text)
	hl = addCells(hl, sedge, "\ue0b4")

	r.addWidget(cells, &Hotspot{
		ID:               id,
		Value:            "button " + id,
		Tip:              tip,
		Disabled:         disabled,
		Cells:            cells,
		CellsHighlighted: hl,
	})
}

func (r *renderer) flush() {
	y := len(r.canvas.Lines)
	base := r.theme.Style()

	var line []Cell

	if r.drawLine {
		line = addCells(nil, r.st.style(r.theme), ruler(r.lineText, r.width))
		r.drawLine = false
		r.lineText = ""
	} else {
		if r.rowCentered && r.rowW < r.width {
			line = addCells(nil, base, strings.Repeat(" ", (r.width-r.rowW)/2))
		}

		for _, it := range r.row {
			if it.hs != nil {
				it.hs.X = len(line)
				it.hs.Y = y
				it.hs.L = len(it.cells)
				r.canvas.Hotspots = append(r.canvas.Hotspots, it.hs)
			}
			line = append(line, it.cells...)
		}
	}

	r.canvas.Lines = append(r.canvas.Lines, line)
	r.row = nil
	r.rowW = 0
}

func ruler(text string, width int) string {
	if text == "" {
		return strings.Repeat("━", width)
	}

	tl := runewidth.StringWidth(text)
	if tl >= width-4 {
		return runewidth.Truncate(text, width, "")
	}

	l := strings.Repeat("━", (width-tl-2)/2) + " " + text + " "
	if left := width - runewidth.StringWidth(l); left > 0 {
		l += strings.Repeat("━", left)
	}
	return l
}

// splitWords cuts s into alternating runs of blanks and non-blanks.
func splitWords(s string) []string {
	var words []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[i-1] == ' ') {
			words = append(words, s[start:i])
			start = i
		}
	}
	return words
}

func addCells(cells []Cell, style tcell.Style, text string) []Cell {
	for _, ch := range text {
		switch runewidth.RuneWidth(ch) {
		case 0:
			continue
		case 2:
			cells = append(cells, Cell{ch, style}, Cell{0, style})
		default:
			cells = append(cells, Cell{ch, style})
		}
	}
	return cells
}

func (c *Canvas) Height() int {
	return len(c.Lines)
}

// Text returns the visible characters, one row per line, without trailing
// blanks.
func (c *Canvas) Text() string {
	rows := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		var sb strings.Builder
		for _, cell := range line {
			if cell.Ch != 0 {
				sb.WriteRune(cell.Ch)
			}
		}
		rows[i] = strings.TrimRight(sb.String(), " ")
	}
	return strings.TrimRight(strings.Join(rows, "\n"), "\n")
}

func (c *Canvas) HotspotAt(x, y int) *Hotspot {
	for _, h := range c.Hotspots {
		if h.Y == y && x >= h.X && x < h.X+h.L {
			return h
		}
	}
	return nil
}

func (c *Canvas) HotspotByValue(value string) *Hotspot {
	for _, h := range c.Hotspots {
		if h.Value == value {
			return h
		}
	}
	return nil
}

// Focusable returns the enabled hotspots in reading order.
func (c *Canvas) Focusable() []*Hotspot {
	var res []*Hotspot
	for _, h := range c.Hotspots {
		if !h.Disabled {
			res = append(res, h)
		}
	}
	return res
}

// Draw paints rows [top, top+h) of the canvas into the w*h box at x0,y0.
func (c *Canvas) Draw(s tcell.Screen, x0, y0, w, h, top int, base tcell.Style, focus *Hotspot) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x0+x, y0+y, ' ', nil, base)
		}

		ly := top + y
		if ly < 0 || ly >= len(c.Lines) {
			continue
		}

		drawCells(s, x0, y0+y, w, c.Lines[ly])

		if focus != nil && focus.Y == ly && focus.X < w {
			drawCells(s, x0+focus.X, y0+y, w-focus.X, focus.CellsHighlighted)
		}
	}
}

func drawCells(s tcell.Screen, x0, y, w int, cells []Cell) {
	for x, cell := range cells {
		if x >= w {
			break
		}
		if cell.Ch == 0 {
			continue
		}
		s.SetContent(x0+x, y, cell.Ch, nil, cell.Style)
	}
}
