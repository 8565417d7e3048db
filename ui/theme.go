package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

type Theme struct {
	BgColor, FgColor, FrameColor         tcell.Color
	SelBgColor, SelFgColor               tcell.Color
	EmFgColor, ErrorFgColor, WarnFgColor tcell.Color
	HelpBgColor, HelpFgColor             tcell.Color
	ActionBgColor, ActionFgColor         tcell.Color
	DisabledFgColor                      tcell.Color
}

var DarkTheme = Theme{
	BgColor:         tcell.ColorBlack,
	FgColor:         tcell.ColorWhite,
	FrameColor:      tcell.ColorWhite,
	SelBgColor:      tcell.ColorDarkCyan,
	SelFgColor:      tcell.ColorBlack,
	EmFgColor:       tcell.ColorLightSkyBlue,
	ErrorFgColor:    tcell.ColorRed,
	WarnFgColor:     tcell.ColorOrange,
	HelpBgColor:     tcell.ColorDarkGreen,
	HelpFgColor:     tcell.ColorWhite,
	ActionBgColor:   tcell.ColorMediumPurple,
	ActionFgColor:   tcell.ColorBlack,
	DisabledFgColor: tcell.ColorGray,
}

var LightTheme = Theme{
	BgColor:         tcell.ColorWhite,
	FgColor:         tcell.ColorBlack,
	FrameColor:      tcell.ColorBlack,
	SelBgColor:      tcell.ColorDarkCyan,
	SelFgColor:      tcell.ColorWhite,
	EmFgColor:       tcell.ColorNavy,
	ErrorFgColor:    tcell.ColorDarkRed,
	WarnFgColor:     tcell.ColorDarkOrange,
	HelpBgColor:     tcell.ColorGreen,
	HelpFgColor:     tcell.ColorWhite,
	ActionBgColor:   tcell.ColorRebeccaPurple,
	ActionFgColor:   tcell.ColorWhite,
	DisabledFgColor: tcell.ColorDarkGray,
}

var Themes = map[string]Theme{
	"dark":  DarkTheme,
	"light": LightTheme,
}

var CurrentTheme = DarkTheme

func SetTheme(theme string) {
	t, ok := Themes[theme]
	if !ok {
		t = DarkTheme
	}
	CurrentTheme = t
}

func (t *Theme) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(t.FgColor).Background(t.BgColor)
}

// ParseColor resolves a template color: a theme field name ("g.ErrorFgColor")
// or anything tcell.GetColor understands.
func (t *Theme) ParseColor(color string) tcell.Color {
	c := strings.TrimSpace(color)

	switch c {
	case "":
		return t.FgColor
	case "g.BgColor":
		return t.BgColor
	case "g.FgColor":
		return t.FgColor
	case "g.FrameColor":
		return t.FrameColor
	case "g.SelBgColor":
		return t.SelBgColor
	case "g.SelFgColor":
		return t.SelFgColor
	case "g.EmFgColor":
		return t.EmFgColor
	case "g.ErrorFgColor":
		return t.ErrorFgColor
	case "g.WarnFgColor":
		return t.WarnFgColor
	case "g.HelpBgColor":
		return t.HelpBgColor
	case "g.HelpFgColor":
		return t.HelpFgColor
	case "g.ActionBgColor":
		return t.ActionBgColor
	case "g.ActionFgColor":
		return t.ActionFgColor
	case "g.DisabledFgColor":
		return t.DisabledFgColor
	}

	return tcell.GetColor(c)
}
