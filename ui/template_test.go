package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	name, params := ParseTag(`<button text:"Sign it" id:sign tip:'x y'>`)
	assert.Equal(t, "button", name)
	assert.Equal(t, map[string]string{"text": "Sign it", "id": "sign", "tip": "x y"}, params)

	name, params = ParseTag("</color>")
	assert.Equal(t, "/color", name)
	assert.Empty(t, params)
}

func TestRenderPlainAndCentered(t *testing.T) {
	c := RenderTemplate("hello\n<c>ab", 10, &DarkTheme)
	assert.Equal(t, "hello\n    ab", c.Text())
	assert.Equal(t, 2, c.Height())
}

func TestRenderAutowrap(t *testing.T) {
	c := RenderTemplate("<w>aaa bbb ccc", 7, &DarkTheme)
	assert.Equal(t, "aaa bbb\nccc", c.Text())
}

func TestRenderAutowrapKeepsIndent(t *testing.T) {
	c := RenderTemplate("<w>  aaa bbb", 6, &DarkTheme)
	assert.Equal(t, "  aaa\nbbb", c.Text())
}

func TestRenderBreaksLongWords(t *testing.T) {
	c := RenderTemplate("<w>abcdefghij", 4, &DarkTheme)
	assert.Equal(t, "abcd\nefgh\nij", c.Text())
}

func TestRenderLine(t *testing.T) {
	assert.Equal(t, "━━━━━", RenderTemplate("<line>", 5, &DarkTheme).Text())
	assert.Equal(t, "━━━ ab ━━━", RenderTemplate("<line text:ab>", 10, &DarkTheme).Text())
}

func TestRenderEscapedText(t *testing.T) {
	c := RenderTemplate(Escape("<b>x</b> <lt>"), 30, &DarkTheme)
	assert.Equal(t, "<b>x</b> <lt>", c.Text())
	assert.Empty(t, c.Hotspots)
}

func TestRenderWideRunes(t *testing.T) {
	c := RenderTemplate("日本", 10, &DarkTheme)
	require.Len(t, c.Lines, 1)
	assert.Len(t, c.Lines[0], 4)
	assert.Equal(t, "日本", c.Text())
}

func TestRenderLink(t *testing.T) {
	c := RenderTemplate(`see <l text:"go here" action:"open 1" tip:"a tip">`, 30, &DarkTheme)
	assert.Equal(t, "see go here", c.Text())

	require.Len(t, c.Hotspots, 1)
	hs := c.Hotspots[0]
	assert.Equal(t, "open 1", hs.Value)
	assert.Equal(t, "a tip", hs.Tip)
	assert.Equal(t, 4, hs.X)
	assert.Equal(t, 0, hs.Y)
	assert.Equal(t, 7, hs.L)

	assert.Same(t, hs, c.HotspotAt(6, 0))
	assert.Nil(t, c.HotspotAt(2, 0))
	assert.Same(t, hs, c.HotspotByValue("open 1"))
}

func TestRenderButtons(t *testing.T) {
	c := RenderTemplate("\n<button text:Ok id:ok> <button text:No disabled:true>", 30, &DarkTheme)
	assert.Contains(t, c.Text(), "Ok")
	assert.Contains(t, c.Text(), "No")

	ok := c.HotspotByValue("button ok")
	require.NotNil(t, ok)
	assert.Equal(t, 1, ok.Y)
	assert.False(t, ok.Disabled)
	assert.Equal(t, len(ok.Cells), ok.L)

	no := c.HotspotByValue("button No")
	require.NotNil(t, no)
	assert.True(t, no.Disabled)

	assert.Equal(t, []*Hotspot{ok}, c.Focusable())
}

func TestRenderWrapMovesWidgets(t *testing.T) {
	c := RenderTemplate(`<w>abcdef <l text:link action:x>`, 8, &DarkTheme)
	assert.Equal(t, "abcdef\nlink", c.Text())
	assert.Equal(t, 1, c.HotspotByValue("x").Y)
}

func TestRenderNarrow(t *testing.T) {
	c := RenderTemplate("anything", 2, &DarkTheme)
	assert.Equal(t, 0, c.Height())
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"a", "  ", "bc", " "}, splitWords("a  bc "))
	assert.Nil(t, splitWords(""))
}
