package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks into a cell buffer so overlays and
// toasts can sit on top of the base view without breaking its ANSI state.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas allocates a canvas; non-positive sizes are clamped to 1.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes the provided block starting at x,y.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.drawBlockAt(x, y, splitLines(content))
}

// Center draws the block centered between the top and bottom margins so the
// tab bar and footer stay visible.
func (c *Canvas) Center(block string, topMargin, bottomMargin int) {
	lines := splitLines(block)
	if len(lines) == 0 || c == nil {
		return
	}
	blockWidth := maxLineWidth(lines)
	if blockWidth > c.width {
		blockWidth = c.width
	}
	x, y := centeredOffsets(c.width, c.height, blockWidth, len(lines), topMargin, bottomMargin)
	c.drawBlockAt(x, y, lines)
}

// BottomRight anchors the block to the bottom-right corner, padding cells in.
func (c *Canvas) BottomRight(block string, padding int) {
	lines := splitLines(block)
	if len(lines) == 0 || c == nil {
		return
	}
	if padding < 0 {
		padding = 0
	}
	y := c.height - len(lines) - padding
	x := c.width - maxLineWidth(lines) - padding
	c.drawBlockAt(x, y, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption. The canvas cannot be drawn on afterwards.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func centeredOffsets(width, height, blockWidth, blockHeight, topMargin, bottomMargin int) (int, int) {
	if topMargin < 0 {
		topMargin = 0
	}
	if bottomMargin < 0 {
		bottomMargin = 0
	}
	usable := height - topMargin - bottomMargin
	y := topMargin
	if usable > blockHeight {
		y = topMargin + (usable-blockHeight)/2
	}
	if maxY := height - bottomMargin - blockHeight; y > maxY {
		y = maxY
	}
	if y < 0 {
		y = 0
	}
	x := (width - blockWidth) / 2
	if x < 0 {
		x = 0
	}
	return x, y
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > widest {
			widest = w
		}
	}
	return widest
}
