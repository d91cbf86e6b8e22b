// Package theme provides the semantic color system for the wareflow UI.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the semantic colors of the UI.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	// Base colors
	Primary() lipgloss.AdaptiveColor   // Tab bar, focused borders
	Secondary() lipgloss.AdaptiveColor // Field labels, chip captions
	Accent() lipgloss.AdaptiveColor    // Order and item IDs

	// Status colors
	Error() lipgloss.AdaptiveColor   // Damage, cancelled, errors
	Warning() lipgloss.AdaptiveColor // Late, low stock, pending receipts
	Success() lipgloss.AdaptiveColor // Completed, in stock
	Info() lipgloss.AdaptiveColor    // In Prüfung, partial deliveries

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor
	TextEmphasized() lipgloss.AdaptiveColor

	// Background colors
	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // Selected rows, overlays

	// Border colors
	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
}

// Palette is a Theme backed by plain hex values.
type Palette struct {
	PrimaryHex   Pair
	SecondaryHex Pair
	AccentHex    Pair

	ErrorHex   Pair
	WarningHex Pair
	SuccessHex Pair
	InfoHex    Pair

	TextHex           Pair
	TextMutedHex      Pair
	TextEmphasizedHex Pair

	BackgroundHex          Pair
	BackgroundSecondaryHex Pair

	BorderNormalHex  Pair
	BorderFocusedHex Pair
}

// Pair holds the light and dark variant of one color.
type Pair struct {
	Light string
	Dark  string
}

func (p Pair) color() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p.Light, Dark: p.Dark}
}

func (p Palette) Primary() lipgloss.AdaptiveColor   { return p.PrimaryHex.color() }
func (p Palette) Secondary() lipgloss.AdaptiveColor { return p.SecondaryHex.color() }
func (p Palette) Accent() lipgloss.AdaptiveColor    { return p.AccentHex.color() }

func (p Palette) Error() lipgloss.AdaptiveColor   { return p.ErrorHex.color() }
func (p Palette) Warning() lipgloss.AdaptiveColor { return p.WarningHex.color() }
func (p Palette) Success() lipgloss.AdaptiveColor { return p.SuccessHex.color() }
func (p Palette) Info() lipgloss.AdaptiveColor    { return p.InfoHex.color() }

func (p Palette) Text() lipgloss.AdaptiveColor           { return p.TextHex.color() }
func (p Palette) TextMuted() lipgloss.AdaptiveColor      { return p.TextMutedHex.color() }
func (p Palette) TextEmphasized() lipgloss.AdaptiveColor { return p.TextEmphasizedHex.color() }

func (p Palette) Background() lipgloss.AdaptiveColor { return p.BackgroundHex.color() }
func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor {
	return p.BackgroundSecondaryHex.color()
}

func (p Palette) BorderNormal() lipgloss.AdaptiveColor  { return p.BorderNormalHex.color() }
func (p Palette) BorderFocused() lipgloss.AdaptiveColor { return p.BorderFocusedHex.color() }

// BackgroundANSI returns the escape sequence that paints the theme background.
// Used to restore the background after a lipgloss reset inside composed rows.
func BackgroundANSI(t Theme) string {
	hex := t.Background().Dark
	if !lipgloss.HasDarkBackground() {
		hex = t.Background().Light
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}
