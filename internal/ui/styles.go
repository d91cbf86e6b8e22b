package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"wareflow/internal/orders"
	"wareflow/internal/ui/theme"
)

// Styles are functions so a theme switch takes effect on the next frame.

func styleAppHeader() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Foreground(th.TextEmphasized()).
		Background(th.Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Padding(0, 1)
}

func styleTabActive() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Foreground(th.TextEmphasized()).
		Background(th.BackgroundSecondary()).
		Bold(true).
		Padding(0, 1)
}

func stylePane() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Current().BorderNormal())
}

func stylePaneFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Current().BorderFocused())
}

func styleID() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleDim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

func styleSelected() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Background(th.BackgroundSecondary()).
		Foreground(th.TextEmphasized()).
		Bold(true)
}

func styleField() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true).
		Width(14)
}

func styleSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleChip(active bool) lipgloss.Style {
	th := theme.Current()
	s := lipgloss.NewStyle().Padding(0, 1).MarginRight(1)
	if active {
		return s.Background(th.Primary()).Foreground(th.TextEmphasized()).Bold(true)
	}
	return s.Background(th.BackgroundSecondary()).Foreground(th.Text())
}

func styleOverlay() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Primary()).
		Padding(1, 2)
}

func styleDangerOverlay() lipgloss.Style {
	return styleOverlay().BorderForeground(theme.Current().Error())
}

func styleOverlayTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleDivider() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary())
}

func styleFormError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Error()).Bold(true)
}

func styleErrorToast() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Error()).
		Foreground(th.Text()).
		Padding(0, 1)
}

func styleSuccessToast() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Success()).
		Foreground(th.Text()).
		Padding(0, 1)
}

// Help overlay styles

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Info()).Bold(true)
}

func styleHelpDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleHelpSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

func styleHelpFooter() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted()).Italic(true)
}

// Footer bar styles

func styleKeyPill() lipgloss.Style {
	th := theme.Current()
	return lipgloss.NewStyle().
		Background(th.Primary()).
		Foreground(th.TextEmphasized()).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

// toneColor maps a badge tone onto the theme.
func toneColor(t orders.Tone) lipgloss.AdaptiveColor {
	th := theme.Current()
	switch t {
	case orders.ToneInfo:
		return th.Info()
	case orders.ToneSuccess:
		return th.Success()
	case orders.ToneWarning:
		return th.Warning()
	case orders.ToneDanger:
		return th.Error()
	case orders.ToneMuted:
		return th.TextMuted()
	default:
		return th.Secondary()
	}
}

func styleBadge(t orders.Tone) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(toneColor(t)).
		Bold(true)
}

// renderBadges renders badges as bracketed labels separated by a space.
func renderBadges(badges []orders.Badge) string {
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		parts = append(parts, styleBadge(b.Tone).Render("["+b.Label+"]"))
	}
	return strings.Join(parts, " ")
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
