package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appErrors "wareflow/internal/errors"
)

const (
	errorToastDuration   = 10 * time.Second
	successToastDuration = 5 * time.Second
)

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// toast is a transient notice in the bottom-right corner.
type toast struct {
	text    string
	isError bool
	start   time.Time
}

func (t toast) visible(now time.Time) bool {
	return t.text != "" && now.Sub(t.start) < t.duration()
}

func (t toast) duration() time.Duration {
	if t.isError {
		return errorToastDuration
	}
	return successToastDuration
}

func (m *App) showSuccess(text string) tea.Cmd {
	m.toast = toast{text: text, start: timeNow()}
	return scheduleToastTick()
}

func (m *App) showError(err error) tea.Cmd {
	m.toast = toast{text: errorText(err), isError: true, start: timeNow()}
	return scheduleToastTick()
}

// errorText prefers the structured message over the wrapped chain.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	var appErr appErrors.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

func (m *App) handleToastTick() tea.Cmd {
	if m.toast.text == "" {
		return nil
	}
	if !m.toast.visible(timeNow()) {
		m.toast = toast{}
		return nil
	}
	return scheduleToastTick()
}

func (m *App) renderToast() string {
	now := timeNow()
	if !m.toast.visible(now) {
		return ""
	}
	remaining := int((m.toast.duration() - now.Sub(m.toast.start)).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	title := "✔ OK"
	style := styleSuccessToast()
	if m.toast.isError {
		title = "⚠ Fehler"
		style = styleErrorToast()
	}
	msgLine := truncate(m.toast.text, 60)
	countdown := fmt.Sprintf("[%ds]", remaining)

	width := lipgloss.Width(msgLine)
	if width < 30 {
		width = 30
	}
	padding := width - lipgloss.Width(title) - len(countdown)
	if padding < 1 {
		padding = 1
	}
	content := title + strings.Repeat(" ", padding) + styleDim().Render(countdown) + "\n" + msgLine
	return style.Render(content)
}
