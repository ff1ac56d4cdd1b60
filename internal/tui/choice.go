package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ChoiceModel is a single-selection menu.
type ChoiceModel struct {
	title   string
	options []string
	cursor  int
	chosen  int
	aborted bool
}

func NewChoice(title string, options []string) ChoiceModel {
	return ChoiceModel{title: title, options: options, chosen: -1}
}

func (m ChoiceModel) Init() tea.Cmd { return nil }

func (m ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	}
	if len(m.options) == 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.options) {
			m.cursor = n - 1
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ChoiceModel) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title) + "\n")
	for i, opt := range m.options {
		line := strconv.Itoa(i+1) + ". " + opt
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("↑/↓ move • enter select • esc cancel"))
	return sb.String()
}

// Chosen returns the selected index, or false when the menu was cancelled.
func (m ChoiceModel) Chosen() (int, bool) {
	if m.aborted || m.chosen < 0 {
		return -1, false
	}
	return m.chosen, true
}
