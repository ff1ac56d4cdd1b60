package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel reads a single line.
type InputModel struct {
	title   string
	input   textinput.Model
	done    bool
	aborted bool
}

func NewInput(title, placeholder string) InputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Focus()
	return InputModel{title: title, input: ti}
}

func (m InputModel) Init() tea.Cmd { return textinput.Blink }

func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m InputModel) View() string {
	return titleStyle.Render(m.title) + "\n" + boxStyle.Render(m.input.View())
}

// Value returns the entered text and whether input was confirmed.
func (m InputModel) Value() (string, bool) {
	return m.input.Value(), m.done && !m.aborted
}

// PasteModel reads free-form multi-line text, finished with Ctrl+D or Esc.
type PasteModel struct {
	title   string
	area    textarea.Model
	done    bool
	aborted bool
}

func NewPaste(title string) PasteModel {
	ta := textarea.New()
	ta.Placeholder = "Paste here..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.Focus()
	return PasteModel{title: title, area: ta}
}

func (m PasteModel) Init() tea.Cmd { return textarea.Blink }

func (m PasteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.area.SetWidth(max(20, msg.Width-4))
		m.area.SetHeight(max(3, msg.Height-4))
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyCtrlD, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m PasteModel) View() string {
	return titleStyle.Render(m.title) + "\n" + m.area.View() + "\n" + hintStyle.Render("ctrl+d or esc to finish • ctrl+c to cancel")
}

// Value returns the pasted text and whether it was confirmed.
func (m PasteModel) Value() (string, bool) {
	return m.area.Value(), m.done && !m.aborted
}

// ConfirmModel asks a yes/no question; enter accepts the default.
type ConfirmModel struct {
	question string
	answer   bool
	done     bool
	aborted  bool
}

func NewConfirm(question string, def bool) ConfirmModel {
	return ConfirmModel{question: question, answer: def}
}

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	hint := "y/N"
	if m.answer {
		hint = "Y/n"
	}
	return titleStyle.Render(m.question) + " " + hintStyle.Render("("+hint+")")
}

// Answer returns the answer and whether one was given.
func (m ConfirmModel) Answer() (bool, bool) {
	return m.answer, m.done && !m.aborted
}
