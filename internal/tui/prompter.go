package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"atsopt/internal/domain"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

// Prompter runs one Bubble Tea program per question.
type Prompter struct {
	opts []tea.ProgramOption
}

func NewPrompter(opts ...tea.ProgramOption) *Prompter {
	return &Prompter{opts: opts}
}

func (p *Prompter) run(m tea.Model, fullscreen bool) (tea.Model, error) {
	opts := p.opts
	if fullscreen {
		opts = append(append([]tea.ProgramOption(nil), opts...), tea.WithAltScreen())
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return final, nil
}

// Choose shows a menu and returns the selected index.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	final, err := p.run(NewChoice(title, options), false)
	if err != nil {
		return -1, err
	}
	idx, ok := final.(ChoiceModel).Chosen()
	if !ok {
		return -1, ErrAborted
	}
	return idx, nil
}

func (p *Prompter) Input(title, placeholder string) (string, error) {
	final, err := p.run(NewInput(title, placeholder), false)
	if err != nil {
		return "", err
	}
	v, ok := final.(InputModel).Value()
	if !ok {
		return "", ErrAborted
	}
	return v, nil
}

func (p *Prompter) Paste(title string) (string, error) {
	final, err := p.run(NewPaste(title), false)
	if err != nil {
		return "", err
	}
	v, ok := final.(PasteModel).Value()
	if !ok {
		return "", ErrAborted
	}
	return v, nil
}

func (p *Prompter) Confirm(question string) (bool, error) {
	final, err := p.run(NewConfirm(question, false), false)
	if err != nil {
		return false, err
	}
	v, ok := final.(ConfirmModel).Answer()
	if !ok {
		return false, ErrAborted
	}
	return v, nil
}

// Review opens the full-screen review of extracted keywords.
func (p *Prompter) Review(title string, keywords domain.KeywordList, sections ...Section) error {
	_, err := p.run(NewReview(title, keywords, sections...), true)
	return err
}
