package tui

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"atsopt/internal/domain"
)

// Section is one titled block on the review screen.
type Section struct {
	Title string
	Body  string
}

// ReviewModel shows extraction results next to the job description with
// the extracted keywords highlighted. Tab cycles sections.
type ReviewModel struct {
	title    string
	sections []Section
	keywords domain.KeywordList
	viewport viewport.Model
	cursor   int
	ready    bool
}

func NewReview(title string, keywords domain.KeywordList, sections ...Section) ReviewModel {
	return ReviewModel{title: title, keywords: keywords, sections: sections, viewport: viewport.New(0, 0)}
}

func (m ReviewModel) Init() tea.Cmd { return nil }

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := boxStyle.GetFrameSize()
		reserved := 2 + bh // header + status
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			return m, tea.Quit
		case "tab", "right":
			if len(m.sections) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sections)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
			}
			return m, nil
		case "shift+tab", "left":
			if len(m.sections) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sections)) % len(m.sections)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ReviewModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render(m.title)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).
		Render(fmt.Sprintf("%d keywords • tab next section • ↑/↓ scroll • q done", len(m.keywords)))
	return header + "\n" + boxStyle.Render(m.viewport.View()) + "\n" + status
}

func (m ReviewModel) renderCurrent() string {
	if len(m.sections) == 0 {
		return "Nothing to show."
	}
	s := m.sections[m.cursor]
	title := fmt.Sprintf("%s (%d/%d)", s.Title, m.cursor+1, len(m.sections))
	return title + "\n\n" + HighlightKeywords(s.Body, m.keywords)
}

// HighlightKeywords marks every case-insensitive occurrence of a keyword in
// text. Longer keywords win over the shorter ones they contain.
func HighlightKeywords(text string, keywords domain.KeywordList) string {
	if strings.TrimSpace(text) == "" || len(keywords) == 0 {
		return text
	}
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			terms = append(terms, regexp.QuoteMeta(kw))
		}
	}
	if len(terms) == 0 {
		return text
	}
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	re, err := regexp.Compile(`(?i)` + strings.Join(terms, "|"))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(s string) string { return highlightStyle.Render(s) })
}
