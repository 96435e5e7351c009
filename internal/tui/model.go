// Package tui renders the portfolio in the terminal with bubbletea. The hero
// lines type themselves out through reveal engines and the experience
// cards page with the arrow keys.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/garrett-1/portfolio/internal/carousel"
	"github.com/garrett-1/portfolio/internal/portfolio"
	"github.com/garrett-1/portfolio/internal/reveal"
)

// revealMsg carries one engine event into the update loop.
type revealMsg struct {
	line int
	ev   reveal.Event
}

// RevealMsg wraps an engine event for Program.Send.
func RevealMsg(line int, ev reveal.Event) tea.Msg {
	return revealMsg{line: line, ev: ev}
}

var (
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64ffda"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64ffda")).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8892b0"))
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64ffda"))
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#112240")).
			Padding(0, 1).
			Width(36)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64ffda"))
)

// Model is the bubbletea model. The carousel is shared by pointer, so copies
// of a Model page the same window.
type Model struct {
	content    *portfolio.Content
	experience *carousel.Carousel[portfolio.Experience]
	lines      []string
	done       []bool
	section    portfolio.Section
	width      int
}

// New builds the model with an experience window of the given size.
func New(content *portfolio.Content, window int) (Model, error) {
	exp, err := carousel.New(content.Experiences, window)
	if err != nil {
		return Model{}, err
	}
	n := len(content.Profile.Headline)
	return Model{
		content:    content,
		experience: exp,
		lines:      make([]string, n),
		done:       make([]bool, n),
		section:    portfolio.SectionHome,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case revealMsg:
		if msg.line >= 0 && msg.line < len(m.lines) {
			m.lines[msg.line] = msg.ev.Text
			m.done[msg.line] = msg.ev.Done
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.experience.Retreat()
		case "right", "l":
			m.experience.Advance()
		case "tab":
			m.section = m.section.Next()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.navView())
	b.WriteString("\n\n")

	for i, line := range m.content.Profile.Headline {
		text := m.lines[i]
		if !m.done[i] {
			text += "▌"
		}
		if i == 0 {
			b.WriteString(line.Prefix + nameStyle.Render(text))
		} else {
			b.WriteString(line.Prefix + mutedStyle.Render(text))
		}
		b.WriteString("\n")
	}

	if m.allRevealed() {
		links := make([]string, 0, len(m.content.Profile.Links))
		for _, l := range m.content.Profile.Links {
			links = append(links, l.Label+": "+l.URL)
		}
		b.WriteString(mutedStyle.Render(strings.Join(links, "  ")))
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Experience"))
	b.WriteString("\n")
	b.WriteString(m.experienceView())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("←/→ page experience · tab section · q quit"))
	b.WriteString("\n")
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// Section is the highlighted navigation entry.
func (m Model) Section() portfolio.Section {
	return m.section
}

// Lines returns the currently revealed headline text.
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

func (m Model) allRevealed() bool {
	for _, d := range m.done {
		if !d {
			return false
		}
	}
	return true
}

func (m Model) navView() string {
	items := make([]string, 0, len(portfolio.Sections)+1)
	items = append(items, brandStyle.Render(m.content.Profile.Name))
	for _, sec := range portfolio.Sections {
		if sec == m.section {
			items = append(items, activeStyle.Render(sec.Label()))
		} else {
			items = append(items, mutedStyle.Render(sec.Label()))
		}
	}
	return strings.Join(items, "  ")
}

func (m Model) experienceView() string {
	view := m.experience.View()

	cards := make([]string, 0, len(view.Items))
	for _, exp := range view.Items {
		var c strings.Builder
		c.WriteString(cardTitleStyle.Render(exp.Title))
		c.WriteString("\n" + exp.Place())
		if exp.Date != "" {
			c.WriteString("\n" + mutedStyle.Render(exp.Date))
		}
		for _, bullet := range exp.Bullets {
			c.WriteString("\n• " + bullet)
		}
		cards = append(cards, cardStyle.Render(c.String()))
	}

	prev, next := "‹", "›"
	if !view.CanRetreat {
		prev = mutedStyle.Render(" ")
	}
	if !view.CanAdvance {
		next = mutedStyle.Render(" ")
	}
	row := append([]string{prev}, cards...)
	row = append(row, next)
	return lipgloss.JoinHorizontal(lipgloss.Center, row...)
}
