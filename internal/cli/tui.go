package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// EntityBrowser - Interactive entity browser
// =============================================================================

// EntityBrowser is a read-only bubbletea model listing the entities of a
// blueprint next to the details of the selected one. Enter jumps to the
// first other entity the selected one is wired to.
type EntityBrowser struct {
	Entities []blueprint.Entity
	Cursor   int
	Height   int
	Offset   int
}

func newEntityBrowser(bp *blueprint.Blueprint) EntityBrowser {
	return EntityBrowser{Entities: bp.Entities(), Height: 15}
}

func (m EntityBrowser) Init() tea.Cmd {
	return nil
}

func (m EntityBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.Cursor - 1)
		case "down", "j":
			m = m.moveTo(m.Cursor + 1)
		case "pgup":
			m = m.moveTo(m.Cursor - m.Height)
		case "pgdown":
			m = m.moveTo(m.Cursor + m.Height)
		case "home", "g":
			m = m.moveTo(0)
		case "end", "G":
			m = m.moveTo(len(m.Entities) - 1)
		case "enter":
			m = m.follow()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m = m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo selects entity i, clamped to the list, and scrolls it into view.
func (m EntityBrowser) moveTo(i int) EntityBrowser {
	if len(m.Entities) == 0 {
		return m
	}
	m.Cursor = min(max(i, 0), len(m.Entities)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

// follow selects the first other entity the current one is wired to.
func (m EntityBrowser) follow() EntityBrowser {
	if len(m.Entities) == 0 {
		return m
	}
	for _, c := range m.Entities[m.Cursor].Connections() {
		if c.To.ID != m.Cursor {
			return m.moveTo(c.To.ID)
		}
	}
	return m
}

func (m EntityBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Entities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow wire  q quit"))
	b.WriteString("\n\n")

	var list strings.Builder
	end := min(m.Offset+m.Height, len(m.Entities))
	for i := m.Offset; i < end; i++ {
		e := m.Entities[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%4d  %s", cursor, e.ID(), e.Name())
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	detail := ""
	if len(m.Entities) > 0 {
		detail = detailStyle.Render(entityDetail(m.Entities[m.Cursor]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entities))))

	return b.String()
}

// entityDetail describes e on several lines.
func entityDetail(e blueprint.Entity) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%d: %s", e.ID(), e.Name())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("at " + fmtPosition(e)))
	b.WriteString("\n")

	for _, s := range render.Settings(e) {
		b.WriteString(StyleValue.Render(s))
		b.WriteString("\n")
	}
	for _, c := range e.Connections() {
		wire := wireStyle(c.Wire.String()).Render(c.Wire.String())
		fmt.Fprintf(&b, "%s %s %d:%s %s\n", c.FromSide, iconArrow, c.To.ID, c.To.Side, wire)
	}
	if p, ok := e.(*blueprint.ElectricPole); ok {
		for _, n := range p.Neighbours() {
			fmt.Fprintf(&b, "pole %s %d\n", iconArrow, n)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
