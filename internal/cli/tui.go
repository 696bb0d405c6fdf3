package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/careatlas/pkg/dataset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listGapStyle      = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// CoverageModel - Interactive coverage browser
// =============================================================================

// CoverageModel is the bubbletea model for browsing per-node coverage. It
// shows one taxonomy level at a time in chart order, with a bar per node
// proportional to its mapped-measure count.
type CoverageModel struct {
	Stats    *dataset.Stats
	Level    int
	GapsOnly bool
	Cursor   int
	Height   int
	Offset   int
}

// NewCoverageModel creates a coverage browser starting at level 1.
func NewCoverageModel(stats *dataset.Stats) CoverageModel {
	return CoverageModel{
		Stats:  stats,
		Level:  1,
		Height: 15,
	}
}

func (m CoverageModel) Init() tea.Cmd {
	return nil
}

// nodes returns the visible node list for the active level.
func (m CoverageModel) nodes() []dataset.NodeCoverage {
	all := m.Stats.Coverage(m.Level)
	if !m.GapsOnly {
		return all
	}
	var gaps []dataset.NodeCoverage
	for _, n := range all {
		if n.Measures == 0 {
			gaps = append(gaps, n)
		}
	}
	return gaps
}

func (m CoverageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "1", "2", "3":
			m.Level = int(msg.String()[0] - '0')
			m.Cursor, m.Offset = 0, 0
		case "g":
			m.GapsOnly = !m.GapsOnly
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.nodes())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CoverageModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Coverage · level %d", m.Level)))
	if m.GapsOnly {
		b.WriteString(" " + StyleWarning.Render("(gaps only)"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("1/2/3 level  g gaps  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	nodes := m.nodes()
	if len(nodes) == 0 {
		b.WriteString(listDimStyle.Render("nothing to show"))
		b.WriteString("\n")
		return b.String()
	}

	maxCount := 0
	nameWidth := 0
	for _, n := range nodes {
		if n.Measures > maxCount {
			maxCount = n.Measures
		}
		if len(n.Name) > nameWidth {
			nameWidth = len(n.Name)
		}
	}
	if nameWidth > 40 {
		nameWidth = 40
	}

	end := m.Offset + m.Height
	if end > len(nodes) {
		end = len(nodes)
	}

	for i := m.Offset; i < end; i++ {
		n := nodes[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		name := n.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}

		line := fmt.Sprintf("%s%-*s %4d ", cursor, nameWidth, name, n.Measures)
		b.WriteString(style.Render(line))
		if n.Measures == 0 {
			b.WriteString(listGapStyle.Render("gap"))
		} else if maxCount > 0 {
			width := n.Measures * 20 / maxCount
			if width == 0 {
				width = 1
			}
			b.WriteString(StyleHighlight.Render(strings.Repeat("▇", width)))
		}
		b.WriteString("\n")
	}

	if len(nodes) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d-%d of %d", m.Offset+1, end, len(nodes))))
		b.WriteString("\n")
	}

	return b.String()
}
