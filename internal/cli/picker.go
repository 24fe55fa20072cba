package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/aurum/pkg/aur"
)

// =============================================================================
// PackageListModel - Interactive search-result selection
// =============================================================================

// PackageListModel is the bubbletea model for picking one package out of a
// search result list.
type PackageListModel struct {
	Packages []aur.Package
	Cursor   int
	Selected *aur.Package
	Height   int
	Offset   int
}

// NewPackageListModel creates a new package list model.
func NewPackageListModel(pkgs []aur.Package) PackageListModel {
	return PackageListModel{
		Packages: pkgs,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m PackageListModel) Init() tea.Cmd {
	return nil
}

func (m PackageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Packages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Packages[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PackageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Packages) {
		end = len(m.Packages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Packages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			p.Name,
			p.Version,
			fmt.Sprintf("%d", p.Votes),
			fmt.Sprintf("%.2f", p.Popularity),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Version", "Votes", "Popularity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Cursor < len(m.Packages) && m.Packages[m.Cursor].Description != "" {
		b.WriteString(StyleDim.Render(m.Packages[m.Cursor].Description))
		b.WriteString("\n")
	}

	if len(m.Packages) > m.Height {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d of %d", m.Cursor+1, len(m.Packages))))
		b.WriteString("\n")
	}

	return b.String()
}

// choosePackage lets the user pick one of several candidate records. On a
// terminal it runs the interactive picker; otherwise it falls back to a
// numbered prompt. A nil return means the user skipped.
func choosePackage(pkgs []aur.Package) (*aur.Package, error) {
	if len(pkgs) == 1 {
		return &pkgs[0], nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return chooseNumbered(pkgs), nil
	}

	model := NewPackageListModel(pkgs)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	return final.(PackageListModel).Selected, nil
}
