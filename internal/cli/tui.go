package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/levelgen/pkg/blueprint"
	apperrors "github.com/matzehuels/levelgen/pkg/errors"
	"github.com/matzehuels/levelgen/pkg/layout"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// blueprintEntry is one row of the picker.
type blueprintEntry struct {
	Path      string
	Blueprint *blueprint.Blueprint
	Err       error
}

// Valid reports whether the blueprint loaded.
func (e blueprintEntry) Valid() bool { return e.Err == nil }

// listBlueprints loads every blueprint file under dir. Files that fail to
// load are kept with their error so the picker can show them.
func listBlueprints(dir string) ([]blueprintEntry, error) {
	var entries []blueprintEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !blueprint.IsBlueprintFile(path) {
			return nil
		}
		bp, err := blueprint.Load(path)
		entries = append(entries, blueprintEntry{Path: path, Blueprint: bp, Err: err})
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "list blueprints in %s", dir)
	}
	return entries, nil
}

// BlueprintListModel is the bubbletea model for picking a blueprint.
type BlueprintListModel struct {
	Entries  []blueprintEntry
	Cursor   int
	Selected *blueprintEntry
	Height   int
	Offset   int
}

func NewBlueprintListModel(entries []blueprintEntry) BlueprintListModel {
	return BlueprintListModel{Entries: entries, Height: 15}
}

func (m BlueprintListModel) Init() tea.Cmd {
	return nil
}

func (m BlueprintListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			e := m.Entries[m.Cursor]
			if !e.Valid() {
				return m, nil
			}
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m BlueprintListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Blueprint"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rows = append(rows, m.row(i))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Blueprint", "Size", "Root", "Nodes", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch {
			case !m.Entries[idx].Valid():
				base = base.Foreground(colorRed)
			case idx == m.Cursor:
				base = base.Foreground(colorGreen)
			case col >= 2:
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	if len(m.Entries) > 0 {
		if e := m.Entries[m.Cursor]; !e.Valid() {
			b.WriteString("\n")
			b.WriteString(StyleWarning.Render("  " + apperrors.UserMessage(e.Err)))
		}
	}
	return b.String()
}

func (m BlueprintListModel) row(i int) []string {
	e := m.Entries[i]
	cursor := "  "
	if i == m.Cursor {
		cursor = "▸ "
	}
	if !e.Valid() {
		return []string{cursor, e.Path, "—", "invalid", "—", string(apperrors.GetCode(e.Err))}
	}
	bp := e.Blueprint
	size := "—"
	if bp.Width > 0 && bp.Height > 0 {
		size = fmt.Sprintf("%dx%d", bp.Width, bp.Height)
	}
	desc := bp.Description
	if desc == "" {
		desc = bp.Name
	}
	return []string{cursor, e.Path, size, layout.Kind(bp.Root), fmt.Sprint(layout.Count(bp.Root)), desc}
}
