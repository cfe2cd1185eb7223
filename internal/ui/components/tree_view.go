package components

// TreeView renders the forest of view trees in a narrow column. Every node
// is labelled by the query that produced it; the displayed parent and child
// panes are colored.
//
// Usage:
//
//	treeView := components.NewTreeView(theme)
//	treeView.Width = 24
//	treeView.Height = 20
//	treeView.SetRows(forest.Rows(active))
//
//	// In your View method:
//	content := treeView.View()
//
// When Zones is set every row is marked, and RowAt resolves clicks once the
// outermost view has been passed through Zones.Scan.

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// TreeRowRef locates a flattened row in the forest
type TreeRowRef struct {
	Tree int
	Row  models.TreeRow
}

// TreeView represents the view tree column
type TreeView struct {
	rows         []TreeRowRef
	CursorIndex  int         // Row of the displayed child pane
	Width        int         // Display width
	Height       int         // Display height
	Theme        theme.Theme // Color theme
	ScrollOffset int         // Vertical scroll offset for viewport

	Zones      *zone.Manager // Optional mouse zones for rows
	ZonePrefix string
}

// NewTreeView creates a new tree view component
func NewTreeView(th theme.Theme) *TreeView {
	return &TreeView{
		Width:  24,
		Height: 20,
		Theme:  th,
	}
}

// SetRows replaces the rows, one slice per tree
func (tv *TreeView) SetRows(forest [][]models.TreeRow) {
	tv.rows = tv.rows[:0]
	tv.CursorIndex = 0
	for i, rows := range forest {
		for _, r := range rows {
			if r.Role == models.RoleChild {
				tv.CursorIndex = len(tv.rows)
			}
			tv.rows = append(tv.rows, TreeRowRef{Tree: i, Row: r})
		}
	}
}

// Len returns the number of rows
func (tv *TreeView) Len() int {
	return len(tv.rows)
}

// View renders the visible rows
func (tv *TreeView) View() string {
	if len(tv.rows) == 0 {
		return tv.emptyState()
	}

	viewHeight := max(tv.Height, 1)
	tv.adjustScrollOffset(len(tv.rows), viewHeight)

	startIdx := tv.ScrollOffset
	endIdx := min(tv.ScrollOffset+viewHeight, len(tv.rows))

	var lines []string
	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, tv.renderRow(tv.rows[i], i > 0 && tv.rows[i-1].Tree != tv.rows[i].Tree, tv.Width))
	}
	blank := strings.Repeat(" ", max(tv.Width, 0))
	for len(lines) < viewHeight {
		lines = append(lines, blank)
	}

	if tv.ScrollOffset > 0 || endIdx < len(tv.rows) {
		tv.addScrollIndicators(lines, startIdx, endIdx, len(tv.rows))
	}
	if tv.Zones != nil {
		for i := startIdx; i < endIdx; i++ {
			lines[i-startIdx] = tv.Zones.Mark(tv.rowZone(i), lines[i-startIdx])
		}
	}
	return strings.Join(lines, "\n")
}

func (tv *TreeView) rowZone(i int) string {
	return tv.ZonePrefix + strconv.Itoa(i)
}

// RowAt returns the visible row under the mouse
func (tv *TreeView) RowAt(msg tea.MouseMsg) (TreeRowRef, bool) {
	if tv.Zones == nil {
		return TreeRowRef{}, false
	}
	end := min(tv.ScrollOffset+max(tv.Height, 1), len(tv.rows))
	for i := tv.ScrollOffset; i < end; i++ {
		if tv.Zones.Get(tv.rowZone(i)).InBounds(msg) {
			return tv.rows[i], true
		}
	}
	return TreeRowRef{}, false
}

// renderRow renders a single row. sep marks the first row of a later tree.
func (tv *TreeView) renderRow(ref TreeRowRef, sep bool, width int) string {
	prefix := ref.Row.Prefix
	if sep && prefix == "" {
		prefix = "·"
	}
	width = max(width, 0)
	label := ref.Row.Name
	avail := width - runewidth.StringWidth(prefix)
	if avail <= 0 {
		return runewidth.FillRight(runewidth.Truncate(prefix, width, ""), width)
	}
	label = runewidth.FillRight(runewidth.Truncate(label, avail, "…"), avail)

	branch := lipgloss.NewStyle().Foreground(tv.Theme.TreeBranch)
	style := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)
	switch ref.Row.Role {
	case models.RoleParent:
		style = style.Foreground(tv.Theme.TreeParent).Bold(true)
	case models.RoleChild:
		style = style.Foreground(tv.Theme.TreeChild).Bold(true)
	}
	return branch.Render(prefix) + style.Render(label)
}

// adjustScrollOffset adjusts the scroll offset to keep the cursor visible
func (tv *TreeView) adjustScrollOffset(totalRows, viewHeight int) {
	if tv.CursorIndex < tv.ScrollOffset {
		tv.ScrollOffset = tv.CursorIndex
	}
	if tv.CursorIndex >= tv.ScrollOffset+viewHeight {
		tv.ScrollOffset = tv.CursorIndex - viewHeight + 1
	}

	maxScroll := max(totalRows-viewHeight, 0)
	tv.ScrollOffset = min(max(tv.ScrollOffset, 0), maxScroll)
}

// addScrollIndicators marks the first and last line when rows are hidden
func (tv *TreeView) addScrollIndicators(lines []string, startIdx, endIdx, total int) {
	indicator := lipgloss.NewStyle().Foreground(tv.Theme.Info)
	if startIdx > 0 {
		lines[0] = tv.indicatorLine(indicator.Render("↑"), tv.rows[startIdx])
	}
	if endIdx < total {
		lines[len(lines)-1] = tv.indicatorLine(indicator.Render("↓"), tv.rows[endIdx-1])
	}
}

func (tv *TreeView) indicatorLine(mark string, ref TreeRowRef) string {
	return mark + tv.renderRow(ref, false, tv.Width-1)
}

// emptyState returns the empty state view
func (tv *TreeView) emptyState() string {
	style := lipgloss.NewStyle().
		Foreground(tv.Theme.JSONSummary).
		Italic(true).
		Width(max(tv.Width, 1)).
		Align(lipgloss.Center)

	return style.Render("No documents")
}

// PaneIndexFor returns the pane pair a click on row selects: the row's
// node as child of its parent, or the first child when the row is a root.
func PaneIndexFor(row models.TreeRow) models.PaneIndex {
	n := len(row.Path)
	if n == 0 {
		return models.PaneIndex{}
	}
	return models.PaneIndex{
		Parent: append([]int(nil), row.Path[:n-1]...),
		Child:  row.Path[n-1],
	}
}
