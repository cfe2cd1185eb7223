package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
)

// updatePanelDimensions calculates the tree column and panel sizes
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// One line is reserved for the status bar or prompt
	contentHeight := max(a.state.Height-1, 3)

	treeWidth := 0
	if a.state.ShowTree {
		treeWidth = min(a.state.TreeWidth, a.state.Width/3)
	}
	area := max(a.state.Width-treeWidth, 8)

	leftWidth := area * a.ratio / 100
	leftWidth = max(leftWidth, 4)
	rightWidth := max(area-leftWidth, 4)

	a.treeView.Width = treeWidth
	a.treeView.Height = contentHeight
	a.leftPanel.Width = leftWidth
	a.leftPanel.Height = contentHeight
	a.rightPanel.Width = rightWidth
	a.rightPanel.Height = contentHeight
	a.syncPaneSizes()
}

// paneAt returns the pane under the mouse
func (a *App) paneAt(msg tea.MouseMsg) (models.PaneSide, bool) {
	switch {
	case a.zones.Get(a.zoneLeft).InBounds(msg):
		return models.LeftPane, true
	case a.zones.Get(a.zoneRight).InBounds(msg):
		return models.RightPane, true
	}
	return models.LeftPane, false
}

// handleMouse focuses panes on click, selects pane pairs from the tree
// column and scrolls the pane under the pointer
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.state.MouseEnabled || a.flash != nil || a.state.ViewMode != models.NormalMode {
		return a, nil
	}

	side, onPane := a.paneAt(msg)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if v := a.paneView(side); onPane && v != nil {
			v.ScrollUp()
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if v := a.paneView(side); onPane && v != nil {
			v.ScrollDown()
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if onPane {
			a.state.FocusedPane = side
		} else if ref, ok := a.treeView.RowAt(msg); ok {
			a.selectPair(models.ForestIndex{Tree: ref.Tree, Pane: components.PaneIndexFor(ref.Row)})
		}
	}
	return a, nil
}

// formatStatusBar formats a status bar with left and right aligned content
func formatStatusBar(width int, left, right string) string {
	available := max(width, 0)
	rightLen := runewidth.StringWidth(right)
	if rightLen >= available {
		return runewidth.Truncate(right, available, "")
	}

	left = runewidth.Truncate(left, available-rightLen-1, "…")
	spacing := available - runewidth.StringWidth(left) - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
