package app

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/favorites"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/search"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
)

// handleKey routes a key to the popup, prompt or pane that owns it
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		a.cancel()
		return a, tea.Quit
	}

	// Flash popups swallow keys until dismissed
	if a.flash != nil {
		switch key {
		case "esc", "enter", "q", "?":
			a.DismissFlash()
		}
		return a, nil
	}

	if a.prompt.Visible {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		switch key {
		case "esc", "?", "q":
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	case models.PreviewMode:
		return a.handlePreviewKey(key)
	case models.FavoritesMode:
		var cmd tea.Cmd
		a.favDialog, cmd = a.favDialog.Update(msg)
		return a, cmd
	}
	return a.handleNormalKey(key)
}

// handleNormalKey handles keys on the pane pair
func (a *App) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	a.status = ""
	v := a.focusedView()

	switch key {
	case "Q":
		a.cancel()
		return a, tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
	case "tab":
		a.state.FocusedPane = a.state.FocusedPane.Swap()
	case "t":
		a.state.ShowTree = !a.state.ShowTree
		a.updatePanelDimensions()

	case "j", "down":
		if v != nil {
			v.AdvanceCursor()
		}
	case "k", "up":
		if v != nil {
			v.RegressCursor()
		}
	case "ctrl+d", "pgdown":
		if v != nil {
			v.PageDown()
		}
	case "ctrl+u", "pgup":
		if v != nil {
			v.PageUp()
		}
	case "ctrl+e":
		if v != nil {
			v.ScrollDown()
		}
	case "ctrl+y":
		if v != nil {
			v.ScrollUp()
		}
	case "z", " ":
		if v != nil {
			v.ToggleFold()
		}

	case "]":
		if a.forest.Advance(&a.active) {
			a.syncPaneSizes()
		}
	case "[":
		if a.forest.Regress(&a.active) {
			a.syncPaneSizes()
		}

	case "n", "N":
		a.searchNext(key == "N")

	case "q":
		query := ""
		if pair, ok := a.pair(); ok && a.state.FocusedPane == models.LeftPane {
			query = pair.Query
		}
		a.openPrompt(components.PromptQuery, query)
	case "/":
		a.openPrompt(components.PromptSearch, "")
	case "s":
		a.openPrompt(components.PromptSave, "")
	case "o":
		a.openPrompt(components.PromptOpen, "")

	case "y":
		if v != nil {
			a.copyText("path", v.Cursor.Value.JSONPath())
		}
	case "Y":
		if v != nil {
			a.copyText("value", v.Cursor.Value.Focus().String())
		}
	case "p":
		if v != nil {
			a.openPreview(v)
		}
	case "ctrl+b":
		a.saveFavorite()
	case "F":
		a.openFavorites()
	}
	return a, nil
}

// handlePreviewKey handles keys while the value preview is open
func (a *App) handlePreviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "p", "q":
		a.preview.Hide()
		a.state.ViewMode = models.NormalMode
	case "j", "down":
		a.preview.ScrollDown()
	case "k", "up":
		a.preview.ScrollUp()
	case "y":
		if err := a.copy(a.preview.Content); err != nil {
			a.ShowFlash("Copy failed", err.Error(), components.FlashError)
		}
	}
	return a, nil
}

// openPrompt shows the prompt for kind
func (a *App) openPrompt(kind components.PromptKind, value string) {
	a.prompt.Complete = nil
	var entries []string
	switch kind {
	case components.PromptQuery:
		a.state.ViewMode = models.QueryMode
		entries = a.queryHistory()
		if a.state.HistoryEnabled {
			a.prompt.Complete = a.completeQuery
		}
	case components.PromptSearch:
		a.state.ViewMode = models.SearchMode
		entries = a.searches
	case components.PromptSave:
		a.state.ViewMode = models.SaveMode
	case components.PromptOpen:
		a.state.ViewMode = models.OpenMode
	}
	a.prompt.Open(kind, value, entries)
	if kind == components.PromptQuery && a.favorites != nil {
		var queries []string
		for _, f := range a.favorites.ForEngine(a.engine.Name()) {
			queries = append(queries, f.Query)
		}
		a.prompt.SetFavorites(queries)
	}
}

// queryHistory lists past queries for the current engine, newest first
func (a *App) queryHistory() []string {
	if !a.state.HistoryEnabled {
		return nil
	}
	queries, err := a.history.Queries(a.engine.Name(), 100)
	if err != nil {
		log.Printf("Warning: failed to read query history: %v", err)
		return nil
	}
	return queries
}

func (a *App) completeQuery(text string) []string {
	matches, err := a.history.Fuzzy(a.engine.Name(), text, 20)
	if err != nil {
		log.Printf("Warning: failed to search query history: %v", err)
		return nil
	}
	return matches
}

// handleSubmit acts on a confirmed prompt
func (a *App) handleSubmit(msg components.PromptSubmitMsg) tea.Cmd {
	switch msg.Kind {
	case components.PromptQuery:
		return a.runQuery(msg.Value)
	case components.PromptSearch:
		a.startSearch(msg.Value)
	case components.PromptSave:
		a.saveFocused(msg.Value)
	case components.PromptOpen:
		a.openFile(msg.Value)
	}
	return nil
}

// startSearch compiles pattern and jumps to its first match
func (a *App) startSearch(pattern string) {
	p, err := search.Compile(pattern, search.Options{SmartCase: a.state.SmartCase})
	if err != nil {
		a.ShowFlash("Search", err.Error(), components.FlashError)
		return
	}
	a.lastSearch = p
	a.searches = append([]string{pattern}, a.searches...)
	a.searchNext(false)
}

// searchNext repeats the last search in the focused pane
func (a *App) searchNext(reverse bool) {
	if a.lastSearch == nil {
		a.status = "No previous search"
		return
	}
	v := a.focusedView()
	if v == nil || !v.Search(a.lastSearch, reverse) {
		a.status = "Pattern not found: " + a.lastSearch.String()
	}
}

// saveFocused writes the focused pane's documents to path
func (a *App) saveFocused(path string) {
	f, ok := a.frame(a.state.FocusedPane)
	if !ok {
		return
	}
	docs := f.View.Docs()
	if err := export.SaveDocuments(path, docs, a.config.Data.Indent); err != nil {
		a.ShowFlash("Save failed", err.Error(), components.FlashError)
		return
	}
	a.ShowFlash("Saved", fmt.Sprintf("Wrote %d documents to %s", len(docs), path), components.FlashSuccess)
}

// openFile loads path into a new view tree and displays it
func (a *App) openFile(path string) {
	docs, err := a.load(path)
	if err != nil {
		a.ShowFlash("Open failed", err.Error(), components.FlashError)
		return
	}
	a.selectPair(a.addTree(sourceName(path), docs))
	a.status = fmt.Sprintf("Opened %s (%d documents)", path, len(docs))
}

func (a *App) copyText(what, text string) {
	if err := a.copy(text); err != nil {
		a.ShowFlash("Copy failed", err.Error(), components.FlashError)
		return
	}
	a.status = "Copied " + what
}

// openPreview shows the selected value pretty-printed
func (a *App) openPreview(v *models.JsonView) {
	a.preview.Width = max(min(a.state.Width-4, 100), 20)
	a.preview.MaxHeight = max(a.state.Height-2, 6)
	if err := a.preview.SetValue(v.Cursor.Value.Focus(), v.Cursor.Value.JSONPath()); err != nil {
		a.ShowFlash("Preview", err.Error(), components.FlashError)
		return
	}
	a.state.ViewMode = models.PreviewMode
}

// saveFavorite stores the right pane's query as a favorite
func (a *App) saveFavorite() {
	if a.favorites == nil {
		a.status = "Favorites are not available"
		return
	}
	pair, ok := a.pair()
	if !ok {
		return
	}
	_, err := a.favorites.Add("", "", pair.Query, a.engine.Name(), nil)
	switch {
	case errors.Is(err, favorites.ErrDuplicate):
		a.status = "Already a favorite: " + pair.Query
		return
	case err != nil:
		a.ShowFlash("Favorite", err.Error(), components.FlashError)
		return
	}
	a.status = "Saved favorite: " + pair.Query
}

// openFavorites shows the saved queries for the current engine
func (a *App) openFavorites() {
	if a.favorites == nil {
		a.status = "Favorites are not available"
		return
	}
	a.favDialog.Width = max(min(a.state.Width-4, 90), 30)
	a.favDialog.Height = max(a.state.Height-4, 8)
	a.favDialog.SetFavorites(a.favorites.ForEngine(a.engine.Name()))
	a.state.ViewMode = models.FavoritesMode
}

// refreshFavorites reloads the dialog list after a change
func (a *App) refreshFavorites() {
	a.favDialog.SetFavorites(a.favorites.ForEngine(a.engine.Name()))
}
