package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/cursor"
	"github.com/rebeliceyang/lazyjson/internal/favorites"
	"github.com/rebeliceyang/lazyjson/internal/filter"
	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/search"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
	"github.com/rebeliceyang/lazyjson/internal/ui/help"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// ErrNoInput is returned when the application is started without documents
var ErrNoInput = errors.New("no input documents")

// Input is one named document sequence, usually a file
type Input struct {
	Name string
	Docs []jsonv.Value
}

// Options carries the optional collaborators of the application
type Options struct {
	// History records every query run; nil disables it
	History *history.Store
	// Favorites stores saved queries; nil disables ctrl+b and ctrl+f
	Favorites *favorites.Manager
	// Load reads the file named in the open prompt
	Load func(path string) ([]jsonv.Value, error)
	// Clipboard receives copied paths and values
	Clipboard func(text string) error
}

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme
	engine filter.Engine
	ratio  int

	ctx    context.Context
	cancel context.CancelFunc

	forest *models.Forest
	active models.ForestIndex

	leftPanel  components.Panel
	rightPanel components.Panel
	treeView   *components.TreeView
	jsonPane   *components.JSONPane
	prompt     *components.Prompt
	preview    *components.PreviewPane
	favDialog  *components.FavoritesDialog
	flash      *components.Flash

	history   *history.Store
	favorites *favorites.Manager
	load      func(path string) ([]jsonv.Value, error)
	copy      func(text string) error

	// Mouse targets are marked while rendering and resolved on click
	zones     *zone.Manager
	zoneLeft  string
	zoneRight string

	lastSearch *search.Pattern
	searches   []string // Newest first
	status     string

	// Query results are applied in submission order
	querySeq  uint64
	queryNext uint64
	pending   map[uint64]QueryResultMsg
}

// QueryResultMsg is sent when a query started from the prompt finishes
type QueryResultMsg struct {
	// Seq orders results by submission
	Seq  uint64
	Tree int
	// Parent is the path of the node the query ran on
	Parent   []int
	Source   string
	Query    string
	View     models.View
	Duration time.Duration
}

// New creates a new App showing one view tree per input
func New(cfg *config.Config, inputs []Input, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	engine, err := filter.New(cfg.Query.Engine)
	if err != nil {
		return nil, err
	}

	state := models.NewAppState()
	state.ShowTree = cfg.UI.ShowTree
	state.TreeWidth = cfg.UI.TreeWidth
	state.MouseEnabled = cfg.UI.MouseEnabled
	state.EngineName = engine.Name()
	state.SmartCase = cfg.Search.SmartCase
	state.HistoryEnabled = cfg.Query.HistoryEnabled && opts.History != nil

	th := theme.GetTheme(cfg.UI.Theme)
	ctx, cancel := context.WithCancel(context.Background())
	zones := zone.New()
	prefix := zones.NewPrefix()

	a := &App{
		state:     state,
		config:    cfg,
		theme:     th,
		engine:    engine,
		ratio:     cfg.UI.PanelWidthRatio,
		ctx:       ctx,
		cancel:    cancel,
		forest:    &models.Forest{},
		leftPanel: components.Panel{Theme: th},
		rightPanel: components.Panel{
			Theme: th,
		},
		treeView:  components.NewTreeView(th),
		jsonPane:  components.NewJSONPane(th),
		prompt:    components.NewPrompt(th),
		preview:   components.NewPreviewPane(th),
		favDialog: components.NewFavoritesDialog(th),
		history:   opts.History,
		favorites: opts.Favorites,
		load:      opts.Load,
		copy:      opts.Clipboard,
		zones:     zones,
		zoneLeft:  prefix + "left",
		zoneRight: prefix + "right",
	}
	a.treeView.Zones = zones
	a.treeView.ZonePrefix = prefix + "tree-"
	if a.ratio <= 0 || a.ratio >= 100 {
		a.ratio = 50
	}
	if a.load == nil {
		a.load = a.loadFile
	}
	if a.copy == nil {
		a.copy = clipboard.WriteAll
	}

	a.updatePanelDimensions()
	for i, in := range inputs {
		ix := a.addTree(in.Name, in.Docs)
		if i == 0 {
			a.active = ix
		}
	}
	a.syncPaneSizes()
	return a, nil
}

// initialQuery is the query of the first child pane of every tree
func (a *App) initialQuery() string {
	if a.config.Query.Initial != "" {
		return a.config.Query.Initial
	}
	return a.engine.Identity()
}

// addTree builds a view tree for docs and returns the index of its first
// pane pair
func (a *App) addTree(name string, docs []jsonv.Value) models.ForestIndex {
	rect := a.paneRect(a.leftPanel)
	root := models.NewView(docs, rect)
	query := a.initialQuery()

	var tree *models.ViewTree
	if query == a.engine.Identity() {
		tree = models.NewViewTree(name, root, query)
	} else {
		tree = &models.ViewTree{Frame: models.ViewFrame{View: root, Name: name}}
		tree.AppendChild(query, models.RunQuery(a.ctx, a.engine, docs, query, a.paneRect(a.rightPanel)))
	}
	return a.forest.Push(tree)
}

// loadFile is the default loader of the open prompt
func (a *App) loadFile(path string) ([]jsonv.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := jsonv.Decode(f, jsonv.DecodeOptions{AllowComments: a.config.Data.AllowComments})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return docs, nil
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case components.PromptSubmitMsg:
		a.state.ViewMode = models.NormalMode
		return a, a.handleSubmit(msg)

	case components.PromptCancelMsg:
		a.state.ViewMode = models.NormalMode
		return a, nil

	case components.FlashMsg:
		a.flash = &msg.Flash
		return a, nil

	case QueryResultMsg:
		a.queueQueryResult(msg)
		return a, nil

	case components.FavoriteSelectedMsg:
		a.state.ViewMode = models.NormalMode
		return a, a.runQuery(msg.Favorite.Query)

	case components.FavoriteDeleteMsg:
		if err := a.favorites.Delete(msg.ID); err != nil {
			a.ShowFlash("Favorite", err.Error(), components.FlashError)
		}
		a.refreshFavorites()
		return a, nil

	case components.FavoriteEditedMsg:
		if err := a.favorites.Update(msg.ID, msg.Name, msg.Description, msg.Query, msg.Tags); err != nil {
			a.ShowFlash("Favorite", err.Error(), components.FlashError)
		}
		a.refreshFavorites()
		return a, nil

	case components.CloseFavoritesDialogMsg:
		a.state.ViewMode = models.NormalMode
		return a, nil
	}

	if a.prompt.Visible {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	return a, nil
}

// pair resolves the displayed pane pair. An invalidated index is reported
// and reset to the first pair of the first tree.
func (a *App) pair() (models.PanePair, bool) {
	pair, err := a.forest.Index(a.active)
	if err == nil {
		return pair, true
	}
	a.ShowFlash("Invalid pane", err.Error(), components.FlashError)
	a.active = models.ForestIndex{}
	return models.PanePair{}, false
}

// frame returns the frame shown on side
func (a *App) frame(side models.PaneSide) (*models.ViewFrame, bool) {
	pair, ok := a.pair()
	if !ok {
		return nil, false
	}
	if side == models.LeftPane {
		return pair.Parent, true
	}
	return pair.Child, true
}

// paneView returns the JSON view shown on side, or nil when that pane has
// no documents
func (a *App) paneView(side models.PaneSide) *models.JsonView {
	f, ok := a.frame(side)
	if !ok || f.View.Kind != models.ViewJSON {
		return nil
	}
	return f.View.Pane
}

func (a *App) focusedView() *models.JsonView {
	return a.paneView(a.state.FocusedPane)
}

// selectPair makes ix the displayed pair
func (a *App) selectPair(ix models.ForestIndex) {
	if _, err := a.forest.Index(ix); err != nil {
		a.ShowFlash("Invalid pane", err.Error(), components.FlashError)
		return
	}
	a.active = ix
	a.syncPaneSizes()
}

// runQuery evaluates query in the background over the focused pane. From
// the left pane the result becomes a sibling of the right pane; from the
// right pane it becomes a child of it.
func (a *App) runQuery(query string) tea.Cmd {
	pair, ok := a.pair()
	if !ok {
		return nil
	}
	tree := a.active.Tree
	parent := slices.Clone(a.active.Pane.Parent)
	docs := pair.Parent.View.Docs()
	if a.state.FocusedPane == models.RightPane {
		parent = append(parent, a.active.Pane.Child)
		docs = pair.Child.View.Docs()
	}
	rect := a.paneRect(a.rightPanel)
	source := a.forest.Trees[tree].Frame.Name
	ctx, engine := a.ctx, a.engine

	seq := a.querySeq
	a.querySeq++

	a.status = "Running " + query
	return func() tea.Msg {
		start := time.Now()
		view := models.RunQuery(ctx, engine, docs, query, rect)
		return QueryResultMsg{
			Seq:      seq,
			Tree:     tree,
			Parent:   parent,
			Source:   source,
			Query:    query,
			View:     view,
			Duration: time.Since(start),
		}
	}
}

// queueQueryResult holds msg until every earlier query has been applied so
// that siblings keep the order their queries were submitted in
func (a *App) queueQueryResult(msg QueryResultMsg) {
	if msg.Seq < a.queryNext {
		return
	}
	if a.pending == nil {
		a.pending = make(map[uint64]QueryResultMsg)
	}
	a.pending[msg.Seq] = msg
	for {
		next, ok := a.pending[a.queryNext]
		if !ok {
			return
		}
		delete(a.pending, a.queryNext)
		a.queryNext++
		a.applyQueryResult(next)
	}
}

// applyQueryResult appends the result under the node it ran on and
// displays it
func (a *App) applyQueryResult(msg QueryResultMsg) {
	var node *models.ViewTree
	ok := msg.Tree >= 0 && msg.Tree < len(a.forest.Trees)
	if ok {
		node, ok = a.forest.Trees[msg.Tree].Subtree(msg.Parent)
	}
	if !ok {
		err := fmt.Errorf("%w: tree %d, node %v", models.ErrIndexInvalidated, msg.Tree, msg.Parent)
		a.ShowFlash("Invalid pane", err.Error(), components.FlashError)
		return
	}
	child := node.AppendChild(msg.Query, msg.View)
	a.active = models.ForestIndex{
		Tree: msg.Tree,
		Pane: models.PaneIndex{Parent: msg.Parent, Child: child},
	}
	a.syncPaneSizes()

	switch msg.View.Kind {
	case models.ViewError:
		a.status = "Query failed: " + msg.Query
	default:
		a.status = fmt.Sprintf("%d results in %s", len(msg.View.Docs()), msg.Duration.Round(time.Millisecond))
	}
	a.recordQuery(msg)
}

// recordQuery writes the run to the history and bumps a matching favorite
func (a *App) recordQuery(msg QueryResultMsg) {
	if a.state.HistoryEnabled {
		entry := history.HistoryEntry{
			Source:      msg.Source,
			Engine:      a.engine.Name(),
			Query:       msg.Query,
			ExecutedAt:  time.Now(),
			Duration:    msg.Duration,
			ResultCount: len(msg.View.Docs()),
			Success:     msg.View.Kind != models.ViewError,
		}
		if !entry.Success {
			entry.ErrorMessage = joinLines(msg.View.Diagnostics)
		}
		if err := a.history.Add(entry); err != nil {
			log.Printf("Warning: failed to record query history: %v", err)
		}
	}
	if a.favorites != nil {
		if fav, ok := a.favorites.Find(a.engine.Name(), msg.Query); ok {
			if err := a.favorites.RecordUsage(fav.ID); err != nil {
				log.Printf("Warning: failed to record favorite usage: %v", err)
			}
		}
	}
}

// ShowFlash displays a popup until it is dismissed
func (a *App) ShowFlash(title, message string, level components.FlashLevel) {
	a.flash = components.NewFlash(title, message, level)
}

// DismissFlash hides the popup
func (a *App) DismissFlash() {
	a.flash = nil
}

// Close stops background work owned by the app
func (a *App) Close() {
	a.cancel()
	a.zones.Close()
}

// View implements tea.Model
func (a *App) View() string {
	return a.zones.Scan(a.render())
}

// render draws the current screen with mouse zones still marked
func (a *App) render() string {
	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.theme)
	}
	if a.flash != nil {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.flash.View(a.state.Width-4, a.state.Height-2, a.theme),
		)
	}
	if a.state.ViewMode == models.PreviewMode {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.preview.View(),
		)
	}
	if a.state.ViewMode == models.FavoritesMode {
		return lipgloss.Place(
			a.state.Width, a.state.Height,
			lipgloss.Center, lipgloss.Center,
			a.favDialog.View(),
		)
	}
	return a.renderNormalView()
}

// renderNormalView renders the tree column, the pane pair and the status line
func (a *App) renderNormalView() string {
	pair, err := a.forest.Index(a.active)
	if err != nil {
		return err.Error()
	}

	w, h := a.leftPanel.InnerSize()
	a.jsonPane.Width, a.jsonPane.Height = w, h
	a.leftPanel.Title = pair.Parent.Name
	a.leftPanel.Focused = a.state.FocusedPane == models.LeftPane
	a.leftPanel.Content = a.jsonPane.View(pair.Parent.View, a.leftPanel.Focused)

	w, h = a.rightPanel.InnerSize()
	a.jsonPane.Width, a.jsonPane.Height = w, h
	a.rightPanel.Title = pair.Query
	a.rightPanel.Focused = a.state.FocusedPane == models.RightPane
	a.rightPanel.Content = a.jsonPane.View(pair.Child.View, a.rightPanel.Focused)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.zones.Mark(a.zoneLeft, a.leftPanel.View()),
		a.zones.Mark(a.zoneRight, a.rightPanel.View()),
	)
	if a.treeView.Width > 0 {
		a.treeView.SetRows(a.forest.Rows(a.active))
		panes = lipgloss.JoinHorizontal(lipgloss.Top, a.treeView.View(), panes)
	}

	var bottom string
	if a.prompt.Visible {
		a.prompt.Width = a.state.Width
		bottom = a.prompt.View()
	} else {
		bottom = a.renderStatusBar()
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes, bottom)
}

// renderStatusBar shows the last status message or the focused path
func (a *App) renderStatusBar() string {
	left := a.status
	if left == "" {
		if v := a.focusedView(); v != nil {
			left = v.Cursor.Value.JSONPath()
		}
	}
	right := fmt.Sprintf("%s │ %s │ %d/%d", a.state.FocusedPane, a.state.EngineName, a.active.Tree+1, len(a.forest.Trees))

	return lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.StatusBar).
		Foreground(a.theme.Foreground).
		Render(formatStatusBar(a.state.Width, left, right))
}

// paneRect is the content rectangle inside a panel border
func (a *App) paneRect(p components.Panel) cursor.Rect {
	w, h := p.InnerSize()
	return cursor.Rect{Width: w, Height: h}
}

// syncPaneSizes fits the displayed views to their panels. Views are shared
// between pairs, so they are resized whenever they are shown.
func (a *App) syncPaneSizes() {
	pair, err := a.forest.Index(a.active)
	if err != nil {
		return
	}
	pair.Parent.View.ResizeTo(a.paneRect(a.leftPanel))
	pair.Child.View.ResizeTo(a.paneRect(a.rightPanel))
}

// sourceName is the display name of an opened file
func sourceName(path string) string {
	return filepath.Base(path)
}
