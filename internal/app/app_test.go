package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/favorites"
	"github.com/rebeliceyang/lazyjson/internal/filter"
	"github.com/rebeliceyang/lazyjson/internal/history"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"a":1,"b":{"needle":true}}`

func decode(t *testing.T, src string) []jsonv.Value {
	t.Helper()
	docs, err := jsonv.DecodeBytes([]byte(src))
	require.NoError(t, err)
	return docs
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type fixture struct {
	app     *App
	copied  []string
	history *history.Store
}

func newFixture(t *testing.T, opts Options, inputs ...Input) *fixture {
	t.Helper()
	f := &fixture{}
	if opts.Clipboard == nil {
		opts.Clipboard = func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		}
	}
	if len(inputs) == 0 {
		inputs = []Input{{Name: "data.json", Docs: decode(t, sample)}}
	}
	a, err := New(config.GetDefaults(), inputs, opts)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	f.app = a
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return f
}

// send delivers msg and feeds back the application messages its commands
// produce, the way the program loop would
func (f *fixture) send(msg tea.Msg) {
	_, cmd := f.app.Update(msg)
	for cmd != nil {
		switch next := cmd().(type) {
		case components.PromptSubmitMsg, components.PromptCancelMsg, components.FlashMsg, QueryResultMsg,
			components.FavoriteSelectedMsg, components.FavoriteDeleteMsg, components.FavoriteEditedMsg,
			components.CloseFavoritesDialogMsg:
			_, cmd = f.app.Update(next)
		default:
			return
		}
	}
}

// render draws the screen and waits until the mouse zones named by ids
// have been recorded
func (f *fixture) render(t *testing.T, ids ...string) {
	t.Helper()
	f.app.View()
	require.Eventually(t, func() bool {
		for _, id := range ids {
			if f.app.zones.Get(id).IsZero() {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}

func (f *fixture) keys(keys ...string) {
	for _, k := range keys {
		f.send(keyMsg(k))
	}
}

func (f *fixture) pair(t *testing.T) models.PanePair {
	t.Helper()
	pair, err := f.app.forest.Index(f.app.active)
	require.NoError(t, err)
	return pair
}

func TestNewValidatesInput(t *testing.T) {
	_, err := New(config.GetDefaults(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoInput)

	cfg := config.GetDefaults()
	cfg.Query.Engine = "xpath"
	_, err = New(cfg, []Input{{Name: "x"}}, Options{})
	assert.ErrorIs(t, err, filter.ErrUnknownEngine)
}

func TestInitialPanePair(t *testing.T) {
	f := newFixture(t, Options{})
	pair := f.pair(t)
	assert.Equal(t, "data.json", pair.Parent.Name)
	assert.Equal(t, ".", pair.Query)
	assert.Equal(t, pair.Parent.View.Docs(), pair.Child.View.Docs())
	assert.NotSame(t, pair.Parent.View.Pane, pair.Child.View.Pane)

	view := f.app.View()
	assert.Contains(t, view, "data.json")
	assert.Contains(t, view, `"needle" : true`)
	assert.Contains(t, view, "left │ jq │ 1/1")
}

func TestInitialQueryFromConfig(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.Query.Initial = ".b"
	a, err := New(cfg, []Input{{Name: "data.json", Docs: decode(t, sample)}}, Options{})
	require.NoError(t, err)
	defer a.Close()

	pair, err := a.forest.Index(a.active)
	require.NoError(t, err)
	assert.Equal(t, ".b", pair.Query)
	require.Len(t, pair.Child.View.Docs(), 1)
	assert.Equal(t, `{"needle":true}`, pair.Child.View.Docs()[0].String())
}

func TestNavigationAndFocus(t *testing.T) {
	f := newFixture(t, Options{})

	f.keys("j")
	assert.Equal(t, ".a", f.app.paneView(models.LeftPane).Cursor.Value.JSONPath())
	assert.Equal(t, ".", f.app.paneView(models.RightPane).Cursor.Value.JSONPath())

	f.keys("tab", "j", "j")
	assert.Equal(t, models.RightPane, f.app.state.FocusedPane)
	assert.Equal(t, ".b", f.app.paneView(models.RightPane).Cursor.Value.JSONPath())

	f.keys("z")
	lines := f.app.paneView(models.RightPane).Render(true)
	assert.Equal(t, `  "b" : {...} (1 children)`, lines[2].String())

	f.keys("k")
	assert.Equal(t, ".a", f.app.paneView(models.RightPane).Cursor.Value.JSONPath())
}

func TestQueryAppendsChildAndRecordsHistory(t *testing.T) {
	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"), 100)
	require.NoError(t, err)
	defer store.Close()

	f := newFixture(t, Options{History: store})
	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".a"})

	pair := f.pair(t)
	assert.Equal(t, ".a", pair.Query)
	assert.Equal(t, 1, f.app.active.Pane.Child)
	require.Len(t, pair.Child.View.Docs(), 1)
	assert.Equal(t, "1", pair.Child.View.Docs()[0].String())

	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".["})
	pair = f.pair(t)
	assert.Equal(t, models.ViewError, pair.Child.View.Kind)
	assert.Equal(t, 2, f.app.active.Pane.Child)
	assert.Contains(t, f.app.View(), "Query failed")

	entries, err := store.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".[", entries[0].Query)
	assert.False(t, entries[0].Success)
	assert.Equal(t, ".a", entries[1].Query)
	assert.True(t, entries[1].Success)
	assert.Equal(t, 1, entries[1].ResultCount)
	assert.Equal(t, "data.json", entries[1].Source)

	// The query prompt offers past queries
	f.keys("q")
	require.True(t, f.app.prompt.Visible)
	assert.Equal(t, models.QueryMode, f.app.state.ViewMode)
	f.send(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, ".a", f.app.prompt.Value())
	f.keys("esc")
	assert.False(t, f.app.prompt.Visible)
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
}

func TestQueryOnNestedParent(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b"})

	// Querying from the right pane drills into it
	f.keys("tab")
	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".needle"})
	assert.Equal(t, []int{1}, f.app.active.Pane.Parent)
	pair := f.pair(t)
	assert.Equal(t, ".b", pair.Parent.Name)
	assert.Equal(t, ".needle", pair.Query)
	assert.Equal(t, "true", pair.Child.View.Docs()[0].String())

	f.keys("[")
	pair = f.pair(t)
	assert.Equal(t, "data.json", pair.Parent.Name)
	assert.Equal(t, ".b", pair.Query)

	f.keys("]")
	assert.Equal(t, ".needle", f.pair(t).Query)
	f.keys("]")
	assert.Equal(t, ".needle", f.pair(t).Query, "no pair after the last one")
}

func TestQueryResultForMissingNode(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(QueryResultMsg{Tree: 0, Parent: []int{7}, Query: ".x", View: models.AbsentView()})
	require.NotNil(t, f.app.flash)
	assert.Contains(t, f.app.flash.Message, models.ErrIndexInvalidated.Error())
	assert.Len(t, f.app.forest.Trees[0].Children, 1)
}

func TestQueryResultsApplyInSubmissionOrder(t *testing.T) {
	f := newFixture(t, Options{})
	_, first := f.app.Update(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".a"})
	_, second := f.app.Update(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b"})
	require.NotNil(t, first)
	require.NotNil(t, second)

	// The later query finishes first
	f.send(second())
	assert.Len(t, f.app.forest.Trees[0].Children, 1, "held until .a arrives")
	f.send(first())

	var queries []string
	for _, c := range f.app.forest.Trees[0].Children {
		queries = append(queries, c.Query)
	}
	assert.Equal(t, []string{".", ".a", ".b"}, queries)
	assert.Equal(t, ".b", f.pair(t).Query)

	// A stale duplicate is dropped
	f.send(QueryResultMsg{Seq: 0, Tree: 0, Query: ".a", View: models.AbsentView()})
	assert.Len(t, f.app.forest.Trees[0].Children, 3)
}

func TestSearch(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(components.PromptSubmitMsg{Kind: components.PromptSearch, Value: "NEEDLE"})
	assert.Contains(t, f.app.renderStatusBar(), "Pattern not found")

	f.send(components.PromptSubmitMsg{Kind: components.PromptSearch, Value: "needle"})
	assert.Equal(t, ".b.needle", f.app.focusedView().Cursor.Value.JSONPath())
	assert.Equal(t, []string{"needle", "NEEDLE"}, f.app.searches)

	f.keys("n")
	assert.Equal(t, ".b.needle", f.app.focusedView().Cursor.Value.JSONPath())
}

func TestSaveFocusedPane(t *testing.T) {
	f := newFixture(t, Options{})
	path := filepath.Join(t.TempDir(), "out.json")
	f.send(components.PromptSubmitMsg{Kind: components.PromptSave, Value: path})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": {\n    \"needle\": true\n  }\n}\n", string(data))

	require.NotNil(t, f.app.flash)
	assert.Contains(t, f.app.View(), "Wrote 1 documents")
	f.keys("j")
	assert.NotNil(t, f.app.flash, "keys are swallowed while the popup is open")
	f.keys("esc")
	assert.Nil(t, f.app.flash)

	f.send(components.PromptSubmitMsg{Kind: components.PromptSave, Value: filepath.Join(t.TempDir(), "missing", "out.json")})
	require.NotNil(t, f.app.flash)
	assert.Equal(t, components.FlashError, f.app.flash.Level)
}

func TestOpenFile(t *testing.T) {
	var opened []string
	f := newFixture(t, Options{Load: func(path string) ([]jsonv.Value, error) {
		opened = append(opened, path)
		if path == "bad.json" {
			return nil, errors.New("boom")
		}
		return decode(t, `[1,2]`), nil
	}})

	f.send(components.PromptSubmitMsg{Kind: components.PromptOpen, Value: "dir/more.json"})
	assert.Equal(t, []string{"dir/more.json"}, opened)
	require.Len(t, f.app.forest.Trees, 2)
	assert.Equal(t, 1, f.app.active.Tree)
	assert.Equal(t, "more.json", f.pair(t).Parent.Name)

	f.send(components.PromptSubmitMsg{Kind: components.PromptOpen, Value: "bad.json"})
	require.NotNil(t, f.app.flash)
	assert.Equal(t, "Open failed", f.app.flash.Title)
	assert.Len(t, f.app.forest.Trees, 2)
}

func TestLoadFileDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"x\":1}\n{\"x\":2}\n"), 0644))

	f := newFixture(t, Options{})
	f.send(components.PromptSubmitMsg{Kind: components.PromptOpen, Value: path})
	assert.Len(t, f.pair(t).Parent.View.Docs(), 2)
}

func TestCopyAndPreview(t *testing.T) {
	f := newFixture(t, Options{})
	f.keys("j", "j", "y", "Y")
	assert.Equal(t, []string{".b", `{"needle":true}`}, f.copied)

	f.keys("p")
	assert.Equal(t, models.PreviewMode, f.app.state.ViewMode)
	assert.Contains(t, f.app.View(), "Preview: .b")
	f.keys("esc")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
}

func TestFavorites(t *testing.T) {
	mgr, err := favorites.NewManager(t.TempDir())
	require.NoError(t, err)

	f := newFixture(t, Options{Favorites: mgr})
	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b"})
	f.keys("ctrl+b")
	all := mgr.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, ".b", all[0].Query)
	assert.Equal(t, "jq", all[0].Engine)

	f.keys("ctrl+b")
	assert.Len(t, mgr.GetAll(), 1)
	assert.Equal(t, "Already a favorite: .b", f.app.status)

	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b"})
	fav, ok := mgr.Find("jq", ".b")
	require.True(t, ok)
	assert.Equal(t, 1, fav.UsageCount)

	f.keys("q")
	f.send(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, ".b", f.app.prompt.Value())
	f.keys("esc")

	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b |"})
	f.keys("ctrl+b")
	require.NotNil(t, f.app.flash)
	assert.Equal(t, "Favorite", f.app.flash.Title)
	assert.Len(t, mgr.GetAll(), 1)
}

func TestFavoritesDialog(t *testing.T) {
	mgr, err := favorites.NewManager(t.TempDir())
	require.NoError(t, err)
	_, err = mgr.Add("b", "", ".b", "jq", nil)
	require.NoError(t, err)
	_, err = mgr.Add("other engine", "", "b", "jmespath", nil)
	require.NoError(t, err)

	f := newFixture(t, Options{Favorites: mgr})
	f.keys("F")
	require.Equal(t, models.FavoritesMode, f.app.state.ViewMode)
	assert.Len(t, f.app.favDialog.Visible(), 1)
	assert.Contains(t, f.app.View(), "Favorite Queries")

	before := len(f.app.forest.Trees[0].Children)
	f.keys("enter")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
	assert.Equal(t, ".b", f.pair(t).Query)
	assert.Len(t, f.app.forest.Trees[0].Children, before+1)

	f.keys("F")
	f.send(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Empty(t, f.app.favDialog.Visible())
	assert.Len(t, mgr.GetAll(), 1)

	f.keys("esc")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
}

func TestFavoritesDialogUnavailable(t *testing.T) {
	f := newFixture(t, Options{})
	f.keys("F")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)
	assert.Equal(t, "Favorites are not available", f.app.status)
}

func TestMouse(t *testing.T) {
	f := newFixture(t, Options{})
	f.render(t, f.app.zoneLeft, f.app.zoneRight)

	click := tea.MouseMsg{X: 80, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	f.send(click)
	assert.Equal(t, models.RightPane, f.app.state.FocusedPane)

	click.X = 10
	f.send(click)
	assert.Equal(t, models.LeftPane, f.app.state.FocusedPane)

	// Below the panes is the status bar
	click.X, click.Y = 80, 29
	f.send(click)
	assert.Equal(t, models.LeftPane, f.app.state.FocusedPane)

	click.Y = 5
	f.app.state.MouseEnabled = false
	click.X = 80
	f.send(click)
	assert.Equal(t, models.LeftPane, f.app.state.FocusedPane)
}

func TestTreeColumnClick(t *testing.T) {
	f := newFixture(t, Options{})
	f.send(components.PromptSubmitMsg{Kind: components.PromptQuery, Value: ".b"})
	f.keys("t")
	require.Positive(t, f.app.treeView.Width)
	prefix := f.app.treeView.ZonePrefix
	f.render(t, prefix+"0", prefix+"1", prefix+"2")

	// Rows: data.json, ├., └.b
	f.send(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, ".", f.pair(t).Query)
	f.send(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, ".b", f.pair(t).Query)
}

func TestHelpAndQuit(t *testing.T) {
	f := newFixture(t, Options{})
	f.keys("?")
	assert.Equal(t, models.HelpMode, f.app.state.ViewMode)
	assert.Contains(t, f.app.View(), "Navigation")
	f.keys("esc")
	assert.Equal(t, models.NormalMode, f.app.state.ViewMode)

	_, cmd := f.app.Update(keyMsg("Q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, f.app.ctx.Err())
}

func TestFormatStatusBar(t *testing.T) {
	assert.Equal(t, "left     right", formatStatusBar(14, "left", "right"))
	assert.Equal(t, "a-lo… right", formatStatusBar(11, "a-long-status", "right"))
	assert.Equal(t, "rig", formatStatusBar(3, "left", "right"))
	assert.True(t, strings.HasSuffix(formatStatusBar(40, "", "x"), "x"))
}
