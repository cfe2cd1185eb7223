package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
	"github.com/sahilm/fuzzy"
)

// FavoritesMode represents the dialog mode
type FavoritesMode int

const (
	FavoritesModeList FavoritesMode = iota
	FavoritesModeEdit
)

// FavoriteSelectedMsg is sent when a favorite should be run
type FavoriteSelectedMsg struct {
	Favorite models.Favorite
}

// FavoriteDeleteMsg is sent when a favorite should be removed
type FavoriteDeleteMsg struct {
	ID string
}

// FavoriteEditedMsg carries the edited fields of a favorite
type FavoriteEditedMsg struct {
	ID          string
	Name        string
	Description string
	Query       string
	Tags        []string
}

// CloseFavoritesDialogMsg is sent when dialog should close
type CloseFavoritesDialogMsg struct{}

const (
	fieldName = iota
	fieldDescription
	fieldTags
	fieldCount
)

// FavoritesDialog lists saved queries. Typing filters the list fuzzily by
// name and query.
type FavoritesDialog struct {
	Width  int
	Height int
	Theme  theme.Theme

	mode      FavoritesMode
	favorites []models.Favorite
	visible   []int // Indices into favorites matching the filter
	selected  int
	offset    int

	filter textinput.Model

	editing      string // ID of the favorite being edited
	fields       [fieldCount]textinput.Model
	currentField int
}

// NewFavoritesDialog creates a new favorites dialog
func NewFavoritesDialog(th theme.Theme) *FavoritesDialog {
	fd := &FavoritesDialog{
		Width:  80,
		Height: 20,
		Theme:  th,
	}
	fd.filter = textinput.New()
	fd.filter.Placeholder = "filter"
	fd.filter.Prompt = "> "
	for i := range fd.fields {
		fd.fields[i] = textinput.New()
		fd.fields[i].Prompt = ""
		fd.fields[i].CharLimit = 256
	}
	return fd
}

// SetFavorites replaces the listed favorites and resets the filter
func (fd *FavoritesDialog) SetFavorites(favorites []models.Favorite) {
	fd.favorites = favorites
	fd.mode = FavoritesModeList
	fd.filter.SetValue("")
	fd.filter.Focus()
	fd.applyFilter()
}

// Mode returns the current dialog mode
func (fd *FavoritesDialog) Mode() FavoritesMode {
	return fd.mode
}

// Visible returns the favorites matching the filter in display order
func (fd *FavoritesDialog) Visible() []models.Favorite {
	out := make([]models.Favorite, len(fd.visible))
	for i, idx := range fd.visible {
		out[i] = fd.favorites[idx]
	}
	return out
}

// favoriteSource adapts the list for fuzzy matching
type favoriteSource []models.Favorite

func (s favoriteSource) String(i int) string { return s[i].Name + " " + s[i].Query }
func (s favoriteSource) Len() int            { return len(s) }

func (fd *FavoritesDialog) applyFilter() {
	fd.selected = 0
	fd.offset = 0
	fd.visible = fd.visible[:0]

	pattern := strings.TrimSpace(fd.filter.Value())
	if pattern == "" {
		for i := range fd.favorites {
			fd.visible = append(fd.visible, i)
		}
		return
	}
	for _, m := range fuzzy.FindFrom(pattern, favoriteSource(fd.favorites)) {
		fd.visible = append(fd.visible, m.Index)
	}
}

func (fd *FavoritesDialog) current() (models.Favorite, bool) {
	if fd.selected < 0 || fd.selected >= len(fd.visible) {
		return models.Favorite{}, false
	}
	return fd.favorites[fd.visible[fd.selected]], true
}

func (fd *FavoritesDialog) listHeight() int {
	return max(fd.Height-6, 1)
}

// Update handles keyboard input
func (fd *FavoritesDialog) Update(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	if fd.mode == FavoritesModeEdit {
		return fd.handleEditMode(msg)
	}
	return fd.handleListMode(msg)
}

func (fd *FavoritesDialog) handleListMode(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return fd, func() tea.Msg {
			return CloseFavoritesDialogMsg{}
		}
	case "up", "ctrl+p":
		if fd.selected > 0 {
			fd.selected--
			if fd.selected < fd.offset {
				fd.offset = fd.selected
			}
		}
		return fd, nil
	case "down", "ctrl+n":
		if fd.selected < len(fd.visible)-1 {
			fd.selected++
			if fd.selected >= fd.offset+fd.listHeight() {
				fd.offset = fd.selected - fd.listHeight() + 1
			}
		}
		return fd, nil
	case "enter":
		if fav, ok := fd.current(); ok {
			return fd, func() tea.Msg {
				return FavoriteSelectedMsg{Favorite: fav}
			}
		}
		return fd, nil
	case "ctrl+d":
		if fav, ok := fd.current(); ok {
			return fd, func() tea.Msg {
				return FavoriteDeleteMsg{ID: fav.ID}
			}
		}
		return fd, nil
	case "ctrl+e":
		if fav, ok := fd.current(); ok {
			fd.startEdit(fav)
		}
		return fd, nil
	}

	before := fd.filter.Value()
	var cmd tea.Cmd
	fd.filter, cmd = fd.filter.Update(msg)
	if fd.filter.Value() != before {
		fd.applyFilter()
	}
	return fd, cmd
}

func (fd *FavoritesDialog) startEdit(fav models.Favorite) {
	fd.mode = FavoritesModeEdit
	fd.editing = fav.ID
	fd.fields[fieldName].SetValue(fav.Name)
	fd.fields[fieldDescription].SetValue(fav.Description)
	fd.fields[fieldTags].SetValue(strings.Join(fav.Tags, ", "))
	fd.focusField(fieldName)
}

func (fd *FavoritesDialog) focusField(i int) {
	fd.currentField = i
	for j := range fd.fields {
		if j == i {
			fd.fields[j].Focus()
		} else {
			fd.fields[j].Blur()
		}
	}
}

func (fd *FavoritesDialog) handleEditMode(msg tea.KeyMsg) (*FavoritesDialog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fd.mode = FavoritesModeList
		return fd, nil
	case "tab", "down":
		fd.focusField((fd.currentField + 1) % fieldCount)
		return fd, nil
	case "shift+tab", "up":
		fd.focusField((fd.currentField - 1 + fieldCount) % fieldCount)
		return fd, nil
	case "enter":
		fav, ok := fd.lookup(fd.editing)
		fd.mode = FavoritesModeList
		if !ok {
			return fd, nil
		}
		edited := FavoriteEditedMsg{
			ID:          fav.ID,
			Name:        fd.fields[fieldName].Value(),
			Description: fd.fields[fieldDescription].Value(),
			Query:       fav.Query,
			Tags:        parseTags(fd.fields[fieldTags].Value()),
		}
		return fd, func() tea.Msg { return edited }
	}

	var cmd tea.Cmd
	fd.fields[fd.currentField], cmd = fd.fields[fd.currentField].Update(msg)
	return fd, cmd
}

func (fd *FavoritesDialog) lookup(id string) (models.Favorite, bool) {
	for _, f := range fd.favorites {
		if f.ID == id {
			return f, true
		}
	}
	return models.Favorite{}, false
}

// parseTags splits a comma separated tag list
func parseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// View renders the dialog
func (fd *FavoritesDialog) View() string {
	if fd.mode == FavoritesModeEdit {
		return fd.renderEdit()
	}
	return fd.renderList()
}

func (fd *FavoritesDialog) container() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fd.Theme.BorderFocused).
		Width(fd.Width).
		Padding(0, 1)
}

func (fd *FavoritesDialog) renderList() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.Info).
		Bold(true)
	instrStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.JSONSummary).
		Italic(true)

	sections := []string{
		titleStyle.Render("Favorite Queries"),
		instrStyle.Render("↑↓: Navigate  Enter: Run  Ctrl+E: Edit  Ctrl+D: Delete  Esc: Close"),
		fd.filter.View(),
	}

	inner := max(fd.Width-2, 10)
	switch {
	case len(fd.favorites) == 0:
		sections = append(sections, "No favorites yet. Press Ctrl+B on a query pane to add one.")
	case len(fd.visible) == 0:
		sections = append(sections, "No matches")
	default:
		end := min(fd.offset+fd.listHeight(), len(fd.visible))
		for i := fd.offset; i < end; i++ {
			fav := fd.favorites[fd.visible[i]]
			line := fav.Name
			if fav.Name != fav.Query {
				line += "  " + fav.Query
			}
			if len(fav.Tags) > 0 {
				line += fmt.Sprintf(" [%s]", strings.Join(fav.Tags, ", "))
			}
			if fav.UsageCount > 0 {
				line += fmt.Sprintf(" (%d×)", fav.UsageCount)
			}
			line = runewidth.FillRight(runewidth.Truncate(line, inner, "..."), inner)

			style := lipgloss.NewStyle()
			if i == fd.selected {
				style = style.Background(fd.Theme.Selection).Foreground(fd.Theme.Foreground)
			}
			sections = append(sections, style.Render(line))
		}
	}

	return fd.container().Render(strings.Join(sections, "\n"))
}

func (fd *FavoritesDialog) renderEdit() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.Info).
		Bold(true)
	instrStyle := lipgloss.NewStyle().
		Foreground(fd.Theme.JSONSummary).
		Italic(true)

	fav, _ := fd.lookup(fd.editing)
	sections := []string{
		titleStyle.Render("Edit Favorite"),
		instrStyle.Render("Tab: Next field  Enter: Save  Esc: Cancel"),
		"",
		fd.renderField("Name:", fieldName),
		fd.renderField("Description:", fieldDescription),
		fd.renderField("Tags (comma separated):", fieldTags),
		"",
		"Query: " + fav.Query,
	}
	return fd.container().Render(strings.Join(sections, "\n"))
}

func (fd *FavoritesDialog) renderField(label string, field int) string {
	style := lipgloss.NewStyle()
	if fd.currentField == field {
		style = style.Foreground(fd.Theme.Prompt).Bold(true)
	}
	return style.Render(label) + " " + fd.fields[field].View()
}
