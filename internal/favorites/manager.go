// Package favorites keeps named queries in favorites.yaml. A favorite is
// identified by its engine and query text; the same query may be saved
// once per engine.
package favorites

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/filter"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicate is returned when the engine already has the query saved
	ErrDuplicate = errors.New("query is already a favorite")
	// ErrNotFound is returned for an unknown favorite ID
	ErrNotFound = errors.New("favorite not found")
)

// Manager manages query favorites
type Manager struct {
	path      string
	favorites []models.Favorite
}

// NewManager opens the favorites stored in configDir. A missing file is an
// empty list.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{path: filepath.Join(configDir, "favorites.yaml")}

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return m, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}
	if err := yaml.Unmarshal(data, &m.favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites: %w", err)
	}
	return m, nil
}

func (m *Manager) save() error {
	data, err := yaml.Marshal(m.favorites)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}
	return nil
}

// indexOf finds the favorite with the given engine and query, or -1
func (m *Manager) indexOf(engine, query string) int {
	return slices.IndexFunc(m.favorites, func(f models.Favorite) bool {
		return strings.EqualFold(f.Engine, engine) && f.Query == query
	})
}

func (m *Manager) indexOfID(id string) int {
	return slices.IndexFunc(m.favorites, func(f models.Favorite) bool {
		return f.ID == id
	})
}

// validate trims query and checks that it compiles for engine
func validate(engine, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("favorite query cannot be empty")
	}
	if err := filter.Check(engine, query); err != nil {
		return "", fmt.Errorf("invalid %s query: %w", engine, err)
	}
	return query, nil
}

// Add saves query for engine. An empty name defaults to the query text.
func (m *Manager) Add(name, description, query, engine string, tags []string) (*models.Favorite, error) {
	engine = strings.ToLower(strings.TrimSpace(engine))
	query, err := validate(engine, query)
	if err != nil {
		return nil, err
	}
	if m.indexOf(engine, query) >= 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicate, query, engine)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = query
	}
	now := time.Now()
	favorite := models.Favorite{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Query:       query,
		Engine:      engine,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.favorites = append(m.favorites, favorite)

	if err := m.save(); err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}
	return &favorite, nil
}

// Update replaces the editable fields of the favorite id. The engine is
// fixed once a favorite exists.
func (m *Manager) Update(id, name, description, query string, tags []string) error {
	i := m.indexOfID(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fav := &m.favorites[i]

	query, err := validate(fav.Engine, query)
	if err != nil {
		return err
	}
	if j := m.indexOf(fav.Engine, query); j >= 0 && j != i {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicate, query, fav.Engine)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = query
	}
	fav.Name = name
	fav.Description = strings.TrimSpace(description)
	fav.Query = query
	fav.Tags = tags
	fav.UpdatedAt = time.Now()

	if err := m.save(); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Delete removes the favorite id
func (m *Manager) Delete(id string) error {
	i := m.indexOfID(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.favorites = slices.Delete(m.favorites, i, i+1)
	if err := m.save(); err != nil {
		return fmt.Errorf("failed to save favorites after deletion: %w", err)
	}
	return nil
}

// GetAll returns all favorites in the order they were saved
func (m *Manager) GetAll() []models.Favorite {
	return m.favorites
}

// ForEngine returns the favorites written for engine, most used first and
// most recently used among equals
func (m *Manager) ForEngine(engine string) []models.Favorite {
	var out []models.Favorite
	for _, fav := range m.favorites {
		if strings.EqualFold(fav.Engine, engine) {
			out = append(out, fav)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Favorite) int {
		if c := cmp.Compare(b.UsageCount, a.UsageCount); c != 0 {
			return c
		}
		return b.LastUsed.Compare(a.LastUsed)
	})
	return out
}

// Find returns the favorite saved for engine with exactly query
func (m *Manager) Find(engine, query string) (*models.Favorite, bool) {
	i := m.indexOf(engine, strings.TrimSpace(query))
	if i < 0 {
		return nil, false
	}
	fav := m.favorites[i]
	return &fav, true
}

// RecordUsage bumps the usage count of the favorite id
func (m *Manager) RecordUsage(id string) error {
	i := m.indexOfID(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.favorites[i].UsageCount++
	m.favorites[i].LastUsed = time.Now()
	if err := m.save(); err != nil {
		return fmt.Errorf("failed to save usage statistics: %w", err)
	}
	return nil
}

// exportPath picks the export destination, next to favorites.yaml unless
// custom names one
func (m *Manager) exportPath(ext string, custom []string) (string, error) {
	if len(m.favorites) == 0 {
		return "", fmt.Errorf("no favorites to export")
	}
	if len(custom) > 0 && custom[0] != "" {
		return custom[0], nil
	}
	return filepath.Join(filepath.Dir(m.path), "favorites."+ext), nil
}

// ExportToCSV writes all favorites as CSV and returns the path written
func (m *Manager) ExportToCSV(customPath ...string) (string, error) {
	path, err := m.exportPath("csv", customPath)
	if err != nil {
		return "", err
	}
	if err := export.ExportToCSV(m.favorites, path); err != nil {
		return "", fmt.Errorf("failed to export favorites to CSV: %w", err)
	}
	return path, nil
}

// ExportToJSON writes all favorites as JSON and returns the path written
func (m *Manager) ExportToJSON(customPath ...string) (string, error) {
	path, err := m.exportPath("json", customPath)
	if err != nil {
		return "", err
	}
	if err := export.ExportToJSON(m.favorites, path); err != nil {
		return "", fmt.Errorf("failed to export favorites to JSON: %w", err)
	}
	return path, nil
}
