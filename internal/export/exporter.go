package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// DefaultIndent is used by SaveDocuments when no indent is configured
const DefaultIndent = "  "

// SaveDocuments writes docs to path, one value after another. With a
// non-empty indent every value is pretty-printed.
func SaveDocuments(path string, docs []jsonv.Value, indent string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := jsonv.Encode(w, docs, jsonv.EncodeOptions{Indent: indent}); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write documents: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write documents: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// ExportToCSV exports favorites to a CSV file
func ExportToCSV(favorites []models.Favorite, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	header := []string{"Name", "Description", "Query", "Engine", "Tags", "Created", "Updated", "Last Used", "Usage Count"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, fav := range favorites {
		lastUsed := ""
		if !fav.LastUsed.IsZero() {
			lastUsed = fav.LastUsed.Format("2006-01-02 15:04:05")
		}

		row := []string{
			fav.Name,
			fav.Description,
			fav.Query,
			fav.Engine,
			strings.Join(fav.Tags, ", "),
			fav.CreatedAt.Format("2006-01-02 15:04:05"),
			fav.UpdatedAt.Format("2006-01-02 15:04:05"),
			lastUsed,
			strconv.Itoa(fav.UsageCount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON exports favorites to a JSON file
func ExportToJSON(favorites []models.Favorite, path string) error {
	data, err := json.Marshal(favorites, jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("failed to marshal favorites to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
