package models

import "time"

// Favorite is a saved query
type Favorite struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Query       string    `yaml:"query" json:"query"`
	Engine      string    `yaml:"engine" json:"engine"` // query engine the query is written for
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
	LastUsed    time.Time `yaml:"last_used,omitempty" json:"last_used,omitzero"`
	UsageCount  int       `yaml:"usage_count" json:"usage_count"`
}
