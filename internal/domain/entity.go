package domain

import (
	"strings"
	"time"
)

// Meta carries the identity every stored record gets on creation.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the record identifier.
func (m Meta) Key() string {
	return m.ID
}

// Metadata gives the store write access to the identity fields.
func (m *Meta) Metadata() *Meta {
	return m
}

// matchesAny reports whether query is a case-insensitive substring of any field.
// An empty query matches everything.
func matchesAny(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
