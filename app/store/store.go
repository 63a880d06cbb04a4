// Package store provides post storage on top of SQLite or PostgreSQL.
package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a post is not found in the store.
var ErrNotFound = errors.New("post not found")

// DBType is the kind of database behind the store.
type DBType int

// supported database types
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// Post is a stored blog post. Body is markdown source.
type Post struct {
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description,omitempty"`
	Tags        Tags      `db:"tags" json:"tags,omitempty"`
	Date        time.Time `db:"date" json:"date"`
	Draft       bool      `db:"draft" json:"draft,omitempty"`
	Body        string    `db:"body" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Tags is a list of post tags, stored as a JSON array. Empty list is stored as an empty string.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "", nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner. Values not starting with "[" are read as comma separated,
// the format used before tags were stored as JSON.
func (t *Tags) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("unsupported tags type %T", src)
	}
	if s == "" {
		*t = nil
		return nil
	}
	if !strings.HasPrefix(s, "[") {
		*t = strings.Split(s, ",")
		return nil
	}
	var res []string
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		return fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	*t = res
	return nil
}

// RWLocker is a lock used by the store, real for sqlite and noop for postgres.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

// NormalizeSlug makes a url-safe slug: trims slashes and whitespace, lowercases,
// replaces spaces with dashes.
func NormalizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	slug = strings.Trim(slug, "/")
	slug = strings.ToLower(slug)
	return strings.Join(strings.Fields(slug), "-")
}
