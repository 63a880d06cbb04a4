// Package content reads markdown posts with front matter, renders them to HTML and keeps the
// post store in sync with a directory or a git repository.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/umputun/blog/app/store"
)

// front matter delimiters
const (
	yamlDelim = "---"
	tomlDelim = "+++"
)

// ErrNoFrontMatter is returned for documents without a front matter block.
var ErrNoFrontMatter = errors.New("no front matter")

// frontMatter is the post header, same fields for YAML and TOML.
type frontMatter struct {
	Title       string    `yaml:"title" toml:"title"`
	Description string    `yaml:"description" toml:"description"`
	Slug        string    `yaml:"slug" toml:"slug"`
	Date        time.Time `yaml:"date" toml:"date"`
	Tags        []string  `yaml:"tags" toml:"tags"`
	Draft       bool      `yaml:"draft" toml:"draft"`
}

// formats are the accepted front matter blocks, decode errors name the format.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat(yamlDelim, yamlDelim, func(data []byte, v any) error {
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse yaml front matter: %w", err)
		}
		return nil
	}),
	frontmatter.NewFormat(tomlDelim, tomlDelim, func(data []byte, v any) error {
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse toml front matter: %w", err)
		}
		return nil
	}),
}

// Parse converts a markdown document with YAML (---) or TOML (+++) front matter into a post.
// name is the file name, used for the default slug.
func Parse(name string, data []byte) (store.Post, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	var fm frontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(data), &fm, formats...)
	if errors.Is(err, frontmatter.ErrNotFound) {
		if delim := openingDelim(data); delim != "" {
			return store.Post{}, fmt.Errorf("%s: unterminated %q front matter", name, delim)
		}
		return store.Post{}, fmt.Errorf("%s: %w", name, ErrNoFrontMatter)
	}
	if err != nil {
		return store.Post{}, fmt.Errorf("%s: %w", name, err)
	}

	if strings.TrimSpace(fm.Title) == "" {
		return store.Post{}, fmt.Errorf("%s: title is required", name)
	}

	slug := store.NormalizeSlug(fm.Slug)
	if slug == "" {
		base := filepath.Base(name)
		slug = store.NormalizeSlug(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if slug == "" {
		return store.Post{}, fmt.Errorf("%s: can't make slug", name)
	}

	return store.Post{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Tags:        fm.Tags,
		Date:        fm.Date,
		Draft:       fm.Draft,
		Body:        strings.TrimLeft(string(body), "\n"),
	}, nil
}

// openingDelim returns the delimiter on the first non-blank line, if it opens a front matter block.
func openingDelim(data []byte) string {
	first, _, _ := strings.Cut(strings.TrimLeft(string(data), " \t\n"), "\n")
	switch first = strings.TrimSpace(first); first {
	case yamlDelim, tomlDelim:
		return first
	}
	return ""
}
