package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/blog/app/store"
)

// LoadDir reads all *.md files under dir, recursively. Hidden directories (.git and alike) are skipped.
// Duplicate slugs are an error, the error names both files.
func LoadDir(dir string) ([]store.Post, error) {
	var posts []store.Post
	seen := map[string]string{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		data, err := os.ReadFile(path) //nolint:gosec // path comes from walking the content dir
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		post, err := Parse(filepath.Base(path), data)
		if err != nil {
			return err
		}
		if prev, ok := seen[post.Slug]; ok {
			return fmt.Errorf("duplicate slug %q in %s and %s", post.Slug, prev, path)
		}
		seen[post.Slug] = path
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load posts from %s: %w", dir, err)
	}

	log.Printf("[DEBUG] loaded %d posts from %s", len(posts), dir)
	return posts, nil
}
