package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/go-pkgz/lgr"
)

// defaultDebounce collapses bursts of editor writes into one reload.
const defaultDebounce = 250 * time.Millisecond

// Watcher calls OnChange after markdown files in Dir change.
type Watcher struct {
	Dir      string
	OnChange func(ctx context.Context)
	Debounce time.Duration
}

// Start begins watching Dir and its subdirectories. It returns once the watch is set up,
// events are handled in a goroutine until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if w.Dir == "" {
		return errors.New("content dir not set")
	}
	if w.OnChange == nil {
		return errors.New("change handler not set")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// fsnotify is not recursive, add every directory
	err = filepath.WalkDir(w.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.Dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", w.Dir, err)
	}

	log.Printf("[INFO] watching content dir %s for changes", w.Dir)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				log.Printf("[INFO] content watcher stopped")
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				if event.Op&fsnotify.Create != 0 {
					w.addDir(watcher, event.Name)
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() { w.OnChange(ctx) })

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] content watcher error: %v", err)
			}
		}
	}()

	return nil
}

// relevant reports whether the event may change the set of posts.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	ext := filepath.Ext(event.Name)
	// a new or removed directory has no extension and may hold posts
	return ext == "" || strings.EqualFold(ext, ".md")
}

func (w *Watcher) addDir(watcher *fsnotify.Watcher, path string) {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return
	}
	if err := watcher.Add(path); err != nil {
		log.Printf("[WARN] failed to watch new dir %s: %v", path, err)
		return
	}
	log.Printf("[DEBUG] watching new dir %s", path)
}
