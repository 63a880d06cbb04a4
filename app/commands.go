package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/blog/app/config"
	"github.com/umputun/blog/app/content"
	"github.com/umputun/blog/app/server"
	"github.com/umputun/blog/app/store"
)

// ContentOptions tells where posts come from, shared by server and import commands
type ContentOptions struct {
	Dir string `long:"dir" env:"DIR" default:"posts" description:"directory with markdown posts"`

	Git struct {
		URL    string `long:"url" env:"URL" description:"git repository with posts (content dir is used as checkout path)"`
		Branch string `long:"branch" env:"BRANCH" default:"master" description:"git branch"`
		SSHKey string `long:"ssh-key" env:"SSH_KEY" description:"path to SSH private key for git"`
	} `group:"git" namespace:"git" env-namespace:"GIT"`
}

// ServerCmd implements the server subcommand
type ServerCmd struct {
	DB   string `short:"d" long:"db" env:"BLOG_DB" default:"blog.db" description:"database URL (sqlite file or postgres://...)"`
	Site string `short:"s" long:"site" env:"BLOG_SITE" description:"site config file (yaml)"`

	Content struct {
		ContentOptions
		Watch        bool          `long:"watch" env:"WATCH" description:"reload posts on file changes"`
		PullInterval time.Duration `long:"pull-interval" env:"PULL_INTERVAL" default:"0s" description:"git pull interval, 0 to disable"`
	} `group:"content" namespace:"content" env-namespace:"BLOG_CONTENT"`

	Server struct {
		Address     string        `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		BaseURL     string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy, overrides site base_path (e.g., /blog)"`
		ToggleTTL   time.Duration `long:"toggle-ttl" env:"TOGGLE_TTL" default:"30m" description:"theme switch session ttl"`
		CacheSize   int           `long:"cache-size" env:"CACHE_SIZE" default:"1000" description:"max posts kept in memory cache"`
	} `group:"server" namespace:"server" env-namespace:"BLOG_SERVER"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`

	ctx    context.Context
	cancel context.CancelFunc
}

// Execute runs the server command
func (s *ServerCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if s.ctx == nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		signals(s.cancel)
	}

	return s.run(s.ctx)
}

func (s *ServerCmd) run(ctx context.Context) error {
	site, err := config.Load(s.Site)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}
	if s.Server.BaseURL != "" {
		if site.BasePath, err = validateBaseURL(s.Server.BaseURL); err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
	}

	log.Printf("[INFO] starting blog server on %s", s.Server.Address)
	if site.BasePath != "" {
		log.Printf("[INFO] base URL: %s", site.BasePath)
	}

	db, err := store.New(s.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	postStore, err := store.NewCached(db, s.Server.CacheSize)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer postStore.Close()

	git, err := s.Content.gitSource()
	if err != nil {
		return err
	}
	syncer := s.Content.syncer(postStore, git)

	if _, err := syncer.Sync(ctx); err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	if s.Content.Watch {
		w := &content.Watcher{Dir: s.Content.Dir, OnChange: func(ctx context.Context) {
			if _, syncErr := syncer.Sync(ctx); syncErr != nil {
				log.Printf("[WARN] sync after change failed: %v", syncErr)
			}
		}}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("failed to start content watcher: %w", err)
		}
		log.Printf("[INFO] watching %s for changes", s.Content.Dir)
	}

	if git != nil && s.Content.PullInterval > 0 {
		go s.pullLoop(ctx, syncer)
	}

	srv, err := server.New(postStore, server.Config{
		Address:         s.Server.Address,
		ReadTimeout:     s.Server.ReadTimeout,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Version:         revision,
		Site:            site,
		ToggleTTL:       s.Server.ToggleTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// pullLoop re-syncs periodically, each sync pulls the git repository first.
func (s *ServerCmd) pullLoop(ctx context.Context, syncer *content.Syncer) {
	ticker := time.NewTicker(s.Content.PullInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := syncer.Sync(ctx); err != nil {
				log.Printf("[WARN] periodic sync failed: %v", err)
			}
		}
	}
}

// ImportCmd implements the import subcommand
type ImportCmd struct {
	DB string `short:"d" long:"db" env:"BLOG_DB" default:"blog.db" description:"database URL (sqlite file or postgres://...)"`

	Content ContentOptions `group:"content" namespace:"content" env-namespace:"BLOG_CONTENT"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

// Execute runs the import command
func (i *ImportCmd) Execute(_ []string) error {
	setupLogs(i.Debug)
	return i.run(context.Background())
}

func (i *ImportCmd) run(ctx context.Context) error {
	log.Printf("[INFO] importing posts from %s into %s", i.Content.Dir, i.DB)

	db, err := store.New(i.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	git, err := i.Content.gitSource()
	if err != nil {
		return err
	}

	stats, err := i.Content.syncer(db, git).Sync(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("imported %d posts, removed %d\n", stats.Upserted, stats.Deleted)
	return nil
}

// gitSource returns nil if no git url is set.
func (c *ContentOptions) gitSource() (*content.GitSource, error) {
	if c.Git.URL == "" {
		return nil, nil
	}
	git, err := content.NewGitSource(content.GitConfig{URL: c.Git.URL, Branch: c.Git.Branch, Path: c.Dir, SSHKey: c.Git.SSHKey})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize git source: %w", err)
	}
	log.Printf("[INFO] posts from git %s, branch: %s, checkout: %s", c.Git.URL, c.Git.Branch, c.Dir)
	return git, nil
}

// syncer makes a syncer loading posts from the content dir. With git set, every load pulls first.
func (c *ContentOptions) syncer(st content.PostStore, git *content.GitSource) *content.Syncer {
	dir := c.Dir
	return content.NewSyncer(st, func(ctx context.Context) ([]store.Post, error) {
		if git != nil {
			rev, err := git.Update(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to update git checkout: %w", err)
			}
			log.Printf("[DEBUG] git checkout at %s", rev)
		}
		return content.LoadDir(dir)
	})
}

// validateBaseURL checks base URL format and strips the trailing slash.
// "/" is the same as no base URL.
func validateBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", nil
	}
	if !strings.HasPrefix(baseURL, "/") {
		return "", errors.New("base URL must start with /")
	}
	return strings.TrimSuffix(baseURL, "/"), nil
}
