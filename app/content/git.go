package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	log "github.com/go-pkgz/lgr"
)

// GitConfig describes a remote repository with posts.
type GitConfig struct {
	URL    string // remote url, anything go-git can clone
	Branch string // branch name (default: master)
	Path   string // local checkout path
	SSHKey string // path to SSH private key (optional)
}

// GitSource keeps a local checkout of a posts repository up to date.
type GitSource struct {
	cfg GitConfig
}

// NewGitSource makes a git source, nothing is cloned until Update.
func NewGitSource(cfg GitConfig) (*GitSource, error) {
	if cfg.URL == "" {
		return nil, errors.New("git url is required")
	}
	if cfg.Path == "" {
		return nil, errors.New("git path is required")
	}
	if cfg.Branch == "" {
		cfg.Branch = "master"
	}
	return &GitSource{cfg: cfg}, nil
}

// Dir returns the local checkout path.
func (g *GitSource) Dir() string { return g.cfg.Path }

// Update clones the repository if there is no local checkout yet, otherwise pulls.
// Returns the short hash of HEAD after the update.
func (g *GitSource) Update(ctx context.Context) (string, error) {
	auth, err := g.auth()
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpen(g.cfg.Path)
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		log.Printf("[INFO] cloning %s (%s) to %s", g.cfg.URL, g.cfg.Branch, g.cfg.Path)
		repo, err = git.PlainCloneContext(ctx, g.cfg.Path, false, &git.CloneOptions{
			URL:           g.cfg.URL,
			Auth:          auth,
			ReferenceName: plumbing.NewBranchReferenceName(g.cfg.Branch),
			SingleBranch:  true,
		})
		if err != nil {
			return "", fmt.Errorf("failed to clone %s: %w", g.cfg.URL, err)
		}
	case err != nil:
		return "", fmt.Errorf("failed to open repo: %w", err)
	default:
		wt, wtErr := repo.Worktree()
		if wtErr != nil {
			return "", fmt.Errorf("failed to get worktree: %w", wtErr)
		}
		pullErr := wt.PullContext(ctx, &git.PullOptions{
			RemoteName:    "origin",
			Auth:          auth,
			ReferenceName: plumbing.NewBranchReferenceName(g.cfg.Branch),
			SingleBranch:  true,
		})
		if pullErr != nil && !errors.Is(pullErr, git.NoErrAlreadyUpToDate) {
			return "", fmt.Errorf("failed to pull: %w", pullErr)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	hash := head.Hash().String()[:7]
	log.Printf("[DEBUG] posts repo at %s", hash)
	return hash, nil
}

func (g *GitSource) auth() (transport.AuthMethod, error) {
	if g.cfg.SSHKey == "" {
		return nil, nil //nolint:nilnil // no auth is a valid auth method for go-git
	}
	auth, err := ssh.NewPublicKeysFromFile("git", g.cfg.SSHKey, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key: %w", err)
	}
	return auth, nil
}
