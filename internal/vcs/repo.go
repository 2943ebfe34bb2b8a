// Package vcs prepares the scenario repository: a template instance model is
// either cloned from a git URL or tree-copied from a local path into the
// destination, and the finished scenario is committed there.
package vcs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	gitSourceRe = regexp.MustCompile(`^(https?|ssh|git)(.+)`)
	gitPrefixRe = regexp.MustCompile(`^git\+(.*)$`)
)

// IsGitSource reports whether src looks like a git URL rather than a local
// path. Common formats (https://, ssh://, git@host:...) are detected; a
// `git+` prefix forces URL treatment for less common links.
func IsGitSource(src string) bool {
	return gitSourceRe.MatchString(src)
}

// NormalizeSource strips the optional `git+` forcing prefix from a URL.
func NormalizeSource(src string) string {
	return gitPrefixRe.ReplaceAllString(src, "$1")
}

// Setup materializes the TIM source at dest and returns the repository
// handle the scenario will be committed to. Cloned and pre-existing
// repositories lose their origin remote so the scenario can be pushed
// somewhere new; a plain directory copy is initialized as a fresh
// repository.
func Setup(src, dest string) (*git.Repository, error) {
	if IsGitSource(src) {
		repo, err := git.PlainClone(dest, false, &git.CloneOptions{
			URL: NormalizeSource(src),
		})
		if err != nil {
			return nil, fmt.Errorf("vcs: clone %s: %w", src, err)
		}
		if err := deleteOrigin(repo); err != nil {
			return nil, err
		}
		return repo, nil
	}

	if err := copyTree(src, dest); err != nil {
		return nil, fmt.Errorf("vcs: copy %s: %w", src, err)
	}

	repo, err := git.PlainOpen(dest)
	switch {
	case err == nil:
		if err := deleteOrigin(repo); err != nil {
			return nil, err
		}
		return repo, nil
	case err == git.ErrRepositoryNotExists:
		repo, err := git.PlainInit(dest, false)
		if err != nil {
			return nil, fmt.Errorf("vcs: init %s: %w", dest, err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("vcs: open %s: %w", dest, err)
	}
}

// Commit stages the whole worktree and commits it with the given message.
func Commit(repo *git.Repository, message string) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("vcs: worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("vcs: stage: %w", err)
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "espalier",
			Email: "espalier@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("vcs: commit: %w", err)
	}
	return nil
}

func deleteOrigin(repo *git.Repository) error {
	err := repo.DeleteRemote("origin")
	if err != nil && err != git.ErrRemoteNotFound {
		return fmt.Errorf("vcs: delete origin: %w", err)
	}
	return nil
}

// copyTree copies the directory tree at src into dest, preserving file
// modes. dest must not already contain conflicting files.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(from, to string, mode fs.FileMode) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
