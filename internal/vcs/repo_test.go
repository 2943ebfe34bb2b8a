package vcs

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitSource(t *testing.T) {
	gitSources := []string{
		"https://github.com/acme/foobar.git",
		"http://example.com/repo.git",
		"ssh://host/repo.git",
		"git@github.com:acme/foobar.git",
		"git+user@host:repo.git",
	}
	for _, src := range gitSources {
		assert.True(t, IsGitSource(src), src)
	}

	localSources := []string{
		"/tmp/some/dir",
		"./relative/path",
		"plain-dir",
	}
	for _, src := range localSources {
		assert.False(t, IsGitSource(src), src)
	}
}

func TestNormalizeSource(t *testing.T) {
	assert.Equal(t, "user@host:repo.git", NormalizeSource("git+user@host:repo.git"))
	assert.Equal(t, "https://x/y.git", NormalizeSource("https://x/y.git"))
}

func TestSetupFromLocalDirectory(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "tsm")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "model"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "model", "config.yml"), []byte("seed: 1\n"), 0o644))

	repo, err := Setup(src, dest)
	require.NoError(t, err)
	require.NotNil(t, repo)

	// Tree copied and a fresh repository initialized.
	assert.FileExists(t, filepath.Join(dest, "model", "config.yml"))
	_, err = git.PlainOpen(dest)
	assert.NoError(t, err)
}

func TestSetupFromLocalRepositoryDropsOrigin(t *testing.T) {
	src := t.TempDir()
	_, err := git.PlainInit(src, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(src, "file.txt"), []byte("x"), 0o644))

	dest := filepath.Join(t.TempDir(), "tsm")
	repo, err := Setup(src, dest)
	require.NoError(t, err)

	remotes, err := repo.Remotes()
	require.NoError(t, err)
	assert.Empty(t, remotes)
}

func TestCommit(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644))

	dest := filepath.Join(t.TempDir(), "tsm")
	repo, err := Setup(src, dest)
	require.NoError(t, err)

	require.NoError(t, Commit(repo, "Generate TSM with seed: '42'"))

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Generate TSM with seed: '42'", commit.Message)
}
