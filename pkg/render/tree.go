package render

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/espalier/pkg/manifest"
)

// TreeRenderer walks a validated manifest tree against the filesystem:
// directories are created, copy globs are copied verbatim, files are
// rendered with the layered context, and sources marked for deletion are
// queued. Traversal is single-threaded, depth-first, in declaration order;
// the first failure aborts the pass (already-written output stays in place).
type TreeRenderer struct {
	env *Environment
	log *slog.Logger
}

// NewTreeRenderer creates a renderer using env for file templates.
// A nil logger disables logging.
func NewTreeRenderer(env *Environment, logger *slog.Logger) *TreeRenderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TreeRenderer{env: env, log: logger}
}

// Render walks objects with srcDir/destDir as base directories.
//
// global is the immutable context produced from the context document; parent
// seeds the accumulated parent context (usually nil). Each file node renders
// against the three layers {context, parent_context, local_context}; each
// directory node hands its children a fresh copy of the parent context merged
// with its own extra values, so sibling branches never observe each other's
// additions.
//
// The returned queues must only be drained after Render returns: deletion is
// a separate terminal phase, never interleaved with rendering, so no source
// is removed while a sibling or descendant still needs to read it.
func (r *TreeRenderer) Render(objects []manifest.Object, srcDir, destDir string, global, parent map[string]any) (*DeleteQueues, error) {
	if parent == nil {
		parent = map[string]any{}
	}
	queues := &DeleteQueues{}
	if err := r.walk(objects, srcDir, destDir, global, parent, queues); err != nil {
		return nil, err
	}
	return queues, nil
}

func (r *TreeRenderer) walk(objects []manifest.Object, srcDir, destDir string, global, parent map[string]any, queues *DeleteQueues) error {
	for _, obj := range objects {
		src := filepath.Join(srcDir, obj.Base().Src)
		dest := filepath.Join(destDir, obj.Base().Dest)

		switch node := obj.(type) {
		case *manifest.Directory:
			if err := r.renderDirectory(node, src, dest, global, parent, queues); err != nil {
				return err
			}

		case *manifest.File:
			if err := r.renderFile(node, src, dest, global, parent, queues); err != nil {
				return err
			}

		default:
			// Parse guarantees this cannot happen; reaching it means the
			// manifest bypassed validation.
			return fmt.Errorf("render: unsupported manifest object %T", obj)
		}
	}
	return nil
}

func (r *TreeRenderer) renderDirectory(node *manifest.Directory, src, dest string, global, parent map[string]any, queues *DeleteQueues) error {
	r.log.Debug("creating directory", "name", node.Name, "dest", dest)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("render: create %s: %w", dest, err)
	}

	for _, pattern := range node.Copy {
		if err := r.copyGlob(src, dest, pattern); err != nil {
			return err
		}
	}

	child := maps.Clone(parent)
	maps.Copy(child, node.Extra)

	if node.Delete && !queues.hasFile(src) {
		queues.pushDir(src)
	}

	return r.walk(node.Contents, src, dest, global, child, queues)
}

func (r *TreeRenderer) renderFile(node *manifest.File, src, dest string, global, parent map[string]any, queues *DeleteQueues) error {
	local := node.Extra
	if local == nil {
		local = map[string]any{}
	}
	ctx := map[string]any{
		"context":        global,
		"parent_context": parent,
		"local_context":  local,
	}

	if node.Delete && !queues.hasDir(src) {
		queues.pushFile(src)
	}

	r.log.Debug("rendering file", "name", node.Name, "src", src, "dest", dest)
	out, err := r.env.RenderFile(src, ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", dest, err)
	}
	return nil
}

// copyGlob copies every file under src matching pattern to the corresponding
// relative path under dest, creating intermediate directories as needed.
// Matched files are copied verbatim, never rendered.
func (r *TreeRenderer) copyGlob(src, dest, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS(src), pattern)
	if err != nil {
		return fmt.Errorf("render: glob %q under %s: %w", pattern, src, err)
	}

	for _, rel := range matches {
		from := filepath.Join(src, filepath.FromSlash(rel))
		info, err := os.Stat(from)
		if err != nil {
			return fmt.Errorf("render: copy %s: %w", from, err)
		}
		if info.IsDir() {
			continue
		}

		to := filepath.Join(dest, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return fmt.Errorf("render: copy %s: %w", to, err)
		}
		if err := copyFile(from, to, info.Mode()); err != nil {
			return fmt.Errorf("render: copy %s: %w", from, err)
		}
		r.log.Debug("copied file", "from", from, "to", to)
	}
	return nil
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

// DeleteQueues accumulates the sources to remove once a pass completes: one
// LIFO queue for directories and one for files. Queues are passed through
// the whole walk by reference, so accumulation order is consistent across
// branches.
type DeleteQueues struct {
	dirs  []string
	files []string
}

// Dirs returns the queued directory paths in insertion order.
func (q *DeleteQueues) Dirs() []string { return slices.Clone(q.dirs) }

// Files returns the queued file paths in insertion order.
func (q *DeleteQueues) Files() []string { return slices.Clone(q.files) }

func (q *DeleteQueues) pushDir(path string)  { q.dirs = append(q.dirs, path) }
func (q *DeleteQueues) pushFile(path string) { q.files = append(q.files, path) }

func (q *DeleteQueues) hasDir(path string) bool  { return slices.Contains(q.dirs, path) }
func (q *DeleteQueues) hasFile(path string) bool { return slices.Contains(q.files, path) }

// Drain removes the queued sources: files first, then directories, each in
// reverse insertion order. Children therefore disappear before the
// directories containing them. Drain must only run after the full tree has
// been rendered.
func (q *DeleteQueues) Drain() error {
	for i := len(q.files) - 1; i >= 0; i-- {
		if err := os.Remove(q.files[i]); err != nil {
			return fmt.Errorf("render: delete file: %w", err)
		}
	}
	for i := len(q.dirs) - 1; i >= 0; i-- {
		if err := os.RemoveAll(q.dirs[i]); err != nil {
			return fmt.Errorf("render: delete directory: %w", err)
		}
	}
	return nil
}
