package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"smalipatch.dev/pkg/smalipatch/internal/adapter"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
	"smalipatch.dev/pkg/smalipatch/internal/smali"
)

// ClassRootNames are the sub-trees produced for a multi-dex archive, in
// search order.
var ClassRootNames = []string{"classes", "classes2", "classes3", "classes4", "classes5"}

// ClassRoots joins base with each directory name. With no names the default
// multi-dex layout is used.
func ClassRoots(base m.Path, dirs ...string) []m.Path {
	if len(dirs) == 0 {
		dirs = ClassRootNames
	}

	roots := make([]m.Path, 0, len(dirs))
	for _, dir := range dirs {
		roots = append(roots, m.Path(filepath.Join(string(base), dir)))
	}

	return roots
}

// ClassIndex maps normalized class identifiers to listing files.
type ClassIndex struct {
	fs      adapter.ListingFSAdapter
	roots   []m.Path
	entries map[string]m.Path
}

// BuildClassIndex walks every existing root in order and records each
// listing under its normalized relative path. When two roots hold the same
// class the earlier root wins. Missing roots are skipped.
func BuildClassIndex(ctx context.Context, fs adapter.ListingFSAdapter, roots []m.Path) (*ClassIndex, error) {
	idx := &ClassIndex{
		fs:      fs,
		roots:   roots,
		entries: make(map[string]m.Path),
	}

	for _, root := range roots {
		if !fs.Exists(ctx, root) {
			slog.Debug("Skipping missing class root", "root", root)
			continue
		}

		err := fs.Walk(ctx, root, func(path m.Path) error {
			if !adapter.IsListing(path, smali.ListingExtension) {
				return nil
			}

			rel, err := filepath.Rel(string(root), string(path))
			if err != nil {
				return err
			}

			key := smali.NormalizeClassID(rel)
			if _, seen := idx.entries[key]; !seen {
				idx.entries[key] = path
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", root, err)
		}
	}

	slog.Debug("Built class index", "roots", len(roots), "classes", len(idx.entries))

	return idx, nil
}

// Len returns the number of indexed classes.
func (c *ClassIndex) Len() int {
	return len(c.entries)
}

// Roots returns the roots the index was built from.
func (c *ClassIndex) Roots() []m.Path {
	return c.roots
}

// Resolve maps a class identifier to its listing. An exact hit on the
// normalized path wins; otherwise the roots are searched again, in order,
// for the first listing whose base name equals the identifier's last
// segment.
func (c *ClassIndex) Resolve(ctx context.Context, id string) (m.Path, error) {
	key := smali.NormalizeClassID(id)

	if path, ok := c.entries[key]; ok && c.fs.Exists(ctx, path) {
		return path, nil
	}

	base := smali.ClassBaseName(key)
	if base != "" {
		path, err := c.findByBaseName(ctx, base)
		if err != nil {
			return "", err
		}

		if path != "" {
			slog.Debug("Resolved class by base name", "class", id, "path", path)
			return path, nil
		}
	}

	slog.Warn("Class not found", "class", id)

	return "", fmt.Errorf("%w: %s", m.ErrClassNotFound, id)
}

var errStopWalk = errors.New("stop walk")

func (c *ClassIndex) findByBaseName(ctx context.Context, base string) (m.Path, error) {
	want := base + smali.ListingExtension

	for _, root := range c.roots {
		if !c.fs.Exists(ctx, root) {
			continue
		}

		var found m.Path

		err := c.fs.Walk(ctx, root, func(path m.Path) error {
			if filepath.Base(string(path)) == want {
				found = path
				return errStopWalk
			}

			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			return "", fmt.Errorf("search %s: %w", root, err)
		}

		if found != "" {
			return found, nil
		}
	}

	return "", nil
}
