// Package adapter contains the infrastructure adapters for the smalipatch CLI.
package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// ListingFSAdapter abstracts the filesystem operations the patch engine relies
// on. It hides direct `os` access so the domain logic can run against an
// in-memory overlay (dry runs) as well as the real decompile tree.
type ListingFSAdapter interface {
	// Walk recursively traverses root in lexical order and calls fn for every
	// regular file.
	Walk(ctx context.Context, root m.Path, fn WalkFunc) error

	// Exists reports whether path exists.
	Exists(ctx context.Context, path m.Path) bool

	// ReadListing loads a whole listing into memory.
	ReadListing(ctx context.Context, path m.Path) (*m.Listing, error)

	// WriteListing replaces the file behind listing with its full content in
	// one step. A failed write never leaves a partially written file.
	WriteListing(ctx context.Context, listing *m.Listing) error

	// Glob returns the files in dir matching pattern, sorted.
	Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error)

	// CreateTempDir creates a temporary working directory.
	CreateTempDir(ctx context.Context, pattern string) (m.Path, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// Overlay returns a view of the same tree whose writes stay in memory
	// while reads see them.
	Overlay() *OverlayFSAdapter
}

// WalkFunc is called for every regular file found by Walk.
type WalkFunc func(path m.Path) error

// LocalListingFSAdapter is the ListingFSAdapter over an afero filesystem.
// The default one is the OS filesystem; dry runs use a copy-on-write view of
// it (see Overlay).
type LocalListingFSAdapter struct {
	fs afero.Fs
}

// NewLocalListingFSAdapter constructs a LocalListingFSAdapter over the OS
// filesystem.
func NewLocalListingFSAdapter() *LocalListingFSAdapter {
	return NewListingFSAdapter(afero.NewOsFs())
}

// NewListingFSAdapter constructs a LocalListingFSAdapter over fs.
func NewListingFSAdapter(fs afero.Fs) *LocalListingFSAdapter {
	return &LocalListingFSAdapter{fs: fs}
}

// Overlay returns a view of the filesystem whose writes stay in memory.
func (a *LocalListingFSAdapter) Overlay() *OverlayFSAdapter {
	return NewOverlayFSAdapter(a.fs)
}

// Walk iterates over the regular files under root.
func (a *LocalListingFSAdapter) Walk(ctx context.Context, root m.Path, fn WalkFunc) error {
	return afero.Walk(a.fs, string(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return fn(m.Path(path))
	})
}

// Exists reports whether path exists.
func (a *LocalListingFSAdapter) Exists(_ context.Context, path m.Path) bool {
	ok, err := afero.Exists(a.fs, string(path))
	return err == nil && ok
}

// ReadListing reads and splits the file at path.
func (a *LocalListingFSAdapter) ReadListing(_ context.Context, path m.Path) (*m.Listing, error) {
	content, err := afero.ReadFile(a.fs, string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return m.ParseListing(path, content), nil
}

// WriteListing writes the listing to a temporary file next to the target and
// renames it into place, keeping the original permissions.
func (a *LocalListingFSAdapter) WriteListing(_ context.Context, listing *m.Listing) error {
	target := string(listing.Path)

	mode := os.FileMode(0o644)
	if info, err := a.fs.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(a.fs, filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	tmpName := tmp.Name()

	defer func() {
		_ = a.fs.Remove(tmpName)
	}()

	if _, err := tmp.Write(listing.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	if err := a.fs.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	if err := a.fs.Rename(tmpName, target); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	return nil
}

// Glob returns the files in dir whose base name matches pattern.
func (a *LocalListingFSAdapter) Glob(_ context.Context, dir m.Path, pattern string) ([]m.Path, error) {
	matches, err := afero.Glob(a.fs, filepath.Join(string(dir), pattern))
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(match))
	}

	return paths, nil
}

// CreateTempDir creates a temporary directory.
func (a *LocalListingFSAdapter) CreateTempDir(_ context.Context, pattern string) (m.Path, error) {
	tmpDir, err := afero.TempDir(a.fs, "", pattern)
	if err != nil {
		return "", err
	}

	return m.Path(tmpDir), nil
}

// RemoveAll removes a directory and all its contents.
func (a *LocalListingFSAdapter) RemoveAll(_ context.Context, path m.Path) error {
	return a.fs.RemoveAll(string(path))
}

// IsListing reports whether path names a class listing file.
func IsListing(path m.Path, ext string) bool {
	return strings.HasSuffix(string(path), ext)
}
