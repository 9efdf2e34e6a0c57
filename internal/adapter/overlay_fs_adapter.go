package adapter

import (
	"context"
	"sort"
	"sync"

	"github.com/spf13/afero"

	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

// OverlayFSAdapter is a ListingFSAdapter over a copy-on-write view of a base
// filesystem: reads fall through to the base, writes land in an in-memory
// layer, so a dry run sees the effect of earlier operations without touching
// the decompile tree.
type OverlayFSAdapter struct {
	*LocalListingFSAdapter

	mu      sync.Mutex
	written map[m.Path]struct{}
}

// NewOverlayFSAdapter wraps base with an in-memory write layer.
func NewOverlayFSAdapter(base afero.Fs) *OverlayFSAdapter {
	return &OverlayFSAdapter{
		LocalListingFSAdapter: NewListingFSAdapter(afero.NewCopyOnWriteFs(base, afero.NewMemMapFs())),
		written:               make(map[m.Path]struct{}),
	}
}

// WriteListing writes into the memory layer and records the path.
func (o *OverlayFSAdapter) WriteListing(ctx context.Context, listing *m.Listing) error {
	if err := o.LocalListingFSAdapter.WriteListing(ctx, listing); err != nil {
		return err
	}

	o.mu.Lock()
	o.written[listing.Path] = struct{}{}
	o.mu.Unlock()

	return nil
}

// Overlay stacks another memory layer on top of this one.
func (o *OverlayFSAdapter) Overlay() *OverlayFSAdapter {
	return NewOverlayFSAdapter(o.fs)
}

// Written returns the paths written through the overlay, sorted.
func (o *OverlayFSAdapter) Written() []m.Path {
	o.mu.Lock()
	defer o.mu.Unlock()

	paths := make([]m.Path, 0, len(o.written))
	for path := range o.written {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}
