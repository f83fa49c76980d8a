package site

import (
	"fmt"

	"termfolio/content"
	"termfolio/vfs"
)

// Session is the part of a running terminal session a refresh touches.
type Session interface {
	Rebase(tree *vfs.Node) error
}

// Refresh regenerates the site from manifest and pushes the result into a
// running session: the local store adopts the rebuilt bodies, the cache (if
// any) is dropped, and the session rebases onto the new tree. It is the
// explicit, externally-triggered replacement for polling: callers invoke it
// from a deploy hook or a filesystem watcher. A failed rebuild leaves the
// session untouched.
func Refresh(manifest func() ([]Entry, error), sess Session, local *content.MapStore, cache *content.CachingStore) error {
	entries, err := manifest()
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	tree, rebuilt, err := Build(entries)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	if local != nil {
		local.Replace(rebuilt)
	}
	if cache != nil {
		cache.InvalidateAll()
	}
	if err := sess.Rebase(tree); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}
