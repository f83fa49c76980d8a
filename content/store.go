// Package content loads raw file bytes for virtual filesystem paths. The
// Store interface is the sole I/O boundary for content: implementations may
// serve bundled strings, a static asset host, or anything else the site is
// deployed against. A CachingStore wraps any Store with a TTL cache.
package content

import "errors"

// ErrNotFound is returned when a path has no content. It is a normal result,
// not a failure: callers translate it into their own per-command phrasing.
var ErrNotFound = errors.New("content not found")

// Store fetches raw content for a fully-qualified virtual path (e.g.
// "~/artist/bio.md"). The returned slice must not be modified by callers.
type Store interface {
	Fetch(path string) ([]byte, error)
}

// Verify the implementations satisfy Store at compile time.
var _ Store = (*MapStore)(nil)
var _ Store = (*HTTPStore)(nil)
var _ Store = (*CachingStore)(nil)
