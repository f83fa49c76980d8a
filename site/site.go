// Package site builds the browsable filesystem tree and its content store
// from a single manifest, so the two can never disagree about which paths
// exist.
package site

import (
	"fmt"
	"strings"

	"termfolio/content"
	"termfolio/vfs"
)

// Entry is one manifest line. Path is rooted at the sentinel directory; a
// trailing slash marks a directory. Intermediate directories are created
// implicitly in first-seen order, which fixes the listing order.
type Entry struct {
	Path string
	Body string
}

// Build constructs the tree and content store from the manifest. The
// resulting tree always passes vfs.Validate.
func Build(entries []Entry) (*vfs.Node, *content.MapStore, error) {
	root := vfs.Root()
	bodies := make(map[string]string)

	for _, e := range entries {
		isDir := strings.HasSuffix(e.Path, "/")
		segments := vfs.SplitPath(strings.TrimSuffix(e.Path, "/"))
		if len(segments) == 0 {
			if isDir {
				continue
			}
			return nil, nil, fmt.Errorf("manifest entry %q has no file name", e.Path)
		}
		if isDir && e.Body != "" {
			return nil, nil, fmt.Errorf("directory entry %q carries content", e.Path)
		}

		parent := root
		for _, seg := range segments[:len(segments)-1] {
			next := parent.Child(seg)
			if next == nil {
				next = vfs.Dir(seg)
				parent.Children = append(parent.Children, next)
			} else if !next.IsDir() {
				return nil, nil, fmt.Errorf("manifest entry %q passes through file %q", e.Path, seg)
			}
			parent = next
		}

		leaf := segments[len(segments)-1]
		if existing := parent.Child(leaf); existing != nil {
			if isDir && existing.IsDir() {
				continue
			}
			return nil, nil, fmt.Errorf("duplicate manifest entry %q", e.Path)
		}
		if isDir {
			parent.Children = append(parent.Children, vfs.Dir(leaf))
			continue
		}
		node := vfs.File(leaf)
		parent.Children = append(parent.Children, node)
	}

	// Rebuild through Root to assign canonical paths, then key content by
	// the paths the tree actually carries.
	root = vfs.Root(root.Children...)
	if err := vfs.Validate(root); err != nil {
		return nil, nil, fmt.Errorf("manifest builds invalid tree: %w", err)
	}

	byName := make(map[string]string)
	for _, e := range entries {
		if !strings.HasSuffix(e.Path, "/") {
			byName[canonical(e.Path)] = e.Body
		}
	}
	vfs.Walk(root, func(n *vfs.Node, depth int) bool {
		if !n.IsDir() {
			bodies[n.Path] = byName[n.Path]
		}
		return true
	})

	return root, content.NewMapStore(bodies), nil
}

// canonical normalizes a manifest path to the form tree nodes carry.
func canonical(p string) string {
	segments := vfs.SplitPath(p)
	if len(segments) == 0 {
		return vfs.RootPath
	}
	return vfs.RootPath + vfs.Separator + strings.Join(segments, vfs.Separator)
}
