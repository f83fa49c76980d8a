// Package nav implements the navigation engine: the per-session cursor over
// the virtual filesystem tree. It resolves the three supported path forms
// (absolute with root sentinel, absolute with raw slash, relative), keeps a
// bounded history of visited directories, and formats directory listings.
package nav

import (
	"errors"
	"strings"

	"termfolio/vfs"
)

// Navigation errors, reported verbatim to the user.
var (
	ErrNotFound = errors.New("no such file or directory")
	ErrNotDir   = errors.New("not a directory")
)

// maxHistory bounds the visited-path history; oldest entries are trimmed.
const maxHistory = 100

// Entry is one row of a directory listing.
type Entry struct {
	Name string
	Type vfs.NodeType
	Icon string
	// Display is the name as shown in listings: directories carry a
	// trailing separator.
	Display string
}

// Navigator holds a session's navigation state: the current directory path
// and the history of visited directories. The current path always resolves
// to an existing directory node; every transition is validated before it is
// committed.
type Navigator struct {
	tree        *vfs.Node
	currentPath string
	history     []string
}

// New creates a Navigator positioned at startDir. If startDir is empty or
// does not resolve to a directory, the navigator starts at the root.
func New(tree *vfs.Node, startDir string) *Navigator {
	n := &Navigator{
		tree:        tree,
		currentPath: vfs.RootPath,
		history:     []string{vfs.RootPath},
	}
	if startDir != "" && startDir != vfs.RootPath {
		if node, ok := vfs.FindByPath(tree, startDir); ok && node.IsDir() {
			n.currentPath = node.Path
			n.appendHistory(node.Path)
		}
	}
	return n
}

// CurrentPath returns the session's current directory path.
func (n *Navigator) CurrentPath() string {
	return n.currentPath
}

// History returns a copy of the visited-directory history, oldest first.
func (n *Navigator) History() []string {
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// Tree returns the filesystem tree the navigator operates on.
func (n *Navigator) Tree() *vfs.Node {
	return n.tree
}

// Rebase swaps in a freshly built tree (content refresh). The current path
// is kept when it still resolves to a directory in the new tree; otherwise
// the navigator resets to the root.
func (n *Navigator) Rebase(tree *vfs.Node) {
	n.tree = tree
	if node, ok := vfs.FindByPath(tree, n.currentPath); !ok || !node.IsDir() {
		n.currentPath = vfs.RootPath
		n.appendHistory(vfs.RootPath)
	}
}

// ResolvePath turns a path argument into a canonical absolute path against
// current. It centralizes the path-form rules so cd, cat, view, ls, and
// completion all agree:
//
//   - "~" alone resolves to the root
//   - a leading "~/" or "/" makes the path absolute
//   - anything else is relative to current
//
// "." segments are dropped and ".." segments pop one level, clamped at the
// root (going above the root is a no-op, not an error).
func ResolvePath(input, current string) string {
	input = strings.TrimSpace(input)

	var base []string
	switch {
	case input == vfs.RootPath || input == "/" || input == "":
		return vfs.RootPath
	case strings.HasPrefix(input, vfs.RootPath+vfs.Separator) || strings.HasPrefix(input, vfs.Separator):
		base = nil
	default:
		base = vfs.SplitPath(current)
	}

	for _, seg := range vfs.SplitPath(input) {
		switch seg {
		case ".":
		case "..":
			if len(base) > 0 {
				base = base[:len(base)-1]
			}
		default:
			base = append(base, seg)
		}
	}

	if len(base) == 0 {
		return vfs.RootPath
	}
	return vfs.RootPath + vfs.Separator + strings.Join(base, vfs.Separator)
}

// Navigate changes the current directory to target. The candidate path is
// resolved with ResolvePath and committed only after verifying that it
// exists and is a directory; on error the navigator's state is unchanged.
// The new path is appended to history unless it equals the current top
// entry.
func (n *Navigator) Navigate(target string) (string, error) {
	candidate := ResolvePath(target, n.currentPath)

	node, ok := vfs.FindByPath(n.tree, candidate)
	if !ok {
		return "", ErrNotFound
	}
	if !node.IsDir() {
		return "", ErrNotDir
	}

	n.currentPath = node.Path
	n.appendHistory(node.Path)
	return node.Path, nil
}

// Reset returns the navigator to the root.
func (n *Navigator) Reset() {
	n.currentPath = vfs.RootPath
	n.appendHistory(vfs.RootPath)
}

// appendHistory records path, skipping consecutive duplicates and trimming
// the oldest entries beyond the cap.
func (n *Navigator) appendHistory(path string) {
	if len(n.history) > 0 && n.history[len(n.history)-1] == path {
		return
	}
	n.history = append(n.history, path)
	if len(n.history) > maxHistory {
		n.history = n.history[len(n.history)-maxHistory:]
	}
}

// List returns the listing for path ("" lists the current directory).
// Directories come before files; within each group the tree's source order
// is preserved. Listing a file path returns that single entry; listing a
// missing path is ErrNotFound; an empty directory yields an empty slice.
func (n *Navigator) List(path string) ([]Entry, error) {
	target := n.currentPath
	if path != "" {
		target = ResolvePath(path, n.currentPath)
	}

	node, ok := vfs.FindByPath(n.tree, target)
	if !ok {
		return nil, ErrNotFound
	}

	if !node.IsDir() {
		return []Entry{entryFor(node)}, nil
	}

	entries := make([]Entry, 0, len(node.Children))
	for _, c := range node.Children {
		if c.IsDir() {
			entries = append(entries, entryFor(c))
		}
	}
	for _, c := range node.Children {
		if !c.IsDir() {
			entries = append(entries, entryFor(c))
		}
	}
	return entries, nil
}

func entryFor(node *vfs.Node) Entry {
	if node.IsDir() {
		return Entry{
			Name:    node.Name,
			Type:    vfs.TypeDir,
			Icon:    DirIcon,
			Display: node.Name + vfs.Separator,
		}
	}
	return Entry{
		Name:    node.Name,
		Type:    vfs.TypeFile,
		Icon:    FileIcon(node.Name),
		Display: node.Name,
	}
}
