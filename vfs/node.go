// Package vfs defines the virtual filesystem model: an immutable tree of
// named nodes describing the whole site's browsable content. The tree is the
// single source of navigational truth; it is built once from static
// definitions and never mutated in place (a content refresh rebuilds the
// whole tree and swaps it out).
package vfs

import (
	"fmt"
	"strings"
	"time"
)

// RootPath is the canonical path of the tree root.
const RootPath = "~"

// Separator joins path segments.
const Separator = "/"

// NodeType distinguishes files from directories. A node is exactly one of
// the two, never both.
type NodeType int

const (
	TypeFile NodeType = iota
	TypeDir
)

func (t NodeType) String() string {
	if t == TypeDir {
		return "directory"
	}
	return "file"
}

// Meta carries advisory node metadata. It is never load-bearing for
// navigation; a nil Meta is always valid.
type Meta struct {
	Size    int64
	ModTime time.Time
	MIME    string
}

// Node is one entry in the virtual tree.
//
// Path is the fully-qualified canonical path from the root ("~"), always
// derivable by joining ancestor names with "/". Children is non-nil
// (possibly empty) iff Type is TypeDir.
type Node struct {
	Name     string
	Type     NodeType
	Path     string
	Children []*Node
	Meta     *Meta
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Type == TypeDir
}

// Child returns the direct child with the given name, or nil.
// Comparison is exact-string and case-sensitive.
func (n *Node) Child(name string) *Node {
	if n == nil || n.Type != TypeDir {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// File constructs a file node. The path is assigned when the node is
// attached to a tree via Root or Dir.
func File(name string) *Node {
	return &Node{Name: name, Type: TypeFile}
}

// FileMeta constructs a file node carrying advisory metadata.
func FileMeta(name string, meta Meta) *Node {
	m := meta
	return &Node{Name: name, Type: TypeFile, Meta: &m}
}

// Dir constructs a directory node with the given children.
func Dir(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Type: TypeDir, Children: children}
}

// Root assembles a complete tree from the given children, assigning the
// canonical path to every node. The returned root has Name and Path "~".
func Root(children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	root := &Node{Name: RootPath, Type: TypeDir, Path: RootPath, Children: children}
	for _, c := range children {
		assignPaths(c, RootPath)
	}
	return root
}

// assignPaths sets Path on node and all descendants relative to parentPath.
func assignPaths(node *Node, parentPath string) {
	node.Path = parentPath + Separator + node.Name
	for _, c := range node.Children {
		assignPaths(c, node.Path)
	}
}

// Validate checks the tree invariants: the root path is "~", every node's
// path is derivable from its ancestors, sibling names are unique and
// non-empty, and files carry no children.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("vfs: nil root")
	}
	if root.Path != RootPath || root.Type != TypeDir {
		return fmt.Errorf("vfs: root must be the %q directory, got %q (%s)", RootPath, root.Path, root.Type)
	}
	return validateNode(root)
}

func validateNode(node *Node) error {
	if node.Type == TypeFile && len(node.Children) > 0 {
		return fmt.Errorf("vfs: file %q has children", node.Path)
	}
	seen := make(map[string]bool, len(node.Children))
	for _, c := range node.Children {
		if c.Name == "" || strings.Contains(c.Name, Separator) {
			return fmt.Errorf("vfs: invalid node name %q under %q", c.Name, node.Path)
		}
		if seen[c.Name] {
			return fmt.Errorf("vfs: duplicate sibling %q under %q", c.Name, node.Path)
		}
		seen[c.Name] = true
		want := node.Path + Separator + c.Name
		if c.Path != want {
			return fmt.Errorf("vfs: node %q has path %q, want %q", c.Name, c.Path, want)
		}
		if err := validateNode(c); err != nil {
			return err
		}
	}
	return nil
}

// SplitPath breaks an absolute path into its segments, dropping the leading
// root sentinel and any empty segments produced by doubled or leading
// slashes. SplitPath("~") and SplitPath("/") both return nil.
func SplitPath(path string) []string {
	path = strings.TrimPrefix(path, RootPath)
	var segs []string
	for _, s := range strings.Split(path, Separator) {
		if s == "" {
			continue
		}
		segs = append(segs, s)
	}
	return segs
}

// FindByPath descends from root one segment at a time and returns the node
// at path. The second return is false as soon as any segment has no matching
// child; no error is ever raised. Matching is exact-string and
// case-sensitive with no glob support.
func FindByPath(root *Node, path string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	node := root
	for _, seg := range SplitPath(path) {
		node = node.Child(seg)
		if node == nil {
			return nil, false
		}
	}
	return node, true
}

// Walk visits node and all descendants in depth-first source order. The
// callback receives each node's depth (root = 0). Returning false stops the
// descent below that node.
func Walk(node *Node, fn func(n *Node, depth int) bool) {
	walk(node, 0, fn)
}

func walk(node *Node, depth int, fn func(n *Node, depth int) bool) {
	if node == nil || !fn(node, depth) {
		return
	}
	for _, c := range node.Children {
		walk(c, depth+1, fn)
	}
}
