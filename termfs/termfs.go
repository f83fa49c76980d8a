// Package termfs exposes the portfolio tree as a read-only FUSE
// filesystem, so the same content browsed in the terminal UI can be
// explored with ordinary shell tools.
//
// Directories come straight from the virtual tree; file contents are
// fetched through a content.Store on open, which keeps the mount in sync
// with whatever cache policy the store applies.
package termfs

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"termfolio/content"
	"termfolio/vfs"
)

// Config controls mount behavior.
type Config struct {
	// StartTime is used for all timestamps. If zero, time.Now() is used.
	StartTime time.Time

	// CacheTimeout sets the kernel cache timeout for entry/attr lookups.
	// The tree is immutable between refreshes, so a generous timeout is
	// safe.
	CacheTimeout time.Duration
}

func (c *Config) startTime() time.Time {
	if c == nil || c.StartTime.IsZero() {
		return time.Now()
	}
	return c.StartTime
}

func (c *Config) cacheTimeout() time.Duration {
	if c == nil {
		return 0
	}
	return c.CacheTimeout
}

// NewRoot returns the root FUSE node for a validated tree.
func NewRoot(tree *vfs.Node, store content.Store, config *Config) (fs.InodeEmbedder, error) {
	if err := vfs.Validate(tree); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	return &dirNode{node: tree, store: store, config: config}, nil
}

// Mount mounts the tree at mountpoint and returns the server. The caller
// unmounts with server.Unmount and waits with server.Wait.
func Mount(mountpoint string, tree *vfs.Node, store content.Store, config *Config) (*fuse.Server, error) {
	root, err := NewRoot(tree, store, config)
	if err != nil {
		return nil, err
	}
	timeout := config.cacheTimeout()
	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName: "termfolio",
			Name:   "termfolio",
		},
	}
	if timeout > 0 {
		opts.EntryTimeout = &timeout
		opts.AttrTimeout = &timeout
	}
	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	return server, nil
}

func setTimestamps(attr *fuse.Attr, t time.Time) {
	attr.Atime = uint64(t.Unix())
	attr.Atimensec = uint32(t.Nanosecond())
	attr.Mtime = uint64(t.Unix())
	attr.Mtimensec = uint32(t.Nanosecond())
	attr.Ctime = uint64(t.Unix())
	attr.Ctimensec = uint32(t.Nanosecond())
}

// --- dirNode: tree directory ---

type dirNode struct {
	fs.Inode
	node   *vfs.Node
	store  content.Store
	config *Config
}

var _ = (fs.NodeLookuper)((*dirNode)(nil))
var _ = (fs.NodeReaddirer)((*dirNode)(nil))
var _ = (fs.NodeGetattrer)((*dirNode)(nil))

func (n *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	child := n.node.Child(name)
	if child == nil {
		return nil, syscall.ENOENT
	}

	embedder := n.newChild(child)
	n.setEntryCache(out, child)
	return n.NewInode(ctx, embedder, fs.StableAttr{Mode: nodeMode(child)}), 0
}

func (n *dirNode) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	entries := make([]fuse.DirEntry, 0, len(n.node.Children))
	for _, child := range n.node.Children {
		entries = append(entries, fuse.DirEntry{
			Name: child.Name,
			Mode: nodeMode(child),
		})
	}
	return fs.NewListDirStream(entries), 0
}

func (n *dirNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFDIR | 0555
	setTimestamps(&out.Attr, n.config.startTime())
	if timeout := n.config.cacheTimeout(); timeout > 0 {
		out.SetTimeout(timeout)
	}
	return 0
}

func (n *dirNode) newChild(child *vfs.Node) fs.InodeEmbedder {
	if child.IsDir() {
		return &dirNode{node: child, store: n.store, config: n.config}
	}
	return &fileNode{node: child, store: n.store, config: n.config}
}

// setEntryCache populates the cached attrs alongside the timeouts so the
// kernel never caches zero-valued attrs.
func (n *dirNode) setEntryCache(out *fuse.EntryOut, child *vfs.Node) {
	timeout := n.config.cacheTimeout()
	if timeout <= 0 {
		return
	}
	out.SetEntryTimeout(timeout)
	out.SetAttrTimeout(timeout)
	if child.IsDir() {
		out.Attr.Mode = fuse.S_IFDIR | 0555
	} else {
		out.Attr.Mode = fuse.S_IFREG | 0444
		out.Attr.Size = advisorySize(child)
	}
	setTimestamps(&out.Attr, n.config.startTime())
}

// --- fileNode: tree file backed by the content store ---

type fileNode struct {
	fs.Inode
	node   *vfs.Node
	store  content.Store
	config *Config
}

var _ = (fs.NodeOpener)((*fileNode)(nil))
var _ = (fs.NodeReader)((*fileNode)(nil))
var _ = (fs.NodeGetattrer)((*fileNode)(nil))

// fileHandle pins the bytes fetched at open time so reads at different
// offsets see one consistent snapshot.
type fileHandle struct {
	data []byte
}

func (n *fileNode) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	data, err := n.store.Fetch(n.node.Path)
	if err != nil {
		if err == content.ErrNotFound {
			return nil, 0, syscall.ENOENT
		}
		return nil, 0, syscall.EIO
	}
	return &fileHandle{data: data}, fuse.FOPEN_DIRECT_IO, 0
}

func (n *fileNode) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	h, ok := f.(*fileHandle)
	if !ok {
		return nil, syscall.EBADF
	}
	return fuse.ReadResultData(readAt(h.data, dest, off)), 0
}

func (n *fileNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFREG | 0444
	if h, ok := f.(*fileHandle); ok {
		out.Size = uint64(len(h.data))
	} else {
		out.Size = advisorySize(n.node)
	}
	setTimestamps(&out.Attr, n.config.startTime())
	if timeout := n.config.cacheTimeout(); timeout > 0 {
		out.SetTimeout(timeout)
	}
	return 0
}

// --- helpers ---

// advisorySize returns the metadata size hint, or 0 when the node carries
// no metadata. Meta is advisory and usually nil for built-in site files.
func advisorySize(n *vfs.Node) uint64 {
	if n.Meta == nil {
		return 0
	}
	return uint64(n.Meta.Size)
}

func nodeMode(n *vfs.Node) uint32 {
	if n.IsDir() {
		return fuse.S_IFDIR
	}
	return fuse.S_IFREG
}

// readAt returns the portion of data that fits in dest starting at off.
func readAt(data, dest []byte, off int64) []byte {
	if off >= int64(len(data)) {
		return nil
	}
	end := off + int64(len(dest))
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[off:end]
}
