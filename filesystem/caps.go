package filesystem

import (
	"fmt"

	"github.com/brettbedarf/ramvfs"
)

// Operation names used in errors
const (
	opRead    = "read"
	opWrite   = "write"
	opList    = "list"
	opFind    = "find"
	opMkdir   = "mkdir"
	opCreate  = "create"
	opResolve = "resolve"
	opChdir   = "chdir"
	opLookup  = "lookup"
)

// capabilities is the operation bundle attached to a node when it is
// created. Each operation is its own optional interface; a bundle that does
// not implement one simply lacks that capability.
//
// New backing stores are additional bundle types implementing the same
// signatures.
type capabilities interface {
	dispatchName() string
}

type reader interface {
	read(n *Node, off, size uint32) []byte
}

type writer interface {
	write(n *Node, off uint32, p []byte) int
}

type lister interface {
	list(fs *FileSystem, dir *Node, i int) (ramvfs.DirEntry, bool)
}

type finder interface {
	find(fs *FileSystem, dir *Node, name string) (*Node, error)
}

type dirMaker interface {
	mkdir(fs *FileSystem, dir *Node, name string) (*Node, error)
}

type fileCreator interface {
	create(fs *FileSystem, dir *Node, name string, content []byte, caps capabilities) (*Node, error)
}

// span clips [off, off+size) to a node's length
func span(length, off, size uint32) (start, end uint32, ok bool) {
	if off >= length {
		return 0, 0, false
	}
	end = uint32(min(uint64(off)+uint64(size), uint64(length)))
	return off, end, end > off
}

// fileCaps backs regular files with an owned, fixed-length buffer
type fileCaps struct{}

func (fileCaps) dispatchName() string { return "ramdisk" }

func (fileCaps) read(n *Node, off, size uint32) []byte {
	return readContent(n, off, size)
}

// write overwrites in place; the file never grows
func (fileCaps) write(n *Node, off uint32, p []byte) int {
	size := uint32(min(uint64(len(p)), uint64(^uint32(0))))
	start, end, ok := span(n.length, off, size)
	if !ok {
		return 0
	}
	return copy(n.content[start:end], p)
}

// staticCaps backs read-only files whose content is fixed at creation
type staticCaps struct{}

func (staticCaps) dispatchName() string { return "static" }

func (staticCaps) read(n *Node, off, size uint32) []byte {
	return readContent(n, off, size)
}

func readContent(n *Node, off, size uint32) []byte {
	start, end, ok := span(n.length, off, size)
	if !ok {
		return []byte{}
	}
	out := make([]byte, end-start)
	copy(out, n.content[start:end])
	return out
}

// dirCaps backs directories with the directory index
type dirCaps struct{}

func (dirCaps) dispatchName() string { return "ramdisk-dir" }

func (dirCaps) list(fs *FileSystem, dir *Node, i int) (ramvfs.DirEntry, bool) {
	return fs.dirs.at(dir.ino, i)
}

// find resolves through the node store by inode, never by slot
func (dirCaps) find(fs *FileSystem, dir *Node, name string) (*Node, error) {
	e, ok := fs.dirs.lookup(dir.ino, name)
	if !ok {
		return nil, ramvfs.ErrNotFound
	}
	return fs.store.lookup(e.Ino)
}

func (dirCaps) mkdir(fs *FileSystem, dir *Node, name string) (*Node, error) {
	return fs.addChildLocked(dir, name, ramvfs.DirKind, nil, dirCaps{})
}

func (dirCaps) create(fs *FileSystem, dir *Node, name string, content []byte, caps capabilities) (*Node, error) {
	if caps == nil {
		caps = fileCaps{}
	}
	return fs.addChildLocked(dir, name, ramvfs.FileKind, content, caps)
}

// unsupported builds the error for invoking a capability n lacks. When the
// node is of the wrong kind for op the kind error is matchable too.
func unsupported(op string, n *Node) error {
	var kindErr error
	switch op {
	case opRead, opWrite:
		if n.kind != ramvfs.FileKind {
			kindErr = ramvfs.ErrNotFile
		}
	case opList, opFind, opMkdir, opCreate:
		if n.kind != ramvfs.DirKind {
			kindErr = ramvfs.ErrNotDir
		}
	}
	if kindErr != nil {
		return ramvfs.NewError(op, n.name, fmt.Errorf("%w: %w", ramvfs.ErrUnsupported, kindErr))
	}
	return ramvfs.NewError(op, n.name, ramvfs.ErrUnsupported)
}
