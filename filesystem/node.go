package filesystem

import "github.com/brettbedarf/ramvfs"

// Node is a file or directory record in the node pool. Parent links are
// inode handles, never pointers; the pool owns every node uniformly.
//
// All fields are guarded by the owning FileSystem's lock.
type Node struct {
	name      string // Immutable once allocated
	ino       ramvfs.Ino
	kind      ramvfs.NodeKind
	perm      ramvfs.Perm
	length    uint32
	created   uint32
	modified  uint32
	content   []byte // Owned buffer; nil for directories and empty files
	parent    ramvfs.Ino
	hasParent bool
	caps      capabilities // Operation bundle attached at creation
}

func (n *Node) isDir() bool {
	return n.kind == ramvfs.DirKind
}

// info returns a metadata snapshot that shares nothing with the node
func (n *Node) info() ramvfs.NodeInfo {
	return ramvfs.NodeInfo{
		Name:      n.name,
		Ino:       n.ino,
		Kind:      n.kind,
		Perm:      n.perm,
		Length:    n.length,
		Created:   n.created,
		Modified:  n.modified,
		Parent:    n.parent,
		HasParent: n.hasParent,
	}
}
