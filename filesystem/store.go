package filesystem

import (
	"github.com/brettbedarf/ramvfs"
	"github.com/puzpuzpuz/xsync/v4"
)

// clockStart is the first logical timestamp handed out
const clockStart = 1000

// nodeStore is the fixed-capacity node pool. It owns node identity: inodes
// are assigned monotonically and never reused, root always gets inode 0.
type nodeStore struct {
	nodes   []*Node                       // Allocation order
	byIno   *xsync.Map[ramvfs.Ino, *Node] // Inode registry backing lookups
	maxSize int
	nextIno ramvfs.Ino // Next non-root inode to assign
	clock   uint32     // Last logical timestamp handed out
}

func newNodeStore(maxNodes int) *nodeStore {
	return &nodeStore{
		nodes:   make([]*Node, 0, maxNodes),
		byIno:   xsync.NewMap[ramvfs.Ino, *Node](),
		maxSize: maxNodes,
		nextIno: ramvfs.RootIno + 1,
		clock:   clockStart - 1,
	}
}

// tick advances the logical clock
func (s *nodeStore) tick() uint32 {
	s.clock++
	return s.clock
}

func (s *nodeStore) full() bool {
	return len(s.nodes) >= s.maxSize
}

func (s *nodeStore) used() int {
	return len(s.nodes)
}

// allocate appends a new node to the pool. A nil parent allocates the root
// and is only valid for the first allocation. Nothing changes on failure.
func (s *nodeStore) allocate(name string, kind ramvfs.NodeKind, parent *Node, caps capabilities) (*Node, error) {
	if s.full() {
		return nil, ramvfs.ErrPoolFull
	}
	if parent == nil && len(s.nodes) > 0 {
		return nil, ramvfs.ErrExist
	}

	perm := ramvfs.DefaultFilePerm
	if kind == ramvfs.DirKind {
		perm = ramvfs.DefaultDirPerm
	}
	now := s.tick()
	n := &Node{
		name:     name,
		kind:     kind,
		perm:     perm,
		created:  now,
		modified: now,
		caps:     caps,
	}
	if parent == nil {
		n.ino = ramvfs.RootIno
	} else {
		n.ino = s.nextIno
		s.nextIno++
		n.parent = parent.ino
		n.hasParent = true
	}

	s.nodes = append(s.nodes, n)
	s.byIno.Store(n.ino, n)
	return n, nil
}

// lookup resolves an inode to its node
func (s *nodeStore) lookup(ino ramvfs.Ino) (*Node, error) {
	if n, ok := s.byIno.Load(ino); ok {
		return n, nil
	}
	return nil, ramvfs.ErrNotFound
}
