package filesystem

import (
	"math"
	"sync"

	"github.com/brettbedarf/ramvfs"
	"github.com/brettbedarf/ramvfs/config"
	"github.com/brettbedarf/ramvfs/internal/arena"
)

// FileSystem owns the node pool and directory index. Every exported method is
// atomic under a single lock; unexported *Locked helpers assume it is held.
type FileSystem struct {
	cfg   *config.Config
	store *nodeStore
	dirs  *dirIndex
	alloc ramvfs.Allocator
	root  *Node
	mu    sync.RWMutex
}

// NewFS builds an empty filesystem holding only the root directory.
// A nil alloc gets an arena sized by cfg.ArenaSize.
func NewFS(cfg *config.Config, alloc ramvfs.Allocator) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if alloc == nil {
		alloc = arena.New(cfg.ArenaSize)
	}

	fs := &FileSystem{
		cfg:   cfg,
		store: newNodeStore(cfg.MaxNodes),
		dirs:  newDirIndex(cfg.MaxDirEntries),
		alloc: alloc,
	}
	root, err := fs.store.allocate("", ramvfs.DirKind, nil, dirCaps{})
	if err != nil {
		// Only reachable with a zero capacity pool, which Validate rejects
		panic("filesystem: cannot allocate root: " + err.Error())
	}
	fs.dirs.init(root.ino)
	fs.root = root
	return fs
}

// addChildLocked is the single creation path for every node below root.
// All checks run before anything is allocated so a failure leaves no trace.
func (fs *FileSystem) addChildLocked(dir *Node, name string, kind ramvfs.NodeKind, content []byte, caps capabilities) (*Node, error) {
	op := opCreate
	if kind == ramvfs.DirKind {
		op = opMkdir
	}

	if !IsValidName(name) {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrInvalidName)
	}
	if !dir.isDir() {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrNotDir)
	}
	if _, exists := fs.dirs.lookup(dir.ino, name); exists {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrExist)
	}
	if !fs.dirs.hasRoom(dir.ino) {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrDirFull)
	}
	if fs.store.full() {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrPoolFull)
	}
	if len(content) > math.MaxUint32 {
		return nil, ramvfs.NewError(op, name, ramvfs.ErrNoMemory)
	}

	var buf []byte
	if len(content) > 0 {
		b, err := fs.alloc.Alloc(len(content))
		if err != nil {
			return nil, ramvfs.NewError(op, name, err)
		}
		buf = b[:copy(b, content)]
	}

	n, err := fs.store.allocate(name, kind, dir, caps)
	if err != nil {
		if buf != nil {
			fs.alloc.Free(buf)
		}
		return nil, ramvfs.NewError(op, name, err)
	}
	n.content = buf
	n.length = uint32(len(buf))

	// Cannot fail: duplicates and room were checked above
	if err := fs.dirs.addEntry(dir.ino, name, n.ino, kind); err != nil {
		return nil, ramvfs.NewError(op, name, err)
	}
	if kind == ramvfs.DirKind {
		fs.dirs.init(n.ino)
	}
	return n, nil
}

func (fs *FileSystem) lookupLocked(ino ramvfs.Ino) (*Node, error) {
	n, err := fs.store.lookup(ino)
	if err != nil {
		return nil, ramvfs.NewError(opLookup, "", err)
	}
	return n, nil
}

// Config returns the configuration the filesystem was built with
func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

// Allocator returns the content buffer allocator
func (fs *FileSystem) Allocator() ramvfs.Allocator {
	return fs.alloc
}

// Root returns the root directory's metadata
func (fs *FileSystem) Root() ramvfs.NodeInfo {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.root.info()
}

// Lookup returns a snapshot of the node with the given inode
func (fs *FileSystem) Lookup(ino ramvfs.Ino) (ramvfs.NodeInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(ino)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	return n.info(), nil
}

// TypeName returns the kind name of a node, e.g. "file" or "directory"
func (fs *FileSystem) TypeName(ino ramvfs.Ino) (string, error) {
	info, err := fs.Lookup(ino)
	if err != nil {
		return "", err
	}
	return info.Kind.String(), nil
}

// Backend returns the name of the operation bundle serving a node
func (fs *FileSystem) Backend(ino ramvfs.Ino) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(ino)
	if err != nil {
		return "", err
	}
	return n.caps.dispatchName(), nil
}

// Read returns a copy of up to size bytes starting at off. Reads at or past
// the end of the file return an empty slice.
func (fs *FileSystem) Read(ino ramvfs.Ino, off, size uint32) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(ino)
	if err != nil {
		return nil, err
	}
	r, ok := n.caps.(reader)
	if !ok {
		return nil, unsupported(opRead, n)
	}
	return r.read(n, off, size), nil
}

// Write overwrites existing bytes starting at off and returns how many were
// written. Files never grow; writes at or past the end write nothing.
func (fs *FileSystem) Write(ino ramvfs.Ino, off uint32, p []byte) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.lookupLocked(ino)
	if err != nil {
		return 0, err
	}
	w, ok := n.caps.(writer)
	if !ok {
		return 0, unsupported(opWrite, n)
	}
	written := w.write(n, off, p)
	if written > 0 {
		n.modified = fs.store.tick()
	}
	return written, nil
}

// ListAt returns the i-th entry of a directory. It reports false once i is
// past the last entry; calls have no side effects.
func (fs *FileSystem) ListAt(dir ramvfs.Ino, i int) (ramvfs.DirEntry, bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(dir)
	if err != nil {
		return ramvfs.DirEntry{}, false, err
	}
	l, ok := n.caps.(lister)
	if !ok {
		return ramvfs.DirEntry{}, false, unsupported(opList, n)
	}
	e, more := l.list(fs, n, i)
	return e, more, nil
}

// Entries returns every entry of a directory in insertion order
func (fs *FileSystem) Entries(dir ramvfs.Ino) ([]ramvfs.DirEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(dir)
	if err != nil {
		return nil, err
	}
	return fs.entriesLocked(n)
}

func (fs *FileSystem) entriesLocked(n *Node) ([]ramvfs.DirEntry, error) {
	l, ok := n.caps.(lister)
	if !ok {
		return nil, unsupported(opList, n)
	}
	var out []ramvfs.DirEntry
	for i := 0; ; i++ {
		e, ok := l.list(fs, n, i)
		if !ok {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// Find looks up an immediate child of dir by exact name
func (fs *FileSystem) Find(dir ramvfs.Ino, name string) (ramvfs.NodeInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(dir)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	f, ok := n.caps.(finder)
	if !ok {
		return ramvfs.NodeInfo{}, unsupported(opFind, n)
	}
	child, err := f.find(fs, n, name)
	if err != nil {
		return ramvfs.NodeInfo{}, ramvfs.NewError(opFind, name, err)
	}
	return child.info(), nil
}

// Mkdir creates an empty directory named name under dir
func (fs *FileSystem) Mkdir(dir ramvfs.Ino, name string) (ramvfs.NodeInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.mkdirLocked(dir, name)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	return n.info(), nil
}

func (fs *FileSystem) mkdirLocked(dir ramvfs.Ino, name string) (*Node, error) {
	parent, err := fs.lookupLocked(dir)
	if err != nil {
		return nil, err
	}
	m, ok := parent.caps.(dirMaker)
	if !ok {
		return nil, unsupported(opMkdir, parent)
	}
	return m.mkdir(fs, parent, name)
}

// CreateFile creates a writable file under dir. The file's length is fixed
// at len(content) for its lifetime.
func (fs *FileSystem) CreateFile(dir ramvfs.Ino, name string, content []byte) (ramvfs.NodeInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.createLocked(dir, name, content, fileCaps{})
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	return n.info(), nil
}

func (fs *FileSystem) createLocked(dir ramvfs.Ino, name string, content []byte, caps capabilities) (*Node, error) {
	parent, err := fs.lookupLocked(dir)
	if err != nil {
		return nil, err
	}
	c, ok := parent.caps.(fileCreator)
	if !ok {
		return nil, unsupported(opCreate, parent)
	}
	return c.create(fs, parent, name, content, caps)
}

// Resolve turns path into a node. Relative paths start at from, which must
// exist.
func (fs *FileSystem) Resolve(path string, from ramvfs.Ino) (ramvfs.NodeInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	start, err := fs.store.lookup(from)
	if err != nil {
		return ramvfs.NodeInfo{}, ramvfs.NewError(opResolve, path, ramvfs.ErrNotFound)
	}
	n, err := fs.resolveLocked(path, start)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	return n.info(), nil
}

// PathOf renders the absolute path of a node
func (fs *FileSystem) PathOf(ino ramvfs.Ino) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	n, err := fs.lookupLocked(ino)
	if err != nil {
		return "", err
	}
	return fs.pathLocked(n), nil
}

// Stats tallies the node pool. FreeSpace is the unused slot count times
// Config.FreeSpaceUnit and says nothing about content bytes.
func (fs *FileSystem) Stats() ramvfs.Stats {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	st := ramvfs.Stats{
		UsedNodes: fs.store.used(),
		MaxNodes:  fs.store.maxSize,
	}
	for _, n := range fs.store.nodes {
		switch n.kind {
		case ramvfs.FileKind:
			st.TotalFiles++
			st.TotalBytes += uint64(n.length)
		case ramvfs.DirKind:
			st.TotalDirectories++
		}
	}
	if free := st.MaxNodes - st.UsedNodes; free > 0 {
		st.FreeSpace = uint64(free) * uint64(fs.cfg.FreeSpaceUnit)
	}
	return st
}
