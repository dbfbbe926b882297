package filesystem

import (
	"context"
	"path"
	"strings"

	"github.com/brettbedarf/ramvfs"
)

// splitRequestPath cleans a request path relative to root and splits it into
// its components. Root itself yields no components.
func splitRequestPath(p string) []string {
	p = strings.Trim(path.Clean(Separator+p), Separator)
	if p == "" {
		return nil
	}
	return strings.Split(p, Separator)
}

// AddDirNode creates every missing directory along the request's path,
// starting at root, and returns the leaf. It is equivalent to `mkdir -p`:
// existing directories are reused and an existing leaf is not an error.
// Perms apply only to directories this call creates.
//
// A failure part way leaves the directories created before it in place.
func (fs *FileSystem) AddDirNode(req *ramvfs.DirCreateRequest) (ramvfs.NodeInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.addDirsLocked(splitRequestPath(req.Path), req.Perms)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	return n.info(), nil
}

func (fs *FileSystem) addDirsLocked(names []string, perms ramvfs.Perm) (*Node, error) {
	cur := fs.root
	for _, name := range names {
		if e, ok := fs.dirs.lookup(cur.ino, name); ok {
			if e.Kind != ramvfs.DirKind {
				return nil, ramvfs.NewError(opMkdir, fs.pathLocked(cur)+Separator+name, ramvfs.ErrNotDir)
			}
			next, err := fs.lookupLocked(e.Ino)
			if err != nil {
				return nil, err
			}
			cur = next
			continue
		}

		next, err := fs.mkdirLocked(cur.ino, name)
		if err != nil {
			return nil, err
		}
		if perms != 0 {
			next.perm = perms
		}
		cur = next
	}
	return cur, nil
}

// AddFileNode creates a file at the request's path, creating any missing
// parent directories, and returns it. Content is fetched from the request's
// Source before anything is created; read-only sources produce static files.
// An existing node at the path is an error.
func (fs *FileSystem) AddFileNode(ctx context.Context, req *ramvfs.FileCreateRequest) (ramvfs.NodeInfo, error) {
	names := splitRequestPath(req.Path)
	if len(names) == 0 {
		return ramvfs.NodeInfo{}, ramvfs.NewError(opCreate, req.Path, ramvfs.ErrExist)
	}
	name := names[len(names)-1]
	if !IsValidName(name) {
		return ramvfs.NodeInfo{}, ramvfs.NewError(opCreate, req.Path, ramvfs.ErrInvalidName)
	}

	var content []byte
	var caps capabilities = fileCaps{}
	if req.Source != nil {
		// Fetch without holding the lock; sources may block on the network
		data, err := req.Source.Content(ctx)
		if err != nil {
			return ramvfs.NodeInfo{}, ramvfs.NewError(opCreate, req.Path, err)
		}
		content = data
		if req.Source.ReadOnly() {
			caps = staticCaps{}
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, err := fs.addDirsLocked(names[:len(names)-1], 0)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	n, err := fs.createLocked(parent.ino, name, content, caps)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	if req.Perms != 0 {
		n.perm = req.Perms
	}
	return n.info(), nil
}

// WalkFunc is called for each node visited by [FileSystem.Walk]. Depth is 0
// for the starting node. Returning an error stops the walk.
type WalkFunc func(depth int, info ramvfs.NodeInfo) error

// Walk visits ino and everything below it depth first, children in insertion
// order. The tree is snapshotted first, so fn may call back into the
// filesystem.
func (fs *FileSystem) Walk(ino ramvfs.Ino, fn WalkFunc) error {
	type visit struct {
		depth int
		info  ramvfs.NodeInfo
	}

	ctx, err := fs.NodeCtx(ino)
	if err != nil {
		return err
	}
	var visits []visit
	var walk func(nc *NodeContext, depth int)
	walk = func(nc *NodeContext, depth int) {
		visits = append(visits, visit{depth: depth, info: nc.Info()})
		nc.IterChildren(func(child *NodeContext) {
			walk(child, depth+1)
		})
	}
	walk(ctx, 0)
	ctx.Close()

	for _, v := range visits {
		if err := fn(v.depth, v.info); err != nil {
			return err
		}
	}
	return nil
}
