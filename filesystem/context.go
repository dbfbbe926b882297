package filesystem

import "github.com/brettbedarf/ramvfs"

// NodeContext is a read-locked view of one node (plus the filesystem lock it
// holds). Child contexts obtained from it share the parent's lock and must
// not outlive it. Calling NodeContext.Close() unwinds all unlocking/cleanup
// callbacks in reverse order.
//
// Do NOT call any FileSystem method while a context is open; the lock is
// not reentrant.
//
// NOTE: NodeContext itself is **not** thread-safe meaning references
// to it should not be shared between goroutines
type NodeContext struct {
	fs       *FileSystem
	node     *Node
	closeFns []func()
}

// NodeCtx RLocks the filesystem and returns a context for ino.
// Caller is responsible for closing the context when done `defer ctx.Close()`.
func (fs *FileSystem) NodeCtx(ino ramvfs.Ino) (*NodeContext, error) {
	fs.mu.RLock()
	n, err := fs.lookupLocked(ino)
	if err != nil {
		fs.mu.RUnlock()
		return nil, err
	}
	ctx := &NodeContext{fs: fs, node: n}
	ctx.AddClose(fs.mu.RUnlock)
	return ctx, nil
}

// Name returns the node's immutable name
func (ctx *NodeContext) Name() string {
	return ctx.node.name
}

// Info returns a metadata snapshot
func (ctx *NodeContext) Info() ramvfs.NodeInfo {
	return ctx.node.info()
}

// Path renders the node's absolute path
func (ctx *NodeContext) Path() string {
	return ctx.fs.pathLocked(ctx.node)
}

// Backend returns the name of the node's operation bundle
func (ctx *NodeContext) Backend() string {
	return ctx.node.caps.dispatchName()
}

// Children returns contexts for the node's children in insertion order.
// Files have none.
func (ctx *NodeContext) Children() []*NodeContext {
	var children []*NodeContext
	ctx.IterChildren(func(child *NodeContext) {
		children = append(children, child)
	})
	return children
}

// IterChildren calls fn for each child in insertion order
func (ctx *NodeContext) IterChildren(fn func(ctx *NodeContext)) {
	l, ok := ctx.node.caps.(lister)
	if !ok {
		return
	}
	for i := 0; ; i++ {
		e, ok := l.list(ctx.fs, ctx.node, i)
		if !ok {
			return
		}
		child, err := ctx.fs.store.lookup(e.Ino)
		if err != nil {
			continue
		}
		fn(&NodeContext{fs: ctx.fs, node: child})
	}
}

// AddClose pushes a cleanup callback (e.g., unlock) onto the end of the stack.
func (ctx *NodeContext) AddClose(fn func()) {
	ctx.closeFns = append(ctx.closeFns, fn)
}

// Close unwinds all cleanup callbacks in reverse order.
// Safe to call even if ctx is nil or no locks were acquired; it is
// a no-op in those cases, so you can `defer ctx.Close()` unconditionally.
//
// Example:
//
//	ctx, err := fs.NodeCtx(ino)
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
func (ctx *NodeContext) Close() {
	if ctx == nil {
		return
	}
	for i := len(ctx.closeFns) - 1; i >= 0; i-- {
		ctx.closeFns[i]()
	}
	ctx.closeFns = nil
}
