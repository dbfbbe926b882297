package filesystem

import (
	"strings"

	"github.com/brettbedarf/ramvfs"
)

const (
	// Separator splits path components
	Separator = "/"

	// MaxNameLen is the longest valid node name in bytes
	MaxNameLen = 127

	reservedChars = "/\\:*?\"<>|"
)

// IsValidName reports whether name may be used for a new node: non-empty, at
// most [MaxNameLen] bytes, not "." or "..", and free of reserved characters.
func IsValidName(name string) bool {
	if name == "" || len(name) > MaxNameLen {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, reservedChars)
}

// resolveLocked walks path from start (or root for absolute paths).
// Any failing component aborts the walk with ErrNotFound.
func (fs *FileSystem) resolveLocked(path string, start *Node) (*Node, error) {
	cur := start
	rest := path
	if strings.HasPrefix(rest, Separator) {
		cur = fs.root
		rest = rest[len(Separator):]
	}

	for _, tok := range strings.Split(rest, Separator) {
		switch tok {
		case "", ".":
			continue
		case "..":
			if cur.hasParent {
				p, err := fs.store.lookup(cur.parent)
				if err != nil {
					return nil, ramvfs.NewError(opResolve, path, ramvfs.ErrNotFound)
				}
				cur = p
			}
		default:
			f, ok := cur.caps.(finder)
			if !ok {
				return nil, ramvfs.NewError(opResolve, path, ramvfs.ErrNotFound)
			}
			next, err := f.find(fs, cur, tok)
			if err != nil {
				return nil, ramvfs.NewError(opResolve, path, ramvfs.ErrNotFound)
			}
			cur = next
		}
	}
	return cur, nil
}

// pathLocked renders n's absolute path by walking parent links to the root
func (fs *FileSystem) pathLocked(n *Node) string {
	var names []string
	for cur := n; cur.hasParent; {
		names = append(names, cur.name)
		p, err := fs.store.lookup(cur.parent)
		if err != nil {
			break
		}
		cur = p
	}
	if len(names) == 0 {
		return Separator
	}

	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(Separator)
		b.WriteString(names[i])
	}
	return b.String()
}
