package filesystem

import (
	"github.com/brettbedarf/ramvfs"
	"github.com/google/uuid"
)

// Session tracks a caller's current directory for relative path resolution.
//
// NOTE: Session itself is **not** thread-safe; give each caller its own.
type Session struct {
	fs   *FileSystem
	id   uuid.UUID
	cwd  ramvfs.Ino
	path string // Derived from cwd; only SetCurrent changes either
}

// NewSession starts a session at the root directory
func (fs *FileSystem) NewSession() *Session {
	return &Session{
		fs:   fs,
		id:   uuid.New(),
		cwd:  ramvfs.RootIno,
		path: Separator,
	}
}

// ID identifies the session in logs
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Cwd returns the current directory's inode
func (s *Session) Cwd() ramvfs.Ino {
	return s.cwd
}

// Path returns the current directory as an absolute path
func (s *Session) Path() string {
	return s.path
}

// SetCurrent makes ino the current directory. Only directories are accepted;
// the session is unchanged on error.
func (s *Session) SetCurrent(ino ramvfs.Ino) error {
	s.fs.mu.RLock()
	defer s.fs.mu.RUnlock()

	n, err := s.fs.store.lookup(ino)
	if err != nil {
		return ramvfs.NewError(opChdir, "", err)
	}
	if !n.isDir() {
		return ramvfs.NewError(opChdir, n.name, ramvfs.ErrNotDir)
	}
	s.cwd = n.ino
	s.path = s.fs.pathLocked(n)
	return nil
}

// Resolve resolves path relative to the current directory
func (s *Session) Resolve(path string) (ramvfs.NodeInfo, error) {
	return s.fs.Resolve(path, s.cwd)
}

// Chdir resolves path and makes it the current directory
func (s *Session) Chdir(path string) (ramvfs.NodeInfo, error) {
	info, err := s.Resolve(path)
	if err != nil {
		return ramvfs.NodeInfo{}, err
	}
	if err := s.SetCurrent(info.Ino); err != nil {
		return ramvfs.NodeInfo{}, ramvfs.NewError(opChdir, path, ramvfs.ErrNotDir)
	}
	return info, nil
}
