package filesystem

import (
	"testing"

	"github.com/brettbedarf/ramvfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeStore_AllocateRoot(t *testing.T) {
	t.Parallel()

	s := newNodeStore(4)
	root, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
	require.NoError(t, err)

	assert.Equal(t, ramvfs.RootIno, root.ino)
	assert.False(t, root.hasParent)
	assert.Equal(t, ramvfs.DefaultDirPerm, root.perm)
	assert.Equal(t, uint32(clockStart), root.created)
	assert.Equal(t, root.created, root.modified)
	assert.Equal(t, 1, s.used())

	t.Run("SecondRootRejected", func(t *testing.T) {
		_, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
		assert.ErrorIs(t, err, ramvfs.ErrExist)
		assert.Equal(t, 1, s.used())
	})
}

func TestNodeStore_AllocateChild(t *testing.T) {
	t.Parallel()

	s := newNodeStore(4)
	root, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
	require.NoError(t, err)

	f, err := s.allocate("a.txt", ramvfs.FileKind, root, fileCaps{})
	require.NoError(t, err)

	assert.Equal(t, ramvfs.Ino(1), f.ino)
	assert.True(t, f.hasParent)
	assert.Equal(t, root.ino, f.parent)
	assert.Equal(t, ramvfs.DefaultFilePerm, f.perm)
	assert.Zero(t, f.length)
	assert.Greater(t, f.created, root.created)
	assert.Equal(t, f.created, f.modified)
}

func TestNodeStore_Full(t *testing.T) {
	t.Parallel()

	s := newNodeStore(2)
	root, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
	require.NoError(t, err)
	_, err = s.allocate("a", ramvfs.FileKind, root, fileCaps{})
	require.NoError(t, err)
	assert.True(t, s.full())

	_, err = s.allocate("b", ramvfs.FileKind, root, fileCaps{})
	assert.ErrorIs(t, err, ramvfs.ErrPoolFull)
	assert.ErrorIs(t, err, ramvfs.ErrCapacityExceeded)
	assert.Equal(t, 2, s.used())

	_, err = s.lookup(2)
	assert.ErrorIs(t, err, ramvfs.ErrNotFound)
}

func TestNodeStore_UniqueInodes(t *testing.T) {
	t.Parallel()

	s := newNodeStore(50)
	root, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
	require.NoError(t, err)

	seen := map[ramvfs.Ino]bool{root.ino: true}
	for range 49 {
		n, err := s.allocate("n", ramvfs.FileKind, root, fileCaps{})
		require.NoError(t, err)
		assert.False(t, seen[n.ino], "inode %d reused", n.ino)
		seen[n.ino] = true

		got, err := s.lookup(n.ino)
		require.NoError(t, err)
		assert.Same(t, n, got)
	}
	assert.Len(t, seen, 50)
}

func TestNodeStore_Lookup(t *testing.T) {
	t.Parallel()

	s := newNodeStore(2)
	_, err := s.lookup(ramvfs.RootIno)
	assert.ErrorIs(t, err, ramvfs.ErrNotFound)

	root, err := s.allocate("", ramvfs.DirKind, nil, dirCaps{})
	require.NoError(t, err)
	got, err := s.lookup(ramvfs.RootIno)
	require.NoError(t, err)
	assert.Same(t, root, got)
}
