package filesystem

import (
	"testing"

	"github.com/brettbedarf/ramvfs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Defaults(t *testing.T) {
	t.Parallel()

	fs := newSeededFS(t)
	s := fs.NewSession()

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.NotEqual(t, s.ID(), fs.NewSession().ID())
	assert.Equal(t, ramvfs.RootIno, s.Cwd())
	assert.Equal(t, "/", s.Path())
}

func TestSession_Chdir(t *testing.T) {
	t.Parallel()

	fs := newSeededFS(t)
	s := fs.NewSession()

	info, err := s.Chdir("documents")
	require.NoError(t, err)
	assert.Equal(t, "documents", info.Name)
	assert.Equal(t, info.Ino, s.Cwd())
	assert.Equal(t, "/documents", s.Path())

	notes, err := s.Resolve("notes.txt")
	require.NoError(t, err)
	viaParent, err := s.Resolve("../documents/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, notes.Ino, viaParent.Ino)

	t.Run("NotADirectory", func(t *testing.T) {
		_, err := s.Chdir("notes.txt")
		assert.ErrorIs(t, err, ramvfs.ErrNotDir)
		assert.Equal(t, info.Ino, s.Cwd())
		assert.Equal(t, "/documents", s.Path())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := s.Chdir("nowhere")
		assert.ErrorIs(t, err, ramvfs.ErrNotFound)
		assert.Equal(t, "/documents", s.Path())
	})

	t.Run("UpToRoot", func(t *testing.T) {
		_, err := s.Chdir("../..")
		require.NoError(t, err)
		assert.Equal(t, ramvfs.RootIno, s.Cwd())
		assert.Equal(t, "/", s.Path())
	})
}

func TestSession_SetCurrent(t *testing.T) {
	t.Parallel()

	fs := newSeededFS(t)
	s := fs.NewSession()

	_, err := fs.AddDirNode(&ramvfs.DirCreateRequest{NodeRequest: ramvfs.NodeRequest{Path: "/a/b"}})
	require.NoError(t, err)
	b := mustResolve(t, fs, "/a/b")

	require.NoError(t, s.SetCurrent(b.Ino))
	assert.Equal(t, "/a/b", s.Path())

	readme := mustResolve(t, fs, "/readme.txt")
	assert.ErrorIs(t, s.SetCurrent(readme.Ino), ramvfs.ErrNotDir)
	assert.ErrorIs(t, s.SetCurrent(999), ramvfs.ErrNotFound)
	assert.Equal(t, b.Ino, s.Cwd())
	assert.Equal(t, "/a/b", s.Path())
}
