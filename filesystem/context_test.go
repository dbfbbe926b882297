package filesystem

import (
	"errors"
	"testing"

	"github.com/brettbedarf/ramvfs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_NodeCtx(t *testing.T) {
	t.Parallel()

	fs := newSeededFS(t)

	t.Run("ExistingNode", func(t *testing.T) {
		ctx, err := fs.NodeCtx(ramvfs.RootIno)
		require.NoError(t, err)
		defer ctx.Close()

		assert.Equal(t, fs.root, ctx.node)
		assert.Equal(t, "/", ctx.Path())
		assert.Equal(t, "ramdisk-dir", ctx.Backend())

		names := []string{}
		for _, child := range ctx.Children() {
			names = append(names, child.Name())
		}
		assert.Equal(t, []string{"readme.txt", "hello.txt", "system.info", "documents", "bin"}, names)
	})

	t.Run("NonExistentNode", func(t *testing.T) {
		ctx, err := fs.NodeCtx(999)
		assert.ErrorIs(t, err, ramvfs.ErrNotFound)
		assert.Nil(t, ctx)
		// Nil contexts close safely
		ctx.Close()
	})

	t.Run("FileHasNoChildren", func(t *testing.T) {
		ctx, err := fs.NodeCtx(1)
		require.NoError(t, err)
		defer ctx.Close()
		assert.Empty(t, ctx.Children())
	})

	t.Run("ReleasesLock", func(t *testing.T) {
		ctx, err := fs.NodeCtx(ramvfs.RootIno)
		require.NoError(t, err)
		ctx.Close()
		ctx.Close()

		_, err = fs.Mkdir(ramvfs.RootIno, "after-close")
		require.NoError(t, err)
	})
}

func TestFileSystem_Walk(t *testing.T) {
	t.Parallel()

	fs := newSeededFS(t)

	type visit struct {
		Depth int
		Name  string
	}
	var got []visit
	err := fs.Walk(ramvfs.RootIno, func(depth int, info ramvfs.NodeInfo) error {
		// Callbacks run unlocked
		_ = fs.Stats()
		got = append(got, visit{depth, info.Name})
		return nil
	})
	require.NoError(t, err)

	want := []visit{
		{0, ""},
		{1, "readme.txt"},
		{1, "hello.txt"},
		{1, "system.info"},
		{1, "documents"},
		{2, "notes.txt"},
		{1, "bin"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	t.Run("StopsOnError", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := fs.Walk(ramvfs.RootIno, func(int, ramvfs.NodeInfo) error {
			calls++
			if calls == 2 {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 2, calls)
	})

	t.Run("Missing", func(t *testing.T) {
		err := fs.Walk(999, func(int, ramvfs.NodeInfo) error { return nil })
		assert.ErrorIs(t, err, ramvfs.ErrNotFound)
	})
}
