package filesystem

import (
	"testing"

	"github.com/brettbedarf/ramvfs"
	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		length, off, sz  uint32
		wantStart, wantE uint32
		wantOK           bool
	}{
		{"Whole", 5, 0, 5, 0, 5, true},
		{"ClipsToLength", 5, 2, 100, 2, 5, true},
		{"Middle", 5, 1, 2, 1, 3, true},
		{"AtEnd", 5, 5, 1, 0, 0, false},
		{"PastEnd", 5, 9, 1, 0, 0, false},
		{"ZeroSize", 5, 1, 0, 1, 1, false},
		{"Empty", 0, 0, 10, 0, 0, false},
		{"NoOverflow", 10, 4, ^uint32(0), 4, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := span(tt.length, tt.off, tt.sz)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantE, end)
			}
		})
	}
}

func TestFileCaps_ReadWrite(t *testing.T) {
	t.Parallel()

	n := &Node{kind: ramvfs.FileKind, content: []byte("hello"), length: 5}
	caps := fileCaps{}

	assert.Equal(t, []byte("ell"), caps.read(n, 1, 3))
	assert.Equal(t, []byte{}, caps.read(n, 5, 10))

	assert.Equal(t, 2, caps.write(n, 3, []byte("LOWORLD")))
	assert.Equal(t, []byte("helLO"), n.content)
	assert.Equal(t, uint32(5), n.length)

	assert.Zero(t, caps.write(n, 5, []byte("x")))

	t.Run("ReadReturnsCopy", func(t *testing.T) {
		out := caps.read(n, 0, 5)
		out[0] = 'X'
		assert.Equal(t, byte('h'), n.content[0])
	})
}

func TestCapabilitySets(t *testing.T) {
	t.Parallel()

	var dir, file, static capabilities = dirCaps{}, fileCaps{}, staticCaps{}

	t.Run("Directory", func(t *testing.T) {
		_, canRead := dir.(reader)
		_, canWrite := dir.(writer)
		_, canList := dir.(lister)
		_, canFind := dir.(finder)
		_, canMkdir := dir.(dirMaker)
		_, canCreate := dir.(fileCreator)
		assert.False(t, canRead)
		assert.False(t, canWrite)
		assert.True(t, canList)
		assert.True(t, canFind)
		assert.True(t, canMkdir)
		assert.True(t, canCreate)
	})

	t.Run("File", func(t *testing.T) {
		_, canRead := file.(reader)
		_, canWrite := file.(writer)
		_, canList := file.(lister)
		assert.True(t, canRead)
		assert.True(t, canWrite)
		assert.False(t, canList)
	})

	t.Run("Static", func(t *testing.T) {
		_, canRead := static.(reader)
		_, canWrite := static.(writer)
		assert.True(t, canRead)
		assert.False(t, canWrite)
	})
}

func TestUnsupported(t *testing.T) {
	t.Parallel()

	dir := &Node{name: "d", kind: ramvfs.DirKind}
	file := &Node{name: "f", kind: ramvfs.FileKind}

	err := unsupported(opRead, dir)
	assert.ErrorIs(t, err, ramvfs.ErrUnsupported)
	assert.ErrorIs(t, err, ramvfs.ErrNotFile)

	err = unsupported(opList, file)
	assert.ErrorIs(t, err, ramvfs.ErrUnsupported)
	assert.ErrorIs(t, err, ramvfs.ErrNotDir)

	// Right kind, missing capability (read-only file)
	err = unsupported(opWrite, file)
	assert.ErrorIs(t, err, ramvfs.ErrUnsupported)
	assert.NotErrorIs(t, err, ramvfs.ErrNotFile)
	assert.EqualError(t, err, "write f: operation not supported")
}
