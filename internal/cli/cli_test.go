package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/ramvfs/config"
)

// These tests share the global logger, so they do not run in parallel.

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_Commands(t *testing.T) {
	out, err := execute(t, "", "-c", "pwd", "-c", "cd documents", "-c", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/\n/documents\n", out)

	t.Run("Failure", func(t *testing.T) {
		out, err := execute(t, "", "-c", "bogus", "-c", "pwd")
		assert.ErrorIs(t, err, ErrCommandFailed)
		assert.Contains(t, out, "Error: unknown command: bogus")
		assert.True(t, strings.HasSuffix(out, "/\n"))
	})

	t.Run("Exit", func(t *testing.T) {
		out, err := execute(t, "", "-c", "exit", "-c", "pwd")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("RejectsArgs", func(t *testing.T) {
		_, err := execute(t, "", "extra")
		assert.Error(t, err)
	})
}

func TestRoot_Interactive(t *testing.T) {
	out, err := execute(t, "cd bin\npwd\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "/$ ")
	assert.Contains(t, out, "/bin$ /bin\n")
}

func TestStatAndTree(t *testing.T) {
	out, err := execute(t, "", "stat")
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 4\n")
	assert.Contains(t, out, "Directories: 3\n")

	out, err = execute(t, "", "tree", "/documents")
	require.NoError(t, err)
	assert.Equal(t, "/documents\n└── notes.txt\n", out)

	_, err = execute(t, "", "tree", "/nowhere")
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestNodesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("from the network"))
	}))
	defer srv.Close()

	nodes := writeFile(t, "nodes.json", fmt.Sprintf(`[
		{"path": "/etc", "type": "dir"},
		{"path": "/etc/motd", "type": "file", "source": {"type": "inline", "content": "welcome"}},
		{"path": "/etc/remote.txt", "type": "file", "source": {"type": "http", "url": %q}},
		{"path": "/readme.txt", "type": "file"}
	]`, srv.URL))

	out, err := execute(t, "", "--nodes", nodes, "-c", "cat /etc/motd", "-c", "cat /etc/remote.txt", "-c", "stat /etc/remote.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "welcome\n")
	assert.Contains(t, out, "from the network\n")
	assert.Contains(t, out, "Backend: static\n")

	t.Run("MissingFile", func(t *testing.T) {
		_, err := execute(t, "", "--nodes", filepath.Join(t.TempDir(), "nope.yaml"), "stat")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestShowConfig(t *testing.T) {
	cfgPath := writeFile(t, "ramvfs.yaml", "max_nodes: 8\nprompt: \"> \"\n")

	out, err := execute(t, "", "show-config", "--config", cfgPath, "-v", "5")
	require.NoError(t, err)

	var got config.ConfigOverride
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.MaxNodes)
	assert.Equal(t, 8, *got.MaxNodes)
	assert.Equal(t, "> ", *got.Prompt)
	assert.Equal(t, config.TraceVerbose, *got.LogLvl)
	assert.Equal(t, config.DefaultMaxDirEntries, *got.MaxDirEntries)

	t.Run("AppliesToShell", func(t *testing.T) {
		out, err := execute(t, "pwd\n", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "/> /\n")
	})

	t.Run("Invalid", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `{"max_nodes": 0}`)
		_, err := execute(t, "", "show-config", "--config", bad)
		assert.ErrorContains(t, err, "max_nodes")
	})
}
