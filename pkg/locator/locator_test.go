package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/pkg/filesystem"
	"github.com/confsync/confsync/pkg/types"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocateFirstCandidateWins(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "configs/zsh/zshrc", "namespaced")
	writeSource(t, root, "zshrc", "bare")

	entry := types.CatalogEntry{
		LogicalName: "zshrc",
		Candidates:  []string{"configs/zsh/zshrc", "configs/zshrc", "zshrc"},
		Destination: "/home/user/.zshrc",
	}

	resolved := Locate(filesystem.NewOS(), root, []types.CatalogEntry{entry})

	require.Len(t, resolved, 1)
	assert.Equal(t, filepath.Join(root, "configs/zsh/zshrc"), resolved[0].SourcePath)
}

func TestLocateFallsThroughToLaterCandidate(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "zshrc", "bare layout")

	entry := types.CatalogEntry{
		LogicalName: "zshrc",
		Candidates:  []string{"configs/zsh/zshrc", "configs/zshrc", "zshrc"},
		Destination: "/home/user/.zshrc",
	}

	resolved := Locate(filesystem.NewOS(), root, []types.CatalogEntry{entry})

	require.Len(t, resolved, 1)
	assert.Equal(t, filepath.Join(root, "zshrc"), resolved[0].SourcePath)
}

func TestLocateNotFound(t *testing.T) {
	root := t.TempDir()

	entry := types.CatalogEntry{
		LogicalName: "tmux.conf",
		Candidates:  []string{"configs/tmux/tmux.conf", "tmux.conf"},
		Destination: "/home/user/.tmux.conf",
	}

	resolved := Locate(filesystem.NewOS(), root, []types.CatalogEntry{entry})

	require.Len(t, resolved, 1)
	assert.False(t, resolved[0].Found())
	assert.Empty(t, resolved[0].SourcePath)
	assert.Equal(t, "/home/user/.tmux.conf", resolved[0].Destination)
}

func TestLocateKindMismatchIsNonMatch(t *testing.T) {
	root := t.TempDir()
	// A directory sits where a file is expected.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "zshrc"), 0755))
	writeSource(t, root, "configs/zshrc", "actual file")

	fileEntry := types.CatalogEntry{
		LogicalName: "zshrc",
		Candidates:  []string{"zshrc", "configs/zshrc"},
		Destination: "/home/user/.zshrc",
	}

	resolved := Locate(filesystem.NewOS(), root, []types.CatalogEntry{fileEntry})
	require.Len(t, resolved, 1)
	assert.Equal(t, filepath.Join(root, "configs/zshrc"), resolved[0].SourcePath)

	// And the inverse: a file where a directory is expected.
	writeSource(t, root, "nvim", "a file, not a dir")
	dirEntry := types.CatalogEntry{
		LogicalName: "nvim",
		Candidates:  []string{"nvim"},
		Destination: "/home/user/.config/nvim",
		IsDirectory: true,
	}

	resolved = Locate(filesystem.NewOS(), root, []types.CatalogEntry{dirEntry})
	require.Len(t, resolved, 1)
	assert.False(t, resolved[0].Found())
}

func TestLocateDirectoryEntry(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "configs/nvim/init.lua", "init")

	entry := types.CatalogEntry{
		LogicalName: "nvim",
		Candidates:  []string{"configs/nvim", "nvim"},
		Destination: "/home/user/.config/nvim",
		IsDirectory: true,
	}

	resolved := Locate(filesystem.NewOS(), root, []types.CatalogEntry{entry})

	require.Len(t, resolved, 1)
	assert.Equal(t, filepath.Join(root, "configs/nvim"), resolved[0].SourcePath)
	assert.True(t, resolved[0].IsDirectory)
}

func TestLocateIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "configs/zshrc", "a")
	writeSource(t, root, "zshrc", "b")
	writeSource(t, root, "vimrc", "c")

	entries := []types.CatalogEntry{
		{LogicalName: "zshrc", Candidates: []string{"configs/zshrc", "zshrc"}, Destination: "/h/.zshrc"},
		{LogicalName: "vimrc", Candidates: []string{"configs/vimrc", "vimrc"}, Destination: "/h/.vimrc"},
		{LogicalName: "tmux.conf", Candidates: []string{"tmux.conf"}, Destination: "/h/.tmux.conf"},
	}

	first := Locate(filesystem.NewOS(), root, entries)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Locate(filesystem.NewOS(), root, entries))
	}
}

func TestLocatePreservesEntryOrder(t *testing.T) {
	root := t.TempDir()

	entries := []types.CatalogEntry{
		{LogicalName: "b", Candidates: []string{"b"}, Destination: "/h/b"},
		{LogicalName: "a", Candidates: []string{"a"}, Destination: "/h/a"},
	}

	resolved := Locate(filesystem.NewOS(), root, entries)

	require.Len(t, resolved, 2)
	assert.Equal(t, "b", resolved[0].LogicalName)
	assert.Equal(t, "a", resolved[1].LogicalName)
}
