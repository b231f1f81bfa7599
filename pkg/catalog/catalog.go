// Package catalog defines the set of logical configs confsync manages:
// which relative paths each one may live at inside the source tree, and
// where it is installed. The built-in catalog covers the usual shell,
// prompt, editor, multiplexer, and VCS configs; users can override or
// extend it from configuration without code changes.
package catalog

import (
	"io"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/paths"
	"github.com/confsync/confsync/pkg/types"
)

// File is the on-disk shape of a catalog override file: a list of
// [[config]] tables.
type File struct {
	Configs []types.CatalogEntry `toml:"config"`
}

// Default returns the built-in catalog. Candidates are ordered from
// most- to least-specific so that namespaced layouts win over flat ones
// when a source tree carries both.
func Default() []types.CatalogEntry {
	return []types.CatalogEntry{
		{
			LogicalName: "zshrc",
			Candidates:  []string{"configs/zsh/zshrc", "configs/zshrc", "zshrc"},
			Destination: "~/.zshrc",
		},
		{
			LogicalName: "bashrc",
			Candidates:  []string{"configs/bash/bashrc", "configs/bashrc", "bashrc"},
			Destination: "~/.bashrc",
		},
		{
			LogicalName: "starship.toml",
			Candidates:  []string{"configs/starship/starship.toml", "configs/starship.toml", "starship.toml"},
			Destination: "~/.config/starship.toml",
		},
		{
			LogicalName: "vimrc",
			Candidates:  []string{"configs/vim/vimrc", "configs/vimrc", "vimrc"},
			Destination: "~/.vimrc",
		},
		{
			LogicalName: "nvim",
			Candidates:  []string{"configs/nvim", "nvim"},
			Destination: "~/.config/nvim",
			IsDirectory: true,
		},
		{
			LogicalName: "tmux.conf",
			Candidates:  []string{"configs/tmux/tmux.conf", "configs/tmux.conf", "tmux.conf"},
			Destination: "~/.tmux.conf",
		},
		{
			LogicalName: "gitconfig",
			Candidates:  []string{"configs/git/gitconfig", "configs/gitconfig", "gitconfig"},
			Destination: "~/.gitconfig",
		},
	}
}

// Validate checks catalog invariants: every entry has a name, a
// destination, and a non-empty ordered candidate list, and names are
// unique.
func Validate(entries []types.CatalogEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.LogicalName == "" {
			return errors.New(errors.ErrCatalogInvalid, "catalog entry with empty logical name")
		}
		if seen[entry.LogicalName] {
			return errors.Newf(errors.ErrCatalogInvalid, "duplicate catalog entry %q", entry.LogicalName)
		}
		seen[entry.LogicalName] = true

		if len(entry.Candidates) == 0 {
			return errors.Newf(errors.ErrCatalogInvalid, "catalog entry %q has no candidate paths", entry.LogicalName)
		}
		if entry.Destination == "" {
			return errors.Newf(errors.ErrCatalogInvalid, "catalog entry %q has no destination", entry.LogicalName)
		}
	}
	return nil
}

// Merge overlays user-supplied entries on the base catalog. An override
// with a known logical name replaces the base entry in place; unknown
// names are appended in their given order. Base order is preserved so
// resolution and reporting stay stable across runs.
func Merge(base, overrides []types.CatalogEntry) []types.CatalogEntry {
	merged := make([]types.CatalogEntry, len(base))
	copy(merged, base)

	index := make(map[string]int, len(base))
	for i, entry := range base {
		index[entry.LogicalName] = i
	}

	for _, override := range overrides {
		if i, ok := index[override.LogicalName]; ok {
			merged[i] = override
			continue
		}
		merged = append(merged, override)
	}

	return merged
}

// ExpandDestinations resolves ~ in every destination path. Entries are
// copied; the input slice is not mutated.
func ExpandDestinations(entries []types.CatalogEntry) []types.CatalogEntry {
	expanded := make([]types.CatalogEntry, len(entries))
	copy(expanded, entries)
	for i := range expanded {
		expanded[i].Destination = paths.ExpandHome(expanded[i].Destination)
	}
	return expanded
}

// EncodeTOML writes the catalog as a TOML override file, the format
// accepted in .confsync.toml and the user config file.
func EncodeTOML(w io.Writer, entries []types.CatalogEntry) error {
	data, err := gotoml.Marshal(File{Configs: entries})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal catalog")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to write catalog")
	}
	return nil
}
