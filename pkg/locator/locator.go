// Package locator resolves each catalog entry to a concrete source path.
// The source tree's internal layout has drifted over time (singular vs.
// plural naming, flat vs. nested), so every logical config carries an
// ordered list of candidate locations and the first one that exists with
// the expected kind wins. Resolution uses existence tests only, never
// directory enumeration, so results are deterministic for a given tree.
package locator

import (
	"path/filepath"

	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/types"
)

// Locate resolves every catalog entry against the source root. An entry
// with no matching candidate resolves with an empty SourcePath; that is
// the typed "not found" state, not an error. A candidate whose on-disk
// kind does not match the entry's IsDirectory expectation is skipped.
func Locate(fsys types.FS, sourceRoot string, entries []types.CatalogEntry) []types.ResolvedConfig {
	logger := logging.GetLogger("locator")

	resolved := make([]types.ResolvedConfig, 0, len(entries))
	for _, entry := range entries {
		rc := types.ResolvedConfig{
			LogicalName: entry.LogicalName,
			Destination: entry.Destination,
			IsDirectory: entry.IsDirectory,
		}

		for _, candidate := range entry.Candidates {
			path := filepath.Join(sourceRoot, candidate)
			if !matches(fsys, path, entry.IsDirectory) {
				continue
			}

			if rc.SourcePath == "" {
				rc.SourcePath = path
			} else {
				// A lower-priority candidate also exists; first listed
				// wins, but surface the leftover so half-migrated trees
				// are diagnosable.
				logger.Debug().
					Str("config", entry.LogicalName).
					Str("selected", rc.SourcePath).
					Str("skipped", path).
					Msg("Multiple candidates exist, using highest priority")
			}
		}

		if rc.SourcePath == "" {
			logger.Debug().
				Str("config", entry.LogicalName).
				Strs("candidates", entry.Candidates).
				Msg("No candidate found in source tree")
		}

		resolved = append(resolved, rc)
	}

	return resolved
}

// matches tests whether path exists with the expected kind. A directory
// where a file is expected (or vice versa) is a non-match.
func matches(fsys types.FS, path string, wantDir bool) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir() == wantDir
}
