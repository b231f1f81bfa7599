package types

// CatalogEntry describes one logical config artifact and where to look
// for it. Candidates are relative to the source root and ordered from
// most- to least-specific; the first candidate that exists on disk with
// the expected kind wins.
type CatalogEntry struct {
	// LogicalName identifies the artifact independent of its physical
	// location, e.g. "zshrc" or "nvim".
	LogicalName string `json:"logicalName" toml:"name"`

	// Candidates is the ordered list of relative paths to probe under
	// the source root. Must be non-empty.
	Candidates []string `json:"candidates" toml:"candidates"`

	// Destination is where the artifact is installed. May contain a
	// leading ~ which is expanded before deployment.
	Destination string `json:"destination" toml:"destination"`

	// IsDirectory selects the existence test: directories are matched
	// by directory presence, files by regular-file presence. A kind
	// mismatch at a candidate path is a non-match, not an error.
	IsDirectory bool `json:"isDirectory" toml:"directory"`
}

// ResolvedConfig is the locator's verdict for one catalog entry.
// SourcePath is empty when no candidate matched; that is the typed
// "not found" state, never an error.
type ResolvedConfig struct {
	LogicalName string `json:"logicalName"`
	SourcePath  string `json:"sourcePath,omitempty"`
	Destination string `json:"destination"`
	IsDirectory bool   `json:"isDirectory"`
}

// Found reports whether the locator resolved a source for this entry.
func (r ResolvedConfig) Found() bool {
	return r.SourcePath != ""
}
