package types

import "time"

// OutcomeStatus is the terminal state of one catalog entry for a run.
type OutcomeStatus string

const (
	// StatusInstalled means the source was copied over the destination
	// (after a successful backup of any prior content).
	StatusInstalled OutcomeStatus = "installed"

	// StatusSourceMissing means no candidate path existed for the entry;
	// the destination was not touched.
	StatusSourceMissing OutcomeStatus = "source-missing"

	// StatusWriteFailed means backup or copy failed; other entries are
	// unaffected.
	StatusWriteFailed OutcomeStatus = "write-failed"
)

// BackupRecord documents what the vault did for one destination path.
// Created=false signals that the destination did not exist and there was
// nothing to preserve; that is a normal first-install condition.
type BackupRecord struct {
	OriginalPath string    `json:"originalPath" yaml:"originalPath"`
	BackupDir    string    `json:"backupDir,omitempty" yaml:"backupDir,omitempty"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
	Created      bool      `json:"created" yaml:"created"`
}

// DeploymentOutcome is the per-entry record produced by the executor.
type DeploymentOutcome struct {
	LogicalName string        `json:"logicalName" yaml:"logicalName"`
	Status      OutcomeStatus `json:"status" yaml:"status"`
	SourcePath  string        `json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`
	Destination string        `json:"destination" yaml:"destination"`
	Backup      *BackupRecord `json:"backup,omitempty" yaml:"backup,omitempty"`
	ErrorDetail string        `json:"errorDetail,omitempty" yaml:"errorDetail,omitempty"`
}
