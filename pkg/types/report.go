package types

import "time"

// Report is the aggregated result of one deployment run. It is a pure
// summary: building it has no side effects, and it is the only structure
// the presentation layer consumes.
type Report struct {
	Command     string                `json:"command" yaml:"command"`
	Environment EnvironmentDescriptor `json:"environment" yaml:"environment"`
	Timestamp   time.Time             `json:"timestamp" yaml:"timestamp"`
	DryRun      bool                  `json:"dryRun" yaml:"dryRun"`

	Outcomes []DeploymentOutcome `json:"outcomes" yaml:"outcomes"`

	Installed int `json:"installed" yaml:"installed"`
	Missing   int `json:"missing" yaml:"missing"`
	Failed    int `json:"failed" yaml:"failed"`
}

// FailedOutcomes returns the outcomes that ended in write-failed, for
// detailed rendering.
func (r *Report) FailedOutcomes() []DeploymentOutcome {
	var failed []DeploymentOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusWriteFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// ExitCode implements the run's exit signaling: a mix of installed and
// source-missing entries is a successful (degraded) run. Only a run in
// which every entry failed to write is a process-level failure.
func (r *Report) ExitCode() int {
	if len(r.Outcomes) > 0 && r.Failed == len(r.Outcomes) {
		return 1
	}
	return 0
}
