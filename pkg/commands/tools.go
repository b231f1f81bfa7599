package commands

import (
	"context"

	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/pkgmgr"
)

// ToolStatus records what EnsureTools did for one tool.
type ToolStatus struct {
	Tool      string `json:"tool" yaml:"tool"`
	Present   bool   `json:"present" yaml:"present"`
	Installed bool   `json:"installed" yaml:"installed"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// EnsureTools installs any of the named tools missing from PATH using
// the host's package manager. Failures are recorded per tool and never
// abort the remainder.
func EnsureTools(ctx context.Context, mgr pkgmgr.Manager, tools []string) []ToolStatus {
	log := logging.GetLogger("commands")

	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		status := ToolStatus{Tool: tool}

		if mgr.IsInstalled(tool) {
			status.Present = true
			statuses = append(statuses, status)
			continue
		}

		if err := mgr.Install(ctx, tool); err != nil {
			log.Warn().Err(err).Str("tool", tool).Msg("Tool install failed")
			status.Error = err.Error()
		} else {
			status.Installed = true
		}
		statuses = append(statuses, status)
	}
	return statuses
}
