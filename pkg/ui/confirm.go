package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/confsync/confsync/pkg/logging"
)

// Confirm asks the user the yes/no question before destructive work and
// returns the resolved decision. With assumeYes set, or when stdin is
// not a terminal (scripts, CI), the gate resolves to true without
// prompting.
func Confirm(prompt string, assumeYes bool) bool {
	logger := logging.GetLogger("ui")

	if assumeYes {
		return true
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		logger.Debug().Msg("stdin is not a terminal, proceeding without prompt")
		return true
	}

	proceed, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("Confirmation prompt failed, aborting")
		return false
	}
	return proceed
}
