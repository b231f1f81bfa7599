package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsync/confsync/pkg/commands"
	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/logging"
	"github.com/confsync/confsync/pkg/pkgmgr"
	"github.com/confsync/confsync/pkg/ui"
)

func newDeployCmd(root *rootFlags) *cobra.Command {
	var (
		output      string
		assumeYes   bool
		ensureTools []string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy config files to their destinations",
		Long: `Deploy resolves every catalog entry against the source tree and copies
the matches over their destinations. Anything about to be overwritten is
saved first into a timestamped backup directory; one directory is shared
by everything backed up during the run.

Entries whose source is absent from the tree are reported and skipped.
A per-entry failure never blocks the remaining entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.deploy")
			logger.Info().Bool("dryRun", root.dryRun).Msg("Starting deploy")

			settings := commands.RuntimeSettings(root.source)
			format := output
			if format == "" {
				format = settings.Output
			}
			source := root.source
			if source == "" {
				source = settings.SourceRoot
			}

			if len(ensureTools) > 0 {
				env := commands.Environment()
				statuses := commands.EnsureTools(cmd.Context(), pkgmgr.For(env), ensureTools)
				for _, s := range statuses {
					switch {
					case s.Present:
						logger.Debug().Str("tool", s.Tool).Msg("Tool already present")
					case s.Installed:
						fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", s.Tool)
					default:
						fmt.Fprintf(cmd.ErrOrStderr(), "could not install %s: %s\n", s.Tool, s.Error)
					}
				}
			}

			if !root.dryRun {
				yes := assumeYes || !settings.Confirm
				if !ui.Confirm("Deploy will overwrite destination files (backups are taken first). Continue?", yes) {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			result, err := commands.Deploy(commands.DeployOptions{
				SourceRoot: source,
				DryRun:     root.dryRun,
			})
			if err != nil {
				return err
			}

			if err := renderReport(cmd.OutOrStdout(), format, result); err != nil {
				return err
			}

			if result.ExitCode() != 0 {
				return errors.New(errors.ErrWriteFailed, "every entry failed to install")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text, json, yaml, or xml")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringSliceVar(&ensureTools, "ensure-tools", nil, "Install the named tools with the native package manager before deploying")

	return cmd
}
