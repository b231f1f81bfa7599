package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsync/confsync/pkg/commands"
)

func newGenConfigCmd(root *rootFlags) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Generate a starter configuration file",
		Long: `Gen-config prints the default configuration, including the built-in
catalog, as a starting point for customization. With --write it is
stored as .confsync.toml at the source tree root; an existing file is
never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				SourceRoot: root.source,
				Write:      write,
			})
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), result.Content)
				return nil
			}

			if result.FileWritten == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "config file already exists, nothing written")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", result.FileWritten)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write config to the source tree instead of stdout")

	return cmd
}
