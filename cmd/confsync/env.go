package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/confsync/confsync/pkg/commands"
	"github.com/confsync/confsync/pkg/errors"
)

func newEnvCmd(root *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the classified environment",
		Long: `Env prints the environment classification confsync operates under: the
OS family and the package manager it would use to install tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := commands.Environment()
			out := cmd.OutOrStdout()

			format := output
			if format == "" {
				format = commands.RuntimeSettings(root.source).Output
			}

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(env)
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer func() { _ = enc.Close() }()
				return enc.Encode(env)
			case "", "text":
			default:
				// A configured report format like xml has no meaning
				// here; only reject formats asked for explicitly.
				if cmd.Flags().Changed("output") {
					return errors.Newf(errors.ErrInvalidInput,
						"unknown output format %q (want text, json, or yaml)", format)
				}
			}

			fmt.Fprintf(out, "os family:       %s\n", env.OSFamily)
			if env.VendorVariant != "" {
				fmt.Fprintf(out, "vendor variant:  %s\n", env.VendorVariant)
			}
			fmt.Fprintf(out, "package manager: %s\n", env.PackageManager)
			fmt.Fprintf(out, "elevated user:   %t\n", env.IsElevatedUser)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text, json, or yaml")

	return cmd
}
