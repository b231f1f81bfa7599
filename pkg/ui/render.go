package ui

import (
	"fmt"
	"io"

	"github.com/confsync/confsync/pkg/types"
)

// RenderReport writes the human-readable run summary. Styling is
// applied only when the writer is a capable terminal; piped output is
// plain text.
func RenderReport(w io.Writer, r *types.Report) {
	styled := colorEnabled(w)

	header := fmt.Sprintf("confsync %s on %s/%s", r.Command, r.Environment.OSFamily, r.Environment.PackageManager)
	if r.Environment.VendorVariant != "" {
		header += fmt.Sprintf(" (%s)", r.Environment.VendorVariant)
	}
	if r.DryRun {
		header += " [dry run]"
	}
	fmt.Fprintln(w, render(styled, styleHeader, header))

	for _, o := range r.Outcomes {
		switch o.Status {
		case types.StatusInstalled:
			line := fmt.Sprintf("  %s %s -> %s", render(styled, styleInstalled, "ok"), o.LogicalName, o.Destination)
			if o.Backup != nil && o.Backup.Created {
				line += render(styled, styleDim, fmt.Sprintf("  (previous saved in %s)", o.Backup.BackupDir))
			}
			fmt.Fprintln(w, line)
		case types.StatusSourceMissing:
			fmt.Fprintf(w, "  %s %s not found in source tree\n", render(styled, styleMissing, "--"), o.LogicalName)
		case types.StatusWriteFailed:
			fmt.Fprintf(w, "  %s %s: %s\n", render(styled, styleFailed, "!!"), o.LogicalName, o.ErrorDetail)
		}
	}

	summary := fmt.Sprintf("%d installed, %d missing, %d failed", r.Installed, r.Missing, r.Failed)
	fmt.Fprintln(w, render(styled, styleDim, summary))
}
