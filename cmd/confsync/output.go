package main

import (
	"io"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/report"
	"github.com/confsync/confsync/pkg/types"
	"github.com/confsync/confsync/pkg/ui"
)

// renderReport writes the report in the requested format. Text is the
// human rendering; the rest are machine encodings.
func renderReport(w io.Writer, format string, r *types.Report) error {
	switch format {
	case "", "text":
		ui.RenderReport(w, r)
		return nil
	case "json":
		return report.EncodeJSON(w, r)
	case "yaml":
		return report.EncodeYAML(w, r)
	case "xml":
		return report.EncodeXML(w, r)
	default:
		return errors.Newf(errors.ErrInvalidInput,
			"unknown output format %q (want text, json, yaml, or xml)", format)
	}
}
