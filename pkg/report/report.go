// Package report aggregates per-config outcomes and the environment
// descriptor into the run summary, and encodes it for machine
// consumption. Aggregation is pure; rendering for terminals lives in
// pkg/ui.
package report

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/confsync/confsync/pkg/errors"
	"github.com/confsync/confsync/pkg/types"
)

// Summarize builds the run report from outcomes and the environment.
// It has no side effects and never fails.
func Summarize(command string, outcomes []types.DeploymentOutcome, env types.EnvironmentDescriptor, dryRun bool) *types.Report {
	r := &types.Report{
		Command:     command,
		Environment: env,
		Timestamp:   time.Now(),
		DryRun:      dryRun,
		Outcomes:    outcomes,
	}

	for _, o := range outcomes {
		switch o.Status {
		case types.StatusInstalled:
			r.Installed++
		case types.StatusSourceMissing:
			r.Missing++
		case types.StatusWriteFailed:
			r.Failed++
		}
	}

	return r
}

// EncodeJSON writes the report as indented JSON.
func EncodeJSON(w io.Writer, r *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report as JSON")
	}
	return nil
}

// EncodeYAML writes the report as YAML.
func EncodeYAML(w io.Writer, r *types.Report) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report as YAML")
	}
	return nil
}

// EncodeXML writes the report as XML with one <outcome> element per
// catalog entry.
func EncodeXML(w io.Writer, r *types.Report) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("command", r.Command)
	root.CreateAttr("timestamp", r.Timestamp.Format(time.RFC3339))
	if r.DryRun {
		root.CreateAttr("dryRun", "true")
	}

	env := root.CreateElement("environment")
	env.CreateAttr("osFamily", string(r.Environment.OSFamily))
	env.CreateAttr("packageManager", string(r.Environment.PackageManager))
	if r.Environment.VendorVariant != "" {
		env.CreateAttr("vendorVariant", r.Environment.VendorVariant)
	}
	if r.Environment.IsElevatedUser {
		env.CreateAttr("elevated", "true")
	}

	summary := root.CreateElement("summary")
	summary.CreateAttr("installed", strconv.Itoa(r.Installed))
	summary.CreateAttr("missing", strconv.Itoa(r.Missing))
	summary.CreateAttr("failed", strconv.Itoa(r.Failed))

	outcomes := root.CreateElement("outcomes")
	for _, o := range r.Outcomes {
		el := outcomes.CreateElement("outcome")
		el.CreateAttr("name", o.LogicalName)
		el.CreateAttr("status", string(o.Status))
		el.CreateAttr("destination", o.Destination)
		if o.SourcePath != "" {
			el.CreateAttr("source", o.SourcePath)
		}
		if o.Backup != nil && o.Backup.Created {
			b := el.CreateElement("backup")
			b.CreateAttr("dir", o.Backup.BackupDir)
		}
		if o.ErrorDetail != "" {
			el.CreateElement("error").SetText(o.ErrorDetail)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report as XML")
	}
	return nil
}
