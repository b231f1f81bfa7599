package main

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/confsync/confsync/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics",
		Long: `Docs renders the built-in documentation. Without arguments it lists the
available topics.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: docTopics(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Available topics:")
				for _, topic := range docTopics() {
					fmt.Fprintf(out, "  %s\n", topic)
				}
				fmt.Fprintln(out, "\nRun 'confsync docs <topic>' to read one.")
				return nil
			}

			content, err := docsFS.ReadFile("docs/" + args[0] + ".md")
			if err != nil {
				return errors.Newf(errors.ErrNotFound, "unknown topic %q", args[0])
			}

			fmt.Fprint(out, renderMarkdown(string(content)))
			return nil
		},
	}
}

func docTopics() []string {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil
	}
	var topics []string
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics
}

// renderMarkdown converts markdown to styled terminal output, falling
// back to the raw text when styling fails or stdout is not a terminal.
func renderMarkdown(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
