package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/artpar/lumebar/internal/core"
	"github.com/artpar/lumebar/internal/feed"
)

// NewCheckCommand creates the document validation command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a data document",
		Long: `Parse a data document, assign ids, and report its shape. JSON and YAML
documents are accepted. Unknown context references are reported as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

func runCheck(cmd *cobra.Command, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc *core.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc = &core.Document{}
		if err := yaml.Unmarshal(raw, doc); err != nil {
			return fmt.Errorf("failed to decode data document: %w", err)
		}
	default:
		doc, err = feed.Decode(raw)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(doc.Collections) == 0 {
		fmt.Fprintln(out, "document is valid but has no collections")
		return nil
	}

	warnings := 0
	for _, c := range doc.Collections {
		core.AssignIDs(c.Items, nil)
		items := 0
		actions := 0
		c.Walk(func(item *core.Item) {
			items++
			actions += len(item.Actions)
			if item.Context != "" {
				if _, ok := c.ResolveContext(item.Context); !ok {
					fmt.Fprintf(out, "warning: item %q references unknown context %q\n", item.Title, item.Context)
					warnings++
				}
			}
		})
		fmt.Fprintf(out, "collection %q: %d items, %d actions\n", c.Name, items, actions)
	}
	if warnings > 0 {
		fmt.Fprintf(out, "%d warning(s)\n", warnings)
	}
	return nil
}
