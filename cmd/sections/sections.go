// Package sections implements the sections command that displays the
// built-in section rules in a formatted table.
package sections

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	internalsections "github.com/jonesrussell/thaicrawl/internal/sections"
)

// Command returns the sections command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the built-in section rules",
		Run: func(cmd *cobra.Command, args []string) {
			renderRules(internalsections.DefaultRules())
		},
	}
}

// renderRules formats and displays the section rules in a table.
func renderRules(rules internalsections.Ruleset) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Section", "Path Prefix", "Sub-Filter"})
	for i := range rules {
		subFilter := "no"
		if rules[i].SubFilter != nil {
			subFilter = "yes"
		}
		t.AppendRow(table.Row{rules[i].Name, rules[i].PathPrefix, subFilter})
	}

	t.Render()
}
