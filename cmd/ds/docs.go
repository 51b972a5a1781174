// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed manual.md
var manualText string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the ds manual",
	Long:  "Render the built-in manual describing discovery, generation, and launch behavior.",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}

		out, err := renderer.Render(manualText)
		if err != nil {
			return fmt.Errorf("rendering manual: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
