// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"dockershell-cli/internal/container"
)

// renderDryRun prints the resolved launch plan without executing anything.
// It shows the identity, directories, definition file, and both command
// lines exactly as they would be dispatched.
func renderDryRun(w io.Writer, engine container.Engine, settings *launchSettings, actions ...container.Action) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s (uid %s)\n", VerboseHighlightStyle.Render("User:"), settings.User, settings.UID)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Engine:"), engine.Name())
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Image:"), settings.ImageTag)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Root:"), settings.RootDir)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("WorkDir:"), settings.WorkDir)
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Dockerfile:"), settings.DockerfilePath)

	if len(settings.Command) > 0 {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Command:"), strings.Join(settings.Command, " "))
	}

	if settings.Init {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render("Would create:"), settings.DockerfilePath)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Commands:"))
	for _, action := range actions {
		fmt.Fprintf(w, "    %s %s\n",
			VerboseStyle.Render("("+action.Kind.String()+")"),
			CmdStyle.Render(strings.Join(action.Argv, " ")))
	}

	fmt.Fprintln(w)
}
