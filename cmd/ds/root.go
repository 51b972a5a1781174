// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for ds.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"dockershell-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Flag storage. Paired --X/--no-X flags follow the convention that the
	// negative form wins when both are given on the command line.
	dryRun         bool
	noDryRun       bool
	scriptMode     bool
	noScriptMode   bool
	initFile       bool
	noInitFile     bool
	verboseCount   int
	quietCount     int
	dockerfileFlag string
	dsrcFile       string
	workDirFlag    string
	engineFlag     string
	cfgFile        string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "ds [flags] [COMMAND...]",
		Short: "Launch a containerized development shell",
		Long: TitleStyle.Render("ds") + SubtitleStyle.Render(" - containerized development shell") + `

ds locates your project's build root (the enclosing git top-level
directory, or the current directory outside version control), finds or
generates a Dockerfile there, builds the sandbox image, and replaces
itself with an interactive container session. Your home directory and
working directory are mounted at their host paths, and the container
runs as your own user.

Trailing COMMAND tokens run inside the container instead of the default
shell. Unrecognized options after the first COMMAND token are passed
through to it untouched.

` + SubtitleStyle.Render("Examples:") + `
  ds                        Open a shell in the sandbox
  ds --init                 (Re)generate the Dockerfile first
  ds make test              Run 'make test' inside the sandbox
  ds -n make test           Preview the commands without running them
  ds -s > sandbox.sh        Emit an equivalent standalone script`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	// Unknown flags after the first positional token belong to COMMAND.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the build and run commands without executing")
	rootCmd.Flags().BoolVarP(&noDryRun, "no-dry-run", "N", false, "negate a previous --dry-run")
	rootCmd.Flags().BoolVarP(&scriptMode, "script-mode", "s", false, "emit an executable shell script instead of executing")
	rootCmd.Flags().BoolVarP(&noScriptMode, "no-script-mode", "S", false, "negate a previous --script-mode")
	rootCmd.Flags().BoolVar(&initFile, "init", false, "generate (overwrite) the Dockerfile before proceeding")
	rootCmd.Flags().BoolVar(&noInitFile, "no-init", false, "negate a previous --init")
	rootCmd.Flags().CountVarP(&verboseCount, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.Flags().CountVarP(&quietCount, "quiet", "q", "decrease log verbosity (repeatable)")
	rootCmd.Flags().StringVar(&dockerfileFlag, "dockerfile", "", "use this Dockerfile instead of discovering one")
	rootCmd.Flags().StringVar(&dsrcFile, "dsrc", "", "use this ds.rc file instead of discovering one")
	rootCmd.Flags().StringVarP(&workDirFlag, "work-directory", "w", "", "work directory mounted into the container (default: current directory)")
	rootCmd.Flags().StringVar(&engineFlag, "engine", "", "container engine to use (docker or podman; default: auto-detect)")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ds/config.toml)")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(docsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		// fang prints the headline message; suggestions attached to the
		// error are surfaced separately so they reach the user.
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.HasSuggestions() {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verboseCount > 0))
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
