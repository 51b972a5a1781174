// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	osuser "os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dockershell-cli/internal/config"
	"dockershell-cli/internal/container"
	"dockershell-cli/internal/discovery"
	"dockershell-cli/internal/dockerfile"
	"dockershell-cli/internal/issue"
)

// Seams for tests: a recorder dispatcher and a stub engine are substituted
// so no real process ever runs.
var (
	newDispatcher = func() container.Dispatcher { return container.NewProcessDispatcher() }
	detectEngine  = func(preference config.ContainerEngine) container.Engine {
		return container.Detect(container.EngineType(preference))
	}
	currentUser = osuser.Current
	newLocator  = func(logger *log.Logger) *discovery.Locator {
		return discovery.NewLocator(discovery.WithLogger(logger))
	}
)

// launchSettings is the fully resolved parameter set for one invocation.
// Assembled once, read-only afterward.
type launchSettings struct {
	User           string
	UID            string
	Home           string
	WorkDir        string
	RootDir        string
	DockerfilePath string
	HaveDefinition bool
	RCPath         string
	Command        []string
	ImageTag       string
	ExtraVolumes   []string

	DryRun     bool
	ScriptMode bool
	Init       bool
	// QuietBuild suppresses build output below the info threshold.
	QuietBuild bool
}

// runRoot is the root command pipeline: resolve settings, locate or generate
// the definition file, then build and run (or preview) the sandbox.
func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	level := resolveLogLevel(verboseCount, quietCount, cfg.Verbosity)
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "ds",
		Level:  level,
	})

	engineChoice, err := resolveEngineChoice(cfg)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(ctx, cfg, args, level, logger)
	if err != nil {
		return err
	}
	logSettings(logger, settings)

	// Preview modes never spawn anything, not even the availability probe:
	// they only need the engine's argv builders.
	var engine container.Engine
	if settings.DryRun || settings.ScriptMode {
		engine = container.Pin(container.EngineType(engineChoice))
	} else {
		engine = detectEngine(engineChoice)
	}

	return launch(ctx, cmd, logger, engine, settings)
}

// resolveLogLevel maps counted -v/-q flags and the configured verbosity
// offset onto a charm log level. The base is warn; each step moves one full
// level, clamped to the debug..fatal range.
func resolveLogLevel(verbose, quiet, configured int) log.Level {
	level := log.WarnLevel + log.Level(4*(quiet-verbose-configured))
	if level < log.DebugLevel {
		level = log.DebugLevel
	}
	if level > log.FatalLevel {
		level = log.FatalLevel
	}
	return level
}

// resolveToggle implements paired --flag/--no-flag semantics: the negative
// form wins when present.
func resolveToggle(positive, negative bool) bool {
	if negative {
		return false
	}
	return positive
}

// resolveEngineChoice applies flag-beats-config precedence and validates the
// result.
func resolveEngineChoice(cfg *config.Config) (config.ContainerEngine, error) {
	choice := cfg.Engine
	if engineFlag != "" {
		choice = config.ContainerEngine(engineFlag)
	}
	if err := choice.Validate(); err != nil {
		return "", err
	}
	return choice, nil
}

// resolveSettings assembles the invocation parameters from OS identity
// queries, discovery, flags, and configuration.
func resolveSettings(ctx context.Context, cfg *config.Config, args []string, level log.Level, logger *log.Logger) (*launchSettings, error) {
	u, err := currentUser()
	if err != nil {
		return nil, fmt.Errorf("resolving current user: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving current directory: %w", err)
	}
	cwd, err = discovery.Canonicalize(cwd)
	if err != nil {
		return nil, err
	}

	workDir := cwd
	if workDirFlag != "" {
		workDir, err = discovery.Canonicalize(workDirFlag)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("resolve work directory").
				WithResource(workDirFlag).
				WithSuggestion("Check that the directory exists").
				Wrap(err).
				BuildError()
		}
	}

	locator := newLocator(logger)
	root, err := locator.BuildRoot(ctx, cwd)
	if err != nil {
		return nil, err
	}

	// An explicit --dockerfile skips discovery entirely.
	definitionPath := dockerfileFlag
	if definitionPath != "" {
		definitionPath, err = filepath.Abs(definitionPath)
		if err != nil {
			return nil, fmt.Errorf("resolving definition file path: %w", err)
		}
	} else {
		definitionPath, err = locator.DefinitionFilePath(cwd, root)
		if err != nil {
			return nil, err
		}
	}

	rcPath := dsrcFile
	if rcPath == "" {
		rcPath, err = locator.RCFilePath(cwd, root)
		if err != nil {
			return nil, err
		}
	}

	// Explicit COMMAND tokens beat the ds.rc default command.
	command := args
	if len(command) == 0 {
		command, err = dockerfile.ReadRCCommand(rcPath)
		if err != nil {
			return nil, err
		}
	}

	return &launchSettings{
		User:           u.Username,
		UID:            u.Uid,
		Home:           home,
		WorkDir:        workDir,
		RootDir:        root,
		DockerfilePath: definitionPath,
		HaveDefinition: fileExists(definitionPath),
		RCPath:         rcPath,
		Command:        command,
		ImageTag:       cfg.ImageTag,
		ExtraVolumes:   cfg.Volumes,
		DryRun:         resolveToggle(dryRun, noDryRun),
		ScriptMode:     resolveToggle(scriptMode, noScriptMode),
		Init:           resolveToggle(initFile, noInitFile),
		QuietBuild:     level > log.InfoLevel,
	}, nil
}

// logSettings dumps the resolved parameter block at debug level.
func logSettings(logger *log.Logger, s *launchSettings) {
	definitionState := "ABSENT"
	if s.HaveDefinition {
		definitionState = "EXISTS"
	}
	logger.Debug("resolved settings",
		"user", s.User,
		"uid", s.UID,
		"home", s.Home,
		"root", s.RootDir,
		"workdir", s.WorkDir,
		"dockerfile", s.DockerfilePath,
		"dockerfile_state", definitionState,
		"rc", s.RCPath,
		"command", s.Command,
		"image", s.ImageTag,
		"dry_run", s.DryRun,
		"script_mode", s.ScriptMode,
		"init", s.Init,
	)
}

// launch performs the generate/build/run sequence under the selected
// dispatch mode.
func launch(ctx context.Context, cmd *cobra.Command, logger *log.Logger, engine container.Engine, settings *launchSettings) error {
	if settings.Init {
		if settings.DryRun {
			logger.Info("would have created definition file", "path", settings.DockerfilePath)
		} else {
			if err := dockerfile.Write(settings.DockerfilePath); err != nil {
				return issue.NewErrorContext().
					WithOperation("generate definition file").
					WithResource(settings.DockerfilePath).
					WithSuggestion("Check that the parent directory exists and is writable").
					Wrap(err).
					BuildError()
			}
			logger.Info("definition file created", "path", settings.DockerfilePath)
		}
		settings.HaveDefinition = true
	}

	if !settings.HaveDefinition {
		logger.Warn("no definition file found; nothing to do",
			"path", settings.DockerfilePath,
			"hint", "run 'ds --init' to generate one")
		return nil
	}

	spec := container.LaunchSpec{
		User:           settings.User,
		UID:            settings.UID,
		Home:           settings.Home,
		RootDir:        settings.RootDir,
		WorkDir:        settings.WorkDir,
		DockerfilePath: settings.DockerfilePath,
		Image:          settings.ImageTag,
		ExtraVolumes:   settings.ExtraVolumes,
		Command:        settings.Command,
		Quiet:          settings.QuietBuild,
	}

	buildAction := container.BuildInvocation(engine, spec)
	runAction := container.RunInvocation(engine, spec)

	switch {
	case settings.ScriptMode:
		script, err := container.RenderScript([]container.Action{buildAction, runAction})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	case settings.DryRun:
		renderDryRun(cmd.OutOrStdout(), engine, settings, buildAction, runAction)
		return nil
	}

	if !engine.Available() {
		return issue.NewErrorContext().
			WithOperation("launch sandbox").
			WithResource(engine.Name()).
			WithSuggestion(fmt.Sprintf("Install %s or make sure its daemon is running", engine.Name())).
			WithSuggestion("Pin a different engine with --engine or the 'engine' config key").
			Wrap(fmt.Errorf("container engine %q is not available", engine.Name())).
			BuildError()
	}

	dispatcher := newDispatcher()

	logger.Debug("building image", "tag", settings.ImageTag, "context", buildAction.Dir)
	if err := dispatcher.Dispatch(ctx, buildAction); err != nil {
		return commandFailure("build sandbox image", err)
	}

	logger.Debug("starting sandbox session", "image", settings.ImageTag, "workdir", settings.WorkDir)
	// On success this call never returns: the session replaces the process.
	if err := dispatcher.Dispatch(ctx, runAction); err != nil {
		return commandFailure("start sandbox session", err)
	}
	return nil
}

// commandFailure wraps a dispatch error, propagating the child's exit code
// when there is one.
func commandFailure(operation string, err error) error {
	var cmdErr *container.CommandError
	if errors.As(err, &cmdErr) {
		return &ExitError{
			Code: cmdErr.ExitCode,
			Err:  issue.WrapWithOperation(err, operation),
		}
	}
	return issue.WrapWithOperation(err, operation)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
