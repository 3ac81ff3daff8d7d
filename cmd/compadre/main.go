// Package main is the entry point for the Compadre CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	compcli "github.com/compadre-sh/compadre/internal/cli"
	"github.com/compadre-sh/compadre/internal/setup"
	"github.com/compadre-sh/compadre/internal/shell"
	"github.com/compadre-sh/compadre/internal/trace"
	"github.com/compadre-sh/compadre/pkg/version"
	"github.com/urfave/cli/v3"
)

//nolint:gocyclo // Main function complexity is acceptable
func main() {
	cleanup := trace.Init()
	defer cleanup()

	// Get XDG paths
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}

	cacheDir := filepath.Join(cacheHome, "compadre")

	app := &cli.Command{
		Name:                  "compadre",
		Usage:                 "Programmable tab completion for any shell",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "",
				Usage:   "Log level (debug, info, warn, error); overrides the config",
				Sources: cli.EnvVars("COMPADRE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completion candidates for a word",
				ArgsUsage: "[word]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "state",
						Value: -1,
						Usage: "Print only the candidate at this index (readline protocol)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					word := ""
					if cmd.Args().Len() > 0 {
						word = cmd.Args().Get(0)
					}

					err := compcli.Complete(compcli.CompleteParams{
						CacheDir: cacheDir,
						LogLevel: cmd.String("log-level"),
						Word:     word,
						State:    int(cmd.Int("state")),
					})
					if errors.Is(err, compcli.ErrNoCompletion) {
						return cli.Exit("", 1)
					}
					return err
				},
			},
			{
				Name:  "hook",
				Usage: "Print shell hook code for manual installation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish or auto",
						Sources: cli.EnvVars("COMPADRE_SHELL"),
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					sh := shell.Detect(cmd.String("shell"))
					if !shell.IsSupported(sh) {
						return fmt.Errorf("unsupported shell: %s (use bash, zsh or fish)", sh)
					}

					fmt.Println("# Add this to your shell config file:")
					if rcFile, err := setup.GetRCFilePath(sh); err == nil {
						fmt.Printf("# For %s: %s\n\n", sh, rcFile)
					}
					fmt.Println(shell.HookCode(sh))

					return nil
				},
			},
			{
				Name:  "setup",
				Usage: "Automatically install or remove the shell hook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish or auto",
						Sources: cli.EnvVars("COMPADRE_SHELL"),
					},
					&cli.BoolFlag{
						Name:  "remove",
						Usage: "Remove the shell hook instead of installing it",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					sh := shell.Detect(cmd.String("shell"))

					var result *setup.Result
					var err error

					if cmd.Bool("remove") {
						result, err = setup.UninstallHook(sh)
					} else {
						result, err = setup.InstallHook(sh)
					}

					if err != nil {
						return err
					}

					fmt.Println(result.Message)
					if result.Updated && !cmd.Bool("remove") {
						fmt.Println("\nTo activate in current shell, run:")
						fmt.Printf("  source %s\n", result.RCFile)
					}

					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in current folder or global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Create global config file instead of local",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return compcli.Init(cmd.Bool("global"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a Compadre configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return compcli.Validate(configPath)
				},
			},
			{
				Name:  "edit",
				Usage: "Edit or create a Compadre configuration file in current directory or global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Edit global config file instead of local",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return compcli.Edit(cmd.Bool("global"))
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for Compadre configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return compcli.Schema(outputPath)
				},
			},
			{
				Name:  "status",
				Usage: "Show current Compadre configuration status",
				Action: func(_ context.Context, _ *cli.Command) error {
					return compcli.Status(compcli.StatusParams{
						CacheDir: cacheDir,
					})
				},
			},
			{
				Name:  "sources",
				Usage: "List configured wordlist sources and how they resolve here",
				Commands: []*cli.Command{
					{
						Name:  "clean",
						Usage: "Remove all cached wordlists",
						Action: func(_ context.Context, cmd *cli.Command) error {
							return compcli.SourcesClean(compcli.SourcesParams{
								CacheDir: cacheDir,
								LogLevel: cmd.String("log-level"),
							})
						},
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return compcli.Sources(compcli.SourcesParams{
						CacheDir: cacheDir,
						LogLevel: cmd.String("log-level"),
					})
				},
			},
			{
				Name:  "update",
				Usage: "Fetch the latest version of every url wordlist source",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return compcli.Update(compcli.UpdateParams{
						CacheDir: cacheDir,
						LogLevel: cmd.String("log-level"),
					})
				},
			},
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("compadre %s\n", version.Version)
					fmt.Printf("  commit: %s\n", version.GitCommit)
					fmt.Printf("  built:  %s\n", version.BuildTime)
					return nil
				},
			},
			{
				Name:            "bridge",
				Usage:           "Answer a shell completion request",
				Hidden:          true, // Hidden from help - called by the shell hooks
				SkipFlagParsing: true, // The COMP_LINE protocol passes everything via env
				HideHelp:        true, // Don't show help for this internal command
				Action: func(_ context.Context, cmd *cli.Command) error {
					return compcli.Bridge(compcli.BridgeParams{
						CacheDir: cacheDir,
						LogLevel: cmd.String("log-level"),
						Line:     os.Getenv("COMP_LINE"),
						Point:    os.Getenv("COMP_POINT"),
					})
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
