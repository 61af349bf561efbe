package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
)

var (
	verbose           bool
	jsonOutput        bool
	configPath        string
	workspaceOverride string
)

var rootCmd = &cobra.Command{
	Use:   "forage-tools",
	Short: "Workspace-confined file and command tools for agents",
	Long: `forage-tools gives an agent a constrained set of operations on one
workspace directory:

  - Create, write, append, read and list files (paths cannot leave the workspace)
  - Run shell commands with a timeout, optionally through a sandbox launcher
  - Install Python packages by validated name

Every operation prints its result text. Failures print a line starting with
"Error: " and do not change the exit status; only configuration problems do.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

// Execute runs the CLI. An interrupt cancels the running operation,
// killing any child process.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Settings file (default $"+config.ConfigPathEnv+" or ./config.json)")
	rootCmd.PersistentFlags().StringVarP(&workspaceOverride, "workspace", "w", "", "Use this workspace for this run without saving it")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

// settingsPath returns the settings file selected by flag or environment.
func settingsPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadApp builds the application for one command invocation.
func loadApp() (*app.App, error) {
	opts := []app.Option{app.WithConfigPath(settingsPath())}
	if workspaceOverride != "" {
		ws := workspaceOverride
		opts = append(opts, app.WithOverrides(func(s *config.Settings) {
			s.Workspace = ws
		}))
	}
	return app.New(opts...)
}
