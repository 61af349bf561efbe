package cmd

import (
	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
)

var execCmd = &cobra.Command{
	Use:   "exec -- <command>",
	Short: "Run a shell command in the workspace",
	Long: `Run a shell command in the workspace.

A single argument is passed to the shell as written, so pipes and
redirections work:

  forage-tools exec -- 'ls | wc -l'

Several arguments are quoted and joined into one command line:

  forage-tools exec -- python -c 'print("hi")'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a Python package with uv",
	Long: `Install a Python package with "uv pip install -q <package>".

The name must be letters, digits, underscores and hyphens, optionally
followed by one bracketed extras group such as uvicorn[standard].`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.InstallPackage(cmd.Context(), args[0]))
	},
}

func init() {
	rootCmd.AddCommand(execCmd, installCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	command := shellCommandLine(args)
	if command == "" {
		return errors.New(errors.ExitGeneralError, errors.KindGeneral, "usage: forage-tools exec -- <command>")
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	return printResult(cmd, a.Toolkit.Execute(cmd.Context(), command))
}

// shellCommandLine turns exec arguments into one command line.
func shellCommandLine(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}
