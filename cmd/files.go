package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory and its parents in the workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.MakeDirectory(cmd.Context(), args[0]))
	},
}

var writeCmd = &cobra.Command{
	Use:   "write <path> [content]",
	Short: "Write a file in the workspace, replacing its contents",
	Long: `Write a file in the workspace, replacing its contents.

Without a content argument the content is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentArg(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.WriteFile(cmd.Context(), args[0], content))
	},
}

var appendCmd = &cobra.Command{
	Use:   "append <path> [content]",
	Short: "Append to a file in the workspace",
	Long: `Append to a file in the workspace, creating it if needed.

Without a content argument the content is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentArg(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.AppendFile(cmd.Context(), args[0], content))
	},
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Print a file from the workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.ReadFile(cmd.Context(), args[0]))
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a workspace directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		a, err := loadApp()
		if err != nil {
			return err
		}
		return printResult(cmd, a.Toolkit.ListDirectory(cmd.Context(), path))
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd, writeCmd, appendCmd, readCmd, lsCmd)
}

// contentArg returns the second argument, or stdin when it is absent.
func contentArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read content from stdin: %w", err)
	}
	return string(data), nil
}

func printResult(cmd *cobra.Command, out string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
