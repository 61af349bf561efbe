package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the settings file",
}

var configShowJSON bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(settingsPath())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if configShowJSON {
			text, err := store.Show()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, text)
			return nil
		}

		keyStyle := lipgloss.NewStyle().Bold(true).Width(18)
		fmt.Fprintf(out, "Settings file: %s\n\n", store.Path())
		for _, key := range config.Keys() {
			value, _ := store.Get(key)
			fmt.Fprintf(out, "%s %v\n", keyStyle.Render(key), value)
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(settingsPath())
		if err != nil {
			return err
		}
		if err := store.Validate(); err != nil {
			logError("%v", err)
			return err
		}
		logSuccess("Settings in %s are valid", store.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(settingsPath())
		if err != nil {
			return err
		}
		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open(settingsPath())
		if err != nil {
			return err
		}
		if err := store.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := store.Validate(); err != nil {
			logWarning("Saved, but the settings are now invalid: %v", err)
			return nil
		}
		logSuccess("Set %s = %s", args[0], args[1])
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(settingsPath())
		if err := store.Reset(); err != nil {
			return err
		}
		logSuccess("Restored default settings in %s", store.Path())
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Print the settings as JSON")
	configCmd.AddCommand(configShowCmd, configValidateCmd, configGetCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
