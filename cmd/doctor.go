package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the workspace and sandbox launcher",
	Long: `Check that the workspace is usable and that commands run the way the
settings ask for.

Reports "degraded" when the sandbox is enabled but its launcher is missing,
because commands then run without it. Exits non-zero when unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	statusStyles = map[health.Status]lipgloss.Style{
		health.StatusHealthy:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		health.StatusDegraded:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		health.StatusUnhealthy: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	result := a.Doctor(cmd.Context())
	status := result.Summary()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Workspace:"), result.Workspace)
	fmt.Fprintf(out, "  Exists: %s\n", boolStatus(result.WorkspaceExists))
	fmt.Fprintf(out, "  Writable: %s\n", boolStatus(result.WorkspaceWritable))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Sandbox:"), enabledLabel(result.SandboxEnabled))
	if result.SandboxEnabled {
		fmt.Fprintf(out, "  Launcher: %s %s\n", result.Launcher, boolStatus(result.LauncherPresent))
		fmt.Fprintf(out, "  Required: %s\n", boolStatus(result.SandboxRequired))
	}
	if result.WorkspaceExists {
		fmt.Fprintf(out, "%s %s (%s)\n", labelStyle.Render("Shell:"), boolStatus(result.ShellWorks), result.ShellLatency.Round(time.Millisecond))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Status:"), statusStyles[status].Render(string(status)))

	for _, p := range result.Problems() {
		logWarning("%s", p)
	}

	if status == health.StatusUnhealthy {
		return errors.New(errors.ExitGeneralError, errors.KindGeneral, "toolkit is unhealthy")
	}
	return nil
}

func boolStatus(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

func enabledLabel(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
