package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
)

var auditLogCmd = &cobra.Command{
	Use:   "audit-log",
	Short: "Display the recorded operations",
	Args:  cobra.NoArgs,
	RunE:  runAuditLog,
}

var (
	auditLogJSON  bool
	auditLogLimit int
)

func init() {
	auditLogCmd.Flags().BoolVar(&auditLogJSON, "json", false, "Output events as JSON lines")
	auditLogCmd.Flags().IntVarP(&auditLogLimit, "lines", "n", 0, "Show only the last N events")
	rootCmd.AddCommand(auditLogCmd)
}

func runAuditLog(cmd *cobra.Command, args []string) error {
	store, err := config.Open(settingsPath())
	if err != nil {
		return err
	}
	path := store.Settings().AuditLog
	if path == "" {
		return errors.ConfigError("audit_log is not set; enable it with: forage-tools config set audit_log <path>", nil)
	}

	events, err := audit.NewLogger(path).Tail(auditLogLimit)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events recorded in %s", path)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if auditLogJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		mark := "✓"
		if !e.OK {
			mark = "✗"
		}
		if e.Details != "" {
			fmt.Fprintf(out, "[%s] %s %-15s %s (%s)\n", ts, mark, e.Op, e.Target, e.Details)
		} else {
			fmt.Fprintf(out, "[%s] %s %-15s %s\n", ts, mark, e.Op, e.Target)
		}
	}

	return nil
}
