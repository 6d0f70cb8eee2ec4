package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reclip/internal/config"
	"reclip/internal/ledger"
)

const ledgerTitleWidth = 40

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and maintain the publication ledger",
	}

	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerStatusCommand(ctx))
	ledgerCmd.AddCommand(newLedgerBackupCommand(ctx))
	ledgerCmd.AddCommand(newLedgerClearCommand(ctx))

	return ledgerCmd
}

func withLedger(ctx *commandContext, fn func(*config.Config, *ledger.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ledger.Open(cfg)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(ctx, func(_ *config.Config, store *ledger.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				var filter ledger.Status
				if statusFilter != "" {
					parsed, ok := ledger.ParseStatus(statusFilter)
					if !ok {
						return fmt.Errorf("unknown status %q", statusFilter)
					}
					filter = parsed
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					if filter != "" && entry.Status != filter {
						continue
					}
					rows = append(rows, []string{
						entry.VideoID,
						string(entry.Status),
						entry.ProcessedAt.Format("2006-01-02 15:04"),
						formatPublishedAt(entry.PublishedAt),
						truncate(entry.Title, ledgerTitleWidth),
					})
				}

				stdout := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(stdout, "Ledger is empty")
					return nil
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Video ID", "Status", "Processed", "Published", "Title"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				fmt.Fprintf(stdout, "%d entries\n", len(rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show entries with this status (pending, uploaded)")
	return cmd
}

func newLedgerStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <video-id>",
		Short: "Show one ledger entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(ctx, func(_ *config.Config, store *ledger.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if entry == nil {
					fmt.Fprintf(stdout, "No ledger entry for %s\n", args[0])
					return nil
				}
				fmt.Fprintf(stdout, "Video ID:     %s\n", entry.VideoID)
				fmt.Fprintf(stdout, "Title:        %s\n", entry.Title)
				fmt.Fprintf(stdout, "Status:       %s\n", entry.Status)
				fmt.Fprintf(stdout, "Processed at: %s\n", entry.ProcessedAt.Format(time.RFC3339))
				fmt.Fprintf(stdout, "Published at: %s\n", formatPublishedAt(entry.PublishedAt))
				fmt.Fprintf(stdout, "Compilation:  %s\n", entry.CompilationPath)
				return nil
			})
		},
	}
}

func newLedgerBackupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the ledger database to the backup directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(ctx, func(cfg *config.Config, store *ledger.Store) error {
				if cfg.Paths.BackupDir == "" {
					return errors.New("paths.backup_dir is not configured")
				}
				path, err := store.Backup(cmd.Context(), cfg.Paths.BackupDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
				return nil
			})
		},
	}
}

func newLedgerClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("ledger clear is destructive; rerun with --force")
			}
			return withLedger(ctx, func(_ *config.Config, store *ledger.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm removing every ledger entry")
	return cmd
}

func formatPublishedAt(at *time.Time) string {
	if at == nil {
		return "-"
	}
	return at.Format("2006-01-02 15:04")
}

func truncate(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
