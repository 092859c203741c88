package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"songrenamer/internal/journal"
)

const shortRunIDLength = 8

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent rename runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(ctx, func(store *journal.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No rename runs recorded")
					return nil
				}
				printRunTable(out, runs)
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show every entry recorded for a run (full ID or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(ctx, func(store *journal.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entries, err := store.Entries(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				printRunDetail(cmd.OutOrStdout(), run, entries, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}
}

func withJournal(ctx *commandContext, fn func(*journal.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("the rename journal is disabled (set [journal] enabled = true)")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func printRunTable(out io.Writer, runs []journal.Run) {
	headers := []string{"ID", "Started", "Status", "Dry Run", "Renamed", "Unchanged", "Skipped", "Unmatched", "Root"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			formatTimestamp(run.StartedAt),
			string(run.Status),
			yesNo(run.DryRun),
			strconv.Itoa(run.Renamed),
			strconv.Itoa(run.Unchanged),
			strconv.Itoa(run.Skipped),
			strconv.Itoa(run.Unmatched),
			run.RootDir,
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}

func printRunDetail(out io.Writer, run journal.Run, entries []journal.Entry, colorize bool) {
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Status", runStatusKind(run.Status), string(run.Status), colorize))
	fmt.Fprintln(out, renderStatusLine("Root", statusInfo, run.RootDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Catalog", statusInfo, run.CatalogPath, colorize))
	fmt.Fprintln(out, renderStatusLine("Dry run", statusInfo, yesNo(run.DryRun), colorize))
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, formatTimestamp(run.StartedAt), colorize))
	if run.Finished() {
		fmt.Fprintln(out, renderStatusLine("Finished", statusInfo, formatTimestamp(run.FinishedAt), colorize))
	}
	if run.Error != "" {
		fmt.Fprintln(out, renderStatusLine("Error", statusError, run.Error, colorize))
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries recorded")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Kind, entry.Outcome, entry.SourcePath, entry.TargetPath})
	}
	fmt.Fprintln(out, renderTable([]string{"Kind", "Outcome", "Source", "Target"}, rows, nil))
}

func runStatusKind(status journal.Status) statusKind {
	switch status {
	case journal.StatusCompleted:
		return statusOK
	case journal.StatusFailed:
		return statusError
	default:
		return statusWarn
	}
}

func shortRunID(id string) string {
	if len(id) <= shortRunIDLength {
		return id
	}
	return id[:shortRunIDLength]
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

