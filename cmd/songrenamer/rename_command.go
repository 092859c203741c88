package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"songrenamer/internal/config"
	"songrenamer/internal/renamer"
	"songrenamer/internal/renamerun"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var overrides logOverrides
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename <root_dir> <catalog>",
		Short: "Rename audio files and album folders under root_dir",
		Long: "Rename every audio file whose trailing code matches an ISRC in the catalog\n" +
			"to \"{sequence}-{track}{ext}\", then rename every folder whose name matches a\n" +
			"UPC to the album name. Files are always handled before folders.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := renamerun.ValidateInputs(args[0], args[1]); err != nil {
				return err
			}
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := overrides.apply(cfg); err != nil {
				return err
			}

			result, runErr := renamerun.Run(cmd.Context(), cfg, renamerun.Options{
				RootDir:     args[0],
				CatalogPath: args[1],
				DryRun:      dryRun,
			})
			if result.RunID != "" {
				printRenameSummary(cmd.OutOrStdout(), cfg, result, dryRun, runErr, shouldColorize(cmd.OutOrStdout()))
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log planned renames without touching the filesystem")
	cmd.Flags().BoolVar(&overrides.warn, "warn", false, "Only log warnings and errors")
	cmd.Flags().BoolVarP(&overrides.quiet, "quiet", "q", false, "Do not mirror log output to the terminal")
	cmd.Flags().StringVar(&overrides.delimiter, "delimiter", "", "Catalog field delimiter (single character or \\t)")
	cmd.Flags().StringVar(&overrides.logFile, "log-file", "", "Log file path (overrides logging.file)")
	return cmd
}

func printRenameSummary(out io.Writer, cfg *config.Config, result renamerun.Result, dryRun bool, runErr error, colorize bool) {
	title := "Rename summary"
	if dryRun {
		title = "Rename summary (dry run)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}

	headers := []string{"Kind", "Renamed", "Planned", "Unchanged", "Skipped", "Unmatched", "Invalid", "Total"}
	rows := [][]string{
		countsRow("Files", result.Summary.Files),
		countsRow("Folders", result.Summary.Directories),
	}
	fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}))

	fmt.Fprintln(out, renderStatusLine("Run ID", statusInfo, result.RunID, colorize))
	fmt.Fprintln(out, renderStatusLine("Catalog", statusInfo, fmt.Sprintf("%d songs, %d albums", result.Songs, result.Albums), colorize))
	fmt.Fprintln(out, renderStatusLine("Log file", statusInfo, cfg.Logging.File, colorize))
	if cfg.Journal.Enabled {
		fmt.Fprintln(out, renderStatusLine("Journal", statusInfo, cfg.JournalPath(), colorize))
	}

	kind, message := runOutcome(result.Summary, dryRun, runErr)
	fmt.Fprintln(out, renderStatusLine("Result", kind, message, colorize))
}

func runOutcome(summary renamer.Summary, dryRun bool, runErr error) (statusKind, string) {
	if runErr != nil {
		return statusError, "stopped early; earlier renames were kept"
	}
	unmatched := summary.Files.Unmatched + summary.Directories.Unmatched +
		summary.Files.Invalid + summary.Directories.Invalid
	if dryRun {
		planned := summary.Files.Planned + summary.Directories.Planned
		return statusInfo, fmt.Sprintf("%d renames planned, nothing changed", planned)
	}
	renamed := summary.Files.Renamed + summary.Directories.Renamed
	if unmatched > 0 {
		return statusWarn, fmt.Sprintf("%d renamed, %d left unmatched (see log)", renamed, unmatched)
	}
	return statusOK, fmt.Sprintf("%d renamed", renamed)
}

func countsRow(label string, c renamer.Counts) []string {
	return []string{
		label,
		strconv.Itoa(c.Renamed),
		strconv.Itoa(c.Planned),
		strconv.Itoa(c.Unchanged),
		strconv.Itoa(c.Skipped),
		strconv.Itoa(c.Unmatched),
		strconv.Itoa(c.Invalid),
		strconv.Itoa(c.Total()),
	}
}
