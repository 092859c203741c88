package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"songrenamer/internal/catalog"
	"songrenamer/internal/logging"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog files",
	}
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	return catalogCmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var overrides logOverrides

	cmd := &cobra.Command{
		Use:   "show <catalog>",
		Short: "Parse a catalog and print its song and album tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := overrides.apply(cfg); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			logger, closer, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer closer.Close()

			cat, err := catalog.Load(args[0], catalog.Options{
				Delimiter: cfg.CatalogDelimiter(),
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader(fmt.Sprintf("Songs (%d)", len(cat.Songs)), colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable([]string{"ISRC", "Seq", "Track"}, songRows(cat), []columnAlignment{alignLeft, alignRight, alignLeft}))

			for _, line := range renderSectionHeader(fmt.Sprintf("Albums (%d)", len(cat.Albums)), colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable([]string{"UPC", "Album"}, albumRows(cat), nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides.delimiter, "delimiter", "", "Catalog field delimiter (single character or \\t)")
	cmd.Flags().BoolVarP(&overrides.quiet, "quiet", "q", false, "Do not mirror log output to the terminal")
	return cmd
}

func songRows(cat *catalog.Catalog) [][]string {
	keys := make([]string, 0, len(cat.Songs))
	for key := range cat.Songs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		song := cat.Songs[key]
		rows = append(rows, []string{song.ISRC, song.Sequence, song.Track})
	}
	return rows
}

func albumRows(cat *catalog.Catalog) [][]string {
	keys := make([]string, 0, len(cat.Albums))
	for key := range cat.Albums {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		album := cat.Albums[key]
		rows = append(rows, []string{album.UPC, album.Name})
	}
	return rows
}
