// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hwextract/internal/extract"
	"github.com/pdiddy/hwextract/internal/history"
	"github.com/pdiddy/hwextract/internal/roster"
	"github.com/pdiddy/hwextract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract --z <zip> --o <output>",
	Short: "Copy matched submission files into per-student directories",
	Long: `Extract lists the archive's entries, matches each against the roster,
and copies unambiguous matches to <output>/<Last>_<First>/<file>. Ambiguous
and unrelated entries are skipped; per-file copy failures are reported but
do not abort the run.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("z", "", "path to the submission zip archive (required)")
	extractCmd.Flags().String("o", "", "path to the output folder (required)")
	extractCmd.Flags().String("roster", "", "roster file (default from config: resources/students.txt)")
	extractCmd.Flags().String("ext", "", `only consider entries with this extension (e.g. ".pdf")`)
	extractCmd.Flags().Bool("no-history", false, "skip recording this run in the history database")
	_ = extractCmd.MarkFlagRequired("z")
	_ = extractCmd.MarkFlagRequired("o")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	zipPath, _ := cmd.Flags().GetString("z")
	outputDir, _ := cmd.Flags().GetString("o")
	ext, _ := cmd.Flags().GetString("ext")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	rosterPath, _ := cmd.Flags().GetString("roster")
	if rosterPath == "" {
		rosterPath = viper.GetString("roster.path")
	}

	students, err := roster.Load(rosterPath, logger)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return fmt.Errorf("roster %s contains no valid students", rosterPath)
	}

	cfg := types.ExtractionConfig{
		ZipPath:   zipPath,
		OutputDir: outputDir,
		Ext:       ext,
	}

	result, err := extract.Run(cfg, students, os.Stdout, logger)
	if err != nil {
		return err
	}

	// Per-file failures and ambiguous entries are already counted in the
	// summary; the run itself still completed, so exit zero.
	if !noHistory && !viper.GetBool("history.disabled") {
		if err := recordRun(cmd, cfg, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history record failed: %v\n", err)
		}
	}
	return nil
}

func recordRun(cmd *cobra.Command, cfg types.ExtractionConfig, result extract.BatchResult) error {
	store, err := history.NewStore(types.HistoryConfig{StateDir: viper.GetString("history.state_dir")})
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), cfg, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "recorded run %d\n", id)
	return nil
}
