// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hwextract/internal/history"
	"github.com/pdiddy/hwextract/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past extraction runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded extraction runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		archive, _ := cmd.Flags().GetString("archive")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := store.Runs(cmd.Context(), history.RunFilter{Archive: archive, Limit: limit})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stdout, "no runs recorded")
			return nil
		}

		for _, r := range runs {
			fmt.Fprintf(os.Stdout, "%4d  %s  %s -> %s  extracted=%d ambiguous=%d unmatched=%d failed=%d\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime),
				r.Archive, r.OutputDir,
				r.Extracted, r.Ambiguous, r.Unmatched, r.Failed)
		}
		return nil
	},
}

var historyFilesCmd = &cobra.Command{
	Use:   "files <run-id>",
	Short: "List the per-entry outcomes of one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		student, _ := cmd.Flags().GetString("student")
		files, err := store.Files(cmd.Context(), runID, student)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stdout, "no files recorded for this run")
			return nil
		}

		for _, f := range files {
			line := fmt.Sprintf("%-10s %s", f.Status, f.Entry)
			if f.Dest != "" {
				line += " -> " + f.Dest
			}
			if f.Error != "" {
				line += " (" + f.Error + ")"
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the full run history to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ExportYAML(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "history written to %s\n", args[0])
		return nil
	},
}

func openHistory() (*history.Store, error) {
	return history.NewStore(types.HistoryConfig{StateDir: viper.GetString("history.state_dir")})
}

func init() {
	historyListCmd.Flags().String("archive", "", "only show runs for this archive path")
	historyListCmd.Flags().Int("limit", 0, "maximum number of runs to show (0 = all)")
	historyFilesCmd.Flags().String("student", "", `only show files for this student ("Last, First")`)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyFilesCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
