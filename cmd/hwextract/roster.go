// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hwextract/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Inspect the student roster",
}

var rosterCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the roster and print the parsed identities",
	Long: `Check loads the roster file, printing each parsed identity and its
output directory name. Malformed lines show up as warnings, which makes
this the quickest way to validate a roster before an extraction run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("roster")
		if path == "" {
			path = viper.GetString("roster.path")
		}

		students, err := roster.Load(path, logger)
		if err != nil {
			return err
		}

		for _, s := range students {
			fmt.Fprintf(os.Stdout, "%-30s -> %s/\n", s.Display(), s.DirName())
		}
		fmt.Fprintf(os.Stdout, "\n%d student(s) in %s\n", len(students), path)
		return nil
	},
}

func init() {
	rosterCheckCmd.Flags().String("roster", "", "roster file (default from config: resources/students.txt)")

	rosterCmd.AddCommand(rosterCheckCmd)
	rootCmd.AddCommand(rosterCmd)
}
