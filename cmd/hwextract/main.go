// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hwextract CLI, which pulls
// homework submissions for a known roster of students out of a zip archive
// and sorts them into per-student directories.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in the persistent pre-run; commands pass it down to
// the stages that emit warnings and debug detail.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the hwextract CLI.
var rootCmd = &cobra.Command{
	Use:   "hwextract",
	Short: "Extract homework submissions for rostered students from a zip archive",
	Long: `hwextract reads a roster of students (one "Last, First" per line), lists
the entries of a submission zip archive, and copies each entry that
unambiguously names a rostered student into <output>/<Last>_<First>/.

Name matching normalizes both sides: umlauts are folded (ä→ae, ö→oe, ü→ue,
ß→ss), everything is lower-cased, and characters outside [a-z0-9] are
stripped, so "O'Brien, Mary" matches "maryobrien_assignment.zip".`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hwextract.yaml or ~/.config/hwextract/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging (per-entry match detail)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hwextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hwextract"))
		}
	}

	viper.SetDefault("roster.path", filepath.Join("resources", "students.txt"))
	viper.SetDefault("history.state_dir", "state")

	viper.SetEnvPrefix("HWEXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
