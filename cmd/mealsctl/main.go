// mealsctl is the operator CLI: it converts recipe documents between the
// plain and attribute-tagged encodings, validates them against the schema,
// uploads them to the configured store, and regenerates the weekly schedule.
package main

import (
	"fmt"
	"os"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mealsctl",
	Short:         "Utilities for the meals site recipe store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional outside local development.
		_ = godotenv.Load()
		return common.InitLogger(logLevel)
	},
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(uploadCmd)
}

func main() {
	defer common.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
