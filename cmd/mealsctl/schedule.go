package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ryan-miles/meals.stellation.one/internal/core/schedule"
	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Weekly schedule operations",
}

var scheduleGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a fresh schedule for the upcoming week",
	Args:  cobra.NoArgs,
	RunE:  runScheduleGenerate,
}

func init() {
	scheduleCmd.AddCommand(scheduleGenerateCmd)
}

func runScheduleGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	st, err := store.New(&cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if closer, ok := st.(io.Closer); ok {
			closer.Close()
		}
	}()

	var invalidator *schedule.Invalidator
	if cfg.CDN.Enabled && cfg.CDN.InvalidationURL != "" {
		invalidator = schedule.NewInvalidator(cfg.CDN.InvalidationURL)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	sched, err := schedule.NewGenerator(st, invalidator).Generate(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
