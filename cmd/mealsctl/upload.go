package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"
	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/spf13/cobra"
)

var uploadSkipValidation bool

var uploadCmd = &cobra.Command{
	Use:   "upload <file...>",
	Short: "Upload recipe documents to the configured store backend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadSkipValidation, "skip-validation", false, "upload even when schema validation fails")
}

func runUpload(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		var rec recipe.Recipe
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		if result := recipe.Validate(&rec); !result.OK() && !uploadSkipValidation {
			return fmt.Errorf("%s failed validation: %v", path, result.Errors)
		}

		if err := st.PutRecipe(ctx, &rec); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		fmt.Printf("Uploaded %s (%s)\n", path, rec.ID)
	}
	return nil
}
