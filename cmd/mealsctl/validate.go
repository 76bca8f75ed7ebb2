package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryan-miles/meals.stellation.one/internal/core/recipe"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file-or-dir...>",
	Short: "Validate recipe documents against the schema",
	Long: `Validates recipe JSON files. Directories are walked recursively.
Valid files are rewritten in canonical indented form; invalid files are
left untouched and the command exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && strings.HasSuffix(path, ".json") {
					paths = append(paths, path)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", arg, err)
			}
		} else {
			paths = append(paths, arg)
		}
	}

	failures := 0
	for _, path := range paths {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s\n%v\n", path, err)
			failures++
		} else {
			fmt.Printf("OK   %s\n", path)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failures, len(paths))
	}
	return nil
}

// validateFile checks one document and, when valid, rewrites it in
// canonical indented form. An invalid file is never modified.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	result := recipe.Validate(&rec)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warn %s: %s\n", path, w)
	}
	if !result.OK() {
		return fmt.Errorf("  - %s", strings.Join(result.Errors, "\n  - "))
	}

	canonical, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(canonical, '\n'), 0o644); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}
	return nil
}
