package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"
	"github.com/ryan-miles/meals.stellation.one/internal/store"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert recipe documents between plain and attribute-tagged JSON",
}

var convertEncodeCmd = &cobra.Command{
	Use:   "encode <file...>",
	Short: "Encode plain recipe JSON into the attribute-tagged form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvertEncode,
}

var convertDecodeCmd = &cobra.Command{
	Use:   "decode <file...>",
	Short: "Decode attribute-tagged recipe JSON back to the plain form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvertDecode,
}

func init() {
	convertCmd.AddCommand(convertEncodeCmd)
	convertCmd.AddCommand(convertDecodeCmd)
}

// stripJSONExt removes a trailing .json so the output suffix replaces it
// instead of stacking.
func stripJSONExt(path string) string {
	return strings.TrimSuffix(path, ".json")
}

func runConvertEncode(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		encoded, err := store.EncodeDocument(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out := stripJSONExt(path) + ".dynamo.json"
		if err := writeDocument(out, encoded); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}

func runConvertDecode(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		decoded, err := store.DecodeDocument(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out := stripJSONExt(path) + ".plain.json"
		if err := writeDocument(out, decoded); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}

func readDocument(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc map[string]interface{}
	if err := common.ParseJSONBytes(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func writeDocument(path string, doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
