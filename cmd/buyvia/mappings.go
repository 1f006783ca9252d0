package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eskdev24/buyvia-voice-api/internal/accent"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
	"github.com/eskdev24/buyvia-voice-api/internal/validation"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Manage learned dialect mappings",
	Long:  "List, add, import, and export learned dialect mappings without running the server.",
}

var mappingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learned mappings",
	Args:  cobra.NoArgs,
	RunE:  runMappingsList,
}

var mappingsAddCmd = &cobra.Command{
	Use:   "add <dialect> <standard>",
	Short: "Learn one dialect spelling",
	Args:  cobra.ExactArgs(2),
	RunE:  runMappingsAdd,
}

var mappingsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Learn mappings from a YAML file of dialect: standard pairs",
	Long:  "Learn mappings from a YAML file of dialect: standard pairs. Reads stdin when no file or - is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMappingsImport,
}

var mappingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write learned mappings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runMappingsExport,
}

func init() {
	mappingsCmd.AddCommand(mappingsListCmd)
	mappingsCmd.AddCommand(mappingsAddCmd)
	mappingsCmd.AddCommand(mappingsImportCmd)
	mappingsCmd.AddCommand(mappingsExportCmd)
}

func runMappingsList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	mappings, err := db.ListLearnedMappings(cmd.Context())
	if err != nil {
		return fmt.Errorf("list mappings: %w", err)
	}

	if jsonOutput {
		if mappings == nil {
			mappings = []types.LearnedMapping{}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"mappings": mappings,
			"total":    len(mappings),
		})
	}

	if len(mappings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No learned mappings.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "DIALECT\tSTANDARD\tUPDATED")
	for _, m := range mappings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Dialect, m.Standard, m.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runMappingsAdd(cmd *cobra.Command, args []string) error {
	req := types.MappingRequest{Dialect: args[0], Standard: args[1]}
	if errs := validation.ValidateMappingRequest(req); len(errs) > 0 {
		return fmt.Errorf("invalid mapping: %s %s", errs[0].Field, errs[0].Message)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	dialect, standard := accent.Fold(req.Dialect), accent.NormalizeStandard(req.Standard)
	if err := db.SaveLearnedMapping(cmd.Context(), dialect, standard); err != nil {
		return fmt.Errorf("save mapping: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), types.MappingRequest{Dialect: dialect, Standard: standard})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Learned %q -> %q\n", dialect, standard)
	return nil
}

func runMappingsImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var raw map[string]string
	if err := yaml.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}

	req := types.BulkMappingsRequest{Mappings: raw}
	if errs := validation.ValidateBulkMappingsRequest(req, validation.DefaultMaxBulkMappings); len(errs) > 0 {
		return fmt.Errorf("invalid mappings: %s %s", errs[0].Field, errs[0].Message)
	}

	entries := make(map[string]string, len(raw))
	for k, v := range raw {
		entries[accent.Fold(k)] = accent.NormalizeStandard(v)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.SaveLearnedMappings(cmd.Context(), entries)
	if err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), types.BulkMappingsResponse{Loaded: n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mappings\n", n)
	return nil
}

func runMappingsExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	mappings, err := db.ListLearnedMappings(cmd.Context())
	if err != nil {
		return fmt.Errorf("list mappings: %w", err)
	}

	out := make(map[string]string, len(mappings))
	for _, m := range mappings {
		out[m.Dialect] = m.Standard
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	return enc.Close()
}
