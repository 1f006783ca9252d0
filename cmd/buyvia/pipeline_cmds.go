package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eskdev24/buyvia-voice-api/internal/pipeline"
)

var withLearned bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize <text>...",
	Short: "Rewrite dialect spellings into standard English",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalize,
}

var parseCmd = &cobra.Command{
	Use:   "parse <text>...",
	Short: "Normalize and classify an utterance",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the installed command categories",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	for _, c := range []*cobra.Command{normalizeCmd, parseCmd} {
		c.Flags().BoolVar(&withLearned, "learned", false,
			"Apply learned mappings from the database")
	}
}

// offlinePipeline builds a pipeline, loading the learned overlay on request.
func offlinePipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	p, err := newPipeline()
	if err != nil {
		return nil, err
	}
	if withLearned {
		if err := loadLearned(cmd.Context(), p); err != nil {
			return nil, fmt.Errorf("load learned mappings: %w", err)
		}
	}
	return p, nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	p, err := offlinePipeline(cmd)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	normalized := p.Normalize(text)

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"original":   text,
			"normalized": normalized,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), normalized)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	p, err := offlinePipeline(cmd)
	if err != nil {
		return err
	}

	res := p.Parse(strings.Join(args, " "))

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), res)
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintf(w, "normalized:\t%s\n", res.NormalizedText)
	fmt.Fprintf(w, "command:\t%s\n", res.Command.Type)
	fmt.Fprintf(w, "confidence:\t%.2f\n", res.Command.Confidence)
	for _, k := range slices.Sorted(maps.Keys(res.Command.Params)) {
		fmt.Fprintf(w, "%s:\t%v\n", k, res.Command.Params[k])
	}
	return w.Flush()
}

func runCatalog(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	decls := p.Catalog().Declarations()

	if jsonOutput {
		items := make([]map[string]any, len(decls))
		for i, d := range decls {
			patterns := make([]string, len(d.Patterns))
			for j, e := range d.Patterns {
				patterns[j] = e.Text
			}
			items[i] = map[string]any{
				"id":       d.ID,
				"patterns": patterns,
			}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"categories": items,
			"total":      len(items),
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "CATEGORY\tPATTERNS\tFIRST")
	for _, d := range decls {
		first := "-"
		if len(d.Patterns) > 0 {
			first = d.Patterns[0].Text
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", d.ID, len(d.Patterns), first)
	}
	return w.Flush()
}
