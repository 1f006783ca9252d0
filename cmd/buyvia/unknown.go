package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eskdev24/buyvia-voice-api/internal/store"
	"github.com/eskdev24/buyvia-voice-api/internal/types"
)

var (
	unknownStatus string
	unknownLimit  int
)

var unknownCmd = &cobra.Command{
	Use:   "unknown",
	Short: "Inspect the persisted unknown-word log",
}

var unknownListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unknown words awaiting curation",
	Args:  cobra.NoArgs,
	RunE:  runUnknownList,
}

func init() {
	unknownListCmd.Flags().StringVar(&unknownStatus, "status", "",
		"Filter by status: pending, suggested, promoted")
	unknownListCmd.Flags().IntVar(&unknownLimit, "limit", 100,
		fmt.Sprintf("Maximum entries to list (at most %d)", store.MaxListLimit))

	unknownCmd.AddCommand(unknownListCmd)
}

func runUnknownList(cmd *cobra.Command, args []string) error {
	status := types.UnknownWordStatus(unknownStatus)
	if status != "" && !status.Valid() {
		return fmt.Errorf("invalid status %q: must be pending, suggested or promoted", unknownStatus)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.ListUnknownWords(cmd.Context(), status, unknownLimit)
	if err != nil {
		return fmt.Errorf("list unknown words: %w", err)
	}

	if jsonOutput {
		if entries == nil {
			entries = []types.UnknownWordRecord{}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"entries": entries,
			"total":   len(entries),
		})
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No unknown words.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tWORD\tSTATUS\tSUGGESTION\tLOGGED\tCONTEXT")
	for _, e := range entries {
		suggestion := "-"
		if e.SuggestedMapping != nil {
			suggestion = *e.SuggestedMapping
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Word,
			e.Status,
			suggestion,
			e.LoggedAt.Format("2006-01-02 15:04"),
			e.Context,
		)
	}
	return w.Flush()
}
