// Words command for the wordsmith CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordsmith/internal/lesson"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

type wordsOutput struct {
	Total int               `json:"total"`
	Words []types.WordEntry `json:"words"`
}

func newWordsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the most recently stored words and their example sentences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return userErr(errors.New("--limit must be positive"))
			}
			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			ctx := cmd.Context()
			total, err := store.CountWords(ctx)
			if err != nil {
				return sysErr(fmt.Errorf("count words: %w", err))
			}
			entries, err := store.RecentWords(ctx, limit)
			if err != nil {
				return sysErr(fmt.Errorf("recent words: %w", err))
			}

			if a.flags.json {
				return writeJSON(a.stdout, wordsOutput{Total: total, Words: entries})
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.stdout, "No words stored yet.")
				return nil
			}
			fmt.Fprintf(a.stdout, "%d words stored, showing %d most recent:\n", total, len(entries))
			for _, e := range entries {
				fmt.Fprintf(a.stdout, "%d. %s\n", e.Word.ID, e.Word.Text)
				for _, p := range e.Patterns {
					fmt.Fprintf(a.stdout, "   - %s\n", p)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", lesson.RecentLimit, "number of words to show")
	return cmd
}
