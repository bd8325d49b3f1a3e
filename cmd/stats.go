package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/XSaadiX/Quiz-app/internal/question"
	"github.com/XSaadiX/Quiz-app/internal/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if sessions, _ := cmd.Flags().GetBool("sessions"); sessions {
			keys, err := d.adapter.Keys(contextOf(cmd))
			if err != nil {
				return fmt.Errorf("list saved sessions: %w", err)
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		}

		q, restored, err := d.newQuiz(contextOf(cmd))
		if err != nil {
			return err
		}
		stats := q.Statistics()

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		if !restored {
			fmt.Fprintln(out, "No saved progress.")
		}
		return printStats(out, stats)
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
	statsCmd.Flags().Bool("sessions", false, "List the keys of all saved sessions")
}

func printStats(out io.Writer, s quiz.Statistics) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Phase\t%s\n", s.Phase)
	fmt.Fprintf(tw, "Answered\t%d/%d (%d%%)\n", s.Answered, s.Total, s.Progress)
	fmt.Fprintf(tw, "Elapsed\t%.0fs\n", s.ElapsedSeconds)
	if s.Answered > 0 {
		fmt.Fprintf(tw, "Avg per answer\t%.1fs\n", s.AverageSecondsPerAnswer)
	}
	fmt.Fprintf(tw, "Attempts\t%d\n", s.Attempts)
	if s.Score != nil && s.Passed != nil {
		verdict := "not passed"
		if *s.Passed {
			verdict = "passed"
		}
		fmt.Fprintf(tw, "Score\t%d/%d (%s)\n", *s.Score, s.Total, verdict)
	}

	for _, k := range question.AllKinds() {
		t := s.ByKind[k]
		fmt.Fprintf(tw, "%s\t%d/%d answered\n", k.DisplayName(), t.Answered, t.Total)
	}

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		t := s.ByCategory[c]
		fmt.Fprintf(tw, "  %s\t%d/%d answered\n", c, t.Answered, t.Total)
	}
	return tw.Flush()
}
