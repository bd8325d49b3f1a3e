package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase saved quiz progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := contextOf(cmd)
		keys := []string{d.cfg.StorageKey}
		if all, _ := cmd.Flags().GetBool("all"); all {
			if keys, err = d.adapter.Keys(ctx); err != nil {
				return fmt.Errorf("list saved sessions: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		for _, k := range keys {
			d.adapter.Clear(ctx, k)
			fmt.Fprintf(out, "Cleared saved progress for %q.\n", k)
		}
		if len(keys) == 0 {
			fmt.Fprintln(out, "No saved progress.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Erase every saved session, not just storage_key")
}
