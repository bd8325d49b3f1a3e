package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/XSaadiX/Quiz-app/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with question catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a JSON or XLSX catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", args[0], len(c.Questions))
		return nil
	},
}

var catalogConvertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Convert a catalog between JSON and XLSX",
	Long:  "Convert a catalog between JSON and XLSX. The output format follows the DST extension.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		dst := args[1]
		if strings.EqualFold(filepath.Ext(dst), ".xlsx") {
			err = catalog.WriteXLSX(c, dst)
		} else {
			var data []byte
			data, err = c.Marshal()
			if err == nil {
				err = os.WriteFile(dst, append(data, '\n'), 0o644)
			}
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(c.Questions), dst)
		return nil
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the built-in catalog as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalog.Seed().Marshal()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogConvertCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
}
