// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snap2pdf/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exports",
	Long: `History lists documents written by export, newest first, from the
ledger kept in the document directory.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of exports to show")
	historyCmd.Flags().Bool("json", false, "print records as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	l, err := ledger.Open(cfg.Output.DocumentDir)
	if err != nil {
		return err
	}
	defer l.Close()

	records, err := l.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no exports yet")
		return nil
	}
	for _, r := range records {
		shared := ""
		if r.Shared {
			shared = "  shared"
		}
		fmt.Fprintf(out, "%s  %-24s %3d pages %9d bytes  %s%s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.Name, r.Pages, r.Bytes, r.Path, shared)
	}
	return nil
}
