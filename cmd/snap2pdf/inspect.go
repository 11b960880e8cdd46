// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snap2pdf/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Validate a PDF and show its pages and images",
	Long: `Inspect validates a PDF document and reports, for every page, its size
and the images it draws with their placement in PDF points.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print the report as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	report, err := inspect.Inspect(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "%s: %d pages\n", args[0], report.PageCount)
	for _, p := range report.Pages {
		fmt.Fprintf(out, "page %d: %gx%g\n", p.Number, p.Width, p.Height)
		for _, img := range p.Images {
			fmt.Fprintf(out, "  %s %dx%d %s at (%g, %g) %gx%g\n",
				img.Name, img.Width, img.Height, img.Filter, img.X, img.Y, img.W, img.H)
		}
	}
	return nil
}
