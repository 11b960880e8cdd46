// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snap2pdf/internal/media"
)

var listCmd = &cobra.Command{
	Use:   "list [images...]",
	Short: "Show the images an export would use, in page order",
	Long: `List resolves images and manifests exactly like export and prints the
resulting page order with each image's color tag. Nothing is assembled or
written apart from the cached image copies.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("manifest", "", "YAML manifest listing images in page order")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	if len(args) == 0 && manifest == "" {
		return fmt.Errorf("provide one or more images or directories, or --manifest")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	g, err := gather(ctx, cfg.Picker, args, manifest, cmd.ErrOrStderr(), loggerFromContext(ctx))
	if errors.Is(err, media.ErrCancelled) {
		fmt.Fprintln(out, "nothing selected")
		return nil
	}
	if err != nil {
		return err
	}

	for i, e := range g.images.Entries() {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ")
		fmt.Fprintf(out, "%3d  %s %s  %s\n", i+1, swatch, e.Color, filepath.Base(e.URI))
	}
	return nil
}
