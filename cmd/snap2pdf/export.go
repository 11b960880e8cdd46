// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/snap2pdf/internal/arrange"
	"github.com/pdiddy/snap2pdf/internal/assemble"
	"github.com/pdiddy/snap2pdf/internal/export"
	"github.com/pdiddy/snap2pdf/internal/inspect"
	"github.com/pdiddy/snap2pdf/internal/ledger"
	"github.com/pdiddy/snap2pdf/internal/media"
	"github.com/pdiddy/snap2pdf/internal/share"
	"github.com/pdiddy/snap2pdf/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [images...]",
	Short: "Assemble images into a PDF and share it",
	Long: `Export picks the given images (files or directories), optionally reads a
YAML manifest, and assembles one page per image in order. The document is
written to the document directory as <name>.pdf and then handed to the share
target. If sharing is not available the file is kept and a notice printed.

With --arrange an interactive list lets you reorder and remove images before
the document is built.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("name", "", "document name (default MyDocument)")
	exportCmd.Flags().String("manifest", "", "YAML manifest listing images in page order")
	exportCmd.Flags().Bool("arrange", false, "reorder images interactively before export")
	exportCmd.Flags().String("layout", "", "image placement: stretch or fit")
	exportCmd.Flags().String("share", "", "share target: open, upload, or none")
	exportCmd.Flags().Float64("quality", 0, "JPEG quality for picked images in (0, 1]")
	exportCmd.Flags().Bool("single", false, "keep only the first picked image")
	exportCmd.Flags().Bool("no-overwrite", false, "fail if a document with the same name exists")
	exportCmd.Flags().Bool("no-history", false, "do not record the export in the history ledger")

	_ = viper.BindPFlag("page.layout", exportCmd.Flags().Lookup("layout"))
	_ = viper.BindPFlag("share.backend", exportCmd.Flags().Lookup("share"))
	_ = viper.BindPFlag("picker.quality", exportCmd.Flags().Lookup("quality"))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetString("manifest")
	if len(args) == 0 && manifest == "" {
		return fmt.Errorf("provide one or more images or directories, or --manifest")
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if single, _ := cmd.Flags().GetBool("single"); single {
		cfg.Picker.AllowMultiple = false
	}
	if noOverwrite, _ := cmd.Flags().GetBool("no-overwrite"); noOverwrite {
		cfg.Output.Overwrite = false
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.Output.Ledger = false
	}

	g, err := gather(ctx, cfg.Picker, args, manifest, out, logger)
	if errors.Is(err, media.ErrCancelled) {
		fmt.Fprintln(out, "nothing selected")
		return nil
	}
	if err != nil {
		return err
	}

	name := cfg.Output.Name
	if g.manifestName != "" {
		name = g.manifestName
	}
	if n, _ := cmd.Flags().GetString("name"); n != "" {
		name = n
	}

	if doArrange, _ := cmd.Flags().GetBool("arrange"); doArrange {
		order, err := arrange.Run(ctx, g.images.Entries(), os.Stdin, os.Stderr)
		if errors.Is(err, arrange.ErrAborted) {
			fmt.Fprintln(out, "export cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		if err := arrange.Apply(g.images, order); err != nil {
			return err
		}
	}

	store := storage.NewOS(cfg.Output.DocumentDir)
	asm, err := assemble.New(store, assemble.Options{
		Page:   cfg.Page,
		Title:  name,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	sharer, err := share.New(cfg.Share)
	if err != nil {
		return err
	}
	if u, ok := sharer.(*share.UploadSharer); ok {
		u.SetLogger(logger)
	}

	exp := &export.Exporter{
		Assembler: asm,
		Writer:    export.NewWriter(store, cfg.Output.Overwrite),
		Verify:    inspect.Validate,
		Sharer:    sharer,
		Logger:    logger,
	}
	if cfg.Output.Ledger {
		l, err := ledger.Open(store.DocumentDir())
		if err != nil {
			logger.Warn("history disabled", "err", err)
		} else {
			defer l.Close()
			exp.Ledger = l
		}
	}

	res, err := exp.Export(ctx, g.images, name, out)
	if err != nil {
		return err
	}
	logger.Info("export complete", "path", res.Path, "pages", res.Pages, "elapsed", res.Elapsed.Round(time.Millisecond))
	return nil
}
