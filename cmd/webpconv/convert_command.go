package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"webpconv/internal/common"
	"webpconv/internal/concurrency"
	"webpconv/internal/conversion"
	"webpconv/internal/preview"
	"webpconv/internal/session"
)

var errConversionFailed = errors.New("some images failed to convert")

type convertOptions struct {
	quality   int
	scale     int
	outputDir string
	workers   int
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert images to WebP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ctx.loggerTo(cmd.ErrOrStderr())

			settings := session.Settings{
				Quality: cfg.Conversion.DefaultQuality,
				Scale:   cfg.Conversion.DefaultScale,
			}
			if cmd.Flags().Changed("quality") {
				settings.Quality = opts.quality
			}
			if cmd.Flags().Changed("scale") {
				settings.Scale = opts.scale
			}
			workers := cfg.Conversion.Workers
			if cmd.Flags().Changed("workers") {
				workers = opts.workers
			}

			logger := cfg.Logger
			manager := session.NewManager(
				conversion.NewWebPConverter(logger),
				preview.NewStore(logger),
				concurrency.NewWorkerPool(workers),
				logger,
			)
			defer manager.Clear()

			return runConvert(cmd.OutOrStdout(), manager, settings, args, opts.outputDir)
		},
	}

	cmd.Flags().IntVarP(&opts.quality, "quality", "q", common.DefaultQuality, "WebP quality (1-100)")
	cmd.Flags().IntVarP(&opts.scale, "scale", "s", common.DefaultScale, "Scale in percent of the original size (10-100)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", ".", "Directory for the converted file or archive")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent conversions (0 uses the CPU count)")

	return cmd
}

func runConvert(out io.Writer, manager *session.Manager, settings session.Settings, paths []string, outputDir string) error {
	applied := manager.SetSettings(settings)
	if applied != settings {
		fmt.Fprintf(out, "Settings adjusted to quality %d, scale %d%%\n", applied.Quality, applied.Scale)
	}

	imported := manager.ImportPaths(paths)
	if imported.Accepted == 0 {
		return fmt.Errorf("no images to convert (%d files skipped)", imported.Skipped)
	}

	summary, err := manager.ConvertAll()
	if err != nil {
		return err
	}

	printResults(out, manager.Items())

	export, err := manager.DownloadAll()
	switch {
	case errors.Is(err, session.ErrNothingToExport):
		fmt.Fprintln(out, "Nothing was converted")
	case err != nil:
		return err
	default:
		target := filepath.Join(outputDir, export.Filename)
		if err := common.WriteFile(target, export.Data); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		fmt.Fprintf(out, "Converted %d of %d images (%s → %s), wrote %s\n",
			summary.Converted,
			summary.Total(),
			humanize.Bytes(uint64(summary.OriginalBytes)),
			humanize.Bytes(uint64(summary.ConvertedBytes)),
			target)
	}

	if imported.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d non-image files\n", imported.Skipped)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errConversionFailed, summary.Failed, summary.Total())
	}
	return nil
}

func printResults(out io.Writer, items []session.Item) {
	headers := []string{"Name", "Status", "Original", "Converted", "Change", "Size"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, resultRow(it))
	}

	if isTerminal(out) {
		fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func resultRow(it session.Item) []string {
	row := []string{it.Name, it.Status.Label(), common.FormatSize(it.OriginalSize), "", "", ""}
	switch it.Status {
	case session.StatusDone:
		delta, _ := it.SizeDelta()
		row[3] = common.FormatSize(it.ConvertedSize)
		row[4] = delta
		row[5] = fmt.Sprintf("%dx%d", it.ConvertedWidth, it.ConvertedHeight)
	case session.StatusPending, session.StatusConverting, session.StatusError:
	}
	return row
}
