package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/client"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/storage"
	"github.com/atotto/clipboard"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	Pick    bool
	Export  string
	OutDir  string
	Copy    bool
	Timeout time.Duration
	BaseURL string
}

var genOpts generateOptions

// exportFromConfig is the value of a bare --export flag.
const exportFromConfig = "config"

var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Caption one or more image files through the caption service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), cmd, args)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&genOpts.Pick, "pick", false, "Choose files with a native file dialog")
	generateCmd.Flags().StringVar(&genOpts.Export, "export", "", "Export each result as txt or json; bare --export uses export.format")
	generateCmd.Flags().Lookup("export").NoOptDefVal = exportFromConfig
	generateCmd.Flags().StringVar(&genOpts.OutDir, "out", "", "Directory for local exports (overrides export.dir)")
	generateCmd.Flags().BoolVar(&genOpts.Copy, "copy", false, "Copy the last caption to the clipboard")
	generateCmd.Flags().DurationVar(&genOpts.Timeout, "timeout", 0, "Per-request timeout (overrides client.request_timeout)")
	generateCmd.Flags().StringVar(&genOpts.BaseURL, "url", "", "Caption service base URL (overrides client.base_url)")
}

func runGenerate(ctx context.Context, cmd *cobra.Command, args []string) error {
	paths := args
	if genOpts.Pick {
		picked, err := pickFiles()
		if err != nil {
			return err
		}
		paths = append(paths, picked...)
	}

	display := newTerminalDisplay(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if len(paths) == 0 {
		display.ShowEmpty()
		return nil
	}

	var (
		exporter *client.Exporter
		format   client.ExportFormat
	)
	if genOpts.Export != "" {
		name := genOpts.Export
		if name == exportFromConfig {
			name = cfg.Export.Format
		}
		f, err := client.ParseExportFormat(name)
		if err != nil {
			return err
		}
		format = f
		exporter, err = newExporter(ctx)
		if err != nil {
			return err
		}
	}

	baseURL := cfg.Client.BaseURL
	if genOpts.BaseURL != "" {
		baseURL = genOpts.BaseURL
	}
	timeout := cfg.Client.RequestTimeout
	if genOpts.Timeout > 0 {
		timeout = genOpts.Timeout
	}

	orchestrator := client.NewOrchestrator(
		client.NewHTTPTransport(&client.HTTPConfig{BaseURL: baseURL}),
		&client.Options{
			Display:     display,
			Timeout:     timeout,
			HistorySize: cfg.Client.HistorySize,
		},
	)

	var (
		last   *client.Result
		failed int
	)
	for _, p := range paths {
		result, err := captionFile(ctx, orchestrator, p)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.GetDefault().WithError(err).WithField("file", p).Debug("Caption failed")
			failed++
			continue
		}
		last = result

		if exporter != nil {
			location, err := exporter.Export(ctx, result, format)
			if err != nil {
				display.ShowError(fmt.Sprintf("Failed to export %s: %v", p, err))
				failed++
				continue
			}
			display.ShowExported(location)
		}
	}

	if genOpts.Copy && last != nil {
		if err := clipboard.WriteAll(client.CopyText(last)); err != nil {
			display.ShowError(fmt.Sprintf("Failed to copy caption: %v", err))
		} else {
			display.ShowCopied()
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func captionFile(ctx context.Context, o *client.Orchestrator, path string) (*client.Result, error) {
	file, closer, err := client.OpenFile(path)
	if err != nil {
		return o.Submit(ctx, client.File{Name: path, Reader: failingReader{err}})
	}
	defer closer.Close()
	return o.Submit(ctx, file)
}

// failingReader lets an unopenable path go through the normal read-failure
// path of the orchestrator.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func pickFiles() ([]string, error) {
	selected, err := zenity.SelectFileMultiple(
		zenity.Title("Select images to caption"),
		zenity.FileFilters{
			{Name: "Images", Patterns: []string{"*.jpg", "*.jpeg", "*.png", "*.webp"}},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, nil
		}
		return nil, fmt.Errorf("file picker failed: %w", err)
	}
	return selected, nil
}

func newExporter(ctx context.Context) (*client.Exporter, error) {
	dir := cfg.Export.Dir
	if genOpts.OutDir != "" {
		dir = genOpts.OutDir
	}

	var s3cfg *storage.S3Config
	if cfg.Export.UsesObjectStorage() && genOpts.OutDir == "" {
		sc := cfg.Export.Storage
		s3cfg = &storage.S3Config{
			Type:      storage.StorageType(sc.Type),
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			UseSSL:    sc.UseSSL,
			Bucket:    sc.Bucket,
			Region:    sc.Region,
			PublicURL: sc.PublicURL,
		}
	}

	objectStorage, err := storage.NewStorage(ctx, s3cfg, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize export storage: %w", err)
	}
	if s3, ok := objectStorage.(*storage.S3Storage); ok {
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure export bucket: %w", err)
		}
	}

	prefix := cfg.Export.Storage.Prefix
	if s3cfg == nil {
		prefix = ""
	}
	return client.NewExporter(objectStorage, prefix), nil
}
