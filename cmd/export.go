package main

import (
	"context"
	"fmt"

	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/maestro-studio/maestro-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportRun exports releases to local files, defaulting to the whole library.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringSlice("id")

	if len(ids) == 0 {
		r.logger.Info("no release IDs given, exporting the whole library")
		page, err := r.releases.List(ctx, 0, 0)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		for _, release := range page.Items {
			ids = append(ids, release.ID)
		}
	}

	if len(ids) == 0 {
		return r.writePlain("Nothing to export.\n")
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate-limit"),
	}
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.NumWorkers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RateLimit
	}
	opts.GetCoverImage = r.coverImageURL

	if db := r.attachSongCache(); db != nil {
		defer db.Close()
	}

	r.writePlainHeader(fmt.Sprintf("Exporting %d releases (%s)", len(ids), opts.Format))

	progress := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := r.engine.BulkExport(ctx, progress, ids, opts)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Export complete")
	r.writePlain("  Output: %s\n", result.OutputDirectory)
	r.writePlain("  Succeeded: %d/%d\n", result.SuccessfulExports, result.TotalReleases)
	if result.FailedExports > 0 {
		r.writePlain("  Failed: %d\n", result.FailedExports)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("    ✗ %s: %v\n", res.ReleaseTitle, res.Error)
			}
		}
	}
	r.writePlain("  Manifest: %s\n", result.ManifestPath)
	return nil
}

// coverImageURL resolves a release's cover image URL for markdown exports.
func (r *Runner) coverImageURL(ctx context.Context, releaseID string) (string, error) {
	release, err := r.releases.Get(ctx, releaseID)
	if err != nil {
		return "", err
	}
	if release.ArtworkID == "" {
		return "", fmt.Errorf("release %s has no artwork", releaseID)
	}

	image, err := r.images.Get(ctx, release.ArtworkID)
	if err != nil {
		return "", err
	}
	return image.URL, nil
}
