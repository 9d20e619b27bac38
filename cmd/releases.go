package main

import (
	"context"
	"fmt"

	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/maestro-studio/maestro-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ReleasesList lists releases.
func (r *Runner) ReleasesList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.releases.List(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Releases (%d of %d)", len(page.Items), page.Total))
	for _, release := range page.Items {
		r.writePlain("%s  %s  (%d songs, %s)\n", release.ID, release.Title, len(release.SongIDs), release.Status)
	}
	return nil
}

// ReleasesCreate creates a draft release.
func (r *Runner) ReleasesCreate(ctx context.Context, cmd *cli.Command) error {
	req := services.ReleaseRequest{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
	}

	release, err := r.releases.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create release: %w", err)
	}

	r.writePlain("✓ Release created: %s\n", release.Title)
	r.writePlain("ID: %s\n", release.ID)
	r.writePlain("Status: %s\n", release.Status)
	return nil
}

// ReleasesAssemble attaches songs and artwork to a release, verifying each
// piece before the release is touched.
func (r *Runner) ReleasesAssemble(ctx context.Context, cmd *cli.Command) error {
	releaseID := cmd.StringArg("id")
	if releaseID == "" {
		return fmt.Errorf("%w: release ID is required", shared.ErrMissingArgument)
	}

	opts := tasks.AssembleOpts{
		SongIDs:   cmd.StringSlice("song"),
		ArtworkID: cmd.String("artwork"),
	}

	if db := r.attachSongCache(); db != nil {
		defer db.Close()
	}

	r.logger.Info("assembling release", "id", releaseID, "songs", len(opts.SongIDs))

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := r.engine.AssembleRelease(ctx, progress, releaseID, opts)
	close(progress)
	<-done

	if err != nil {
		if result != nil && result.FailedCount > 0 {
			r.writePlainln("Unresolved songs:")
			for _, sr := range result.SongResults {
				if sr.Error != nil {
					r.writePlain("  ✗ %s: %v\n", sr.SongID, sr.Error)
				}
			}
		}
		return fmt.Errorf("assembly failed: %w", err)
	}

	r.writePlainln("✓ Release assembled: %s", result.Release.Title)
	r.writePlain("  Songs attached: %d\n", result.SuccessCount)
	if result.FailedCount > 0 {
		r.writePlain("  Songs skipped: %d\n", result.FailedCount)
		for _, sr := range result.SongResults {
			if sr.Error != nil {
				r.writePlain("    ✗ %s: %v\n", sr.SongID, sr.Error)
			}
		}
	}
	if result.Artwork != nil {
		r.writePlain("  Artwork: %s\n", result.Artwork.Title)
	}
	return nil
}

// ReleasesPublish publishes a draft release.
func (r *Runner) ReleasesPublish(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: release ID is required", shared.ErrMissingArgument)
	}

	r.logger.Info("publishing release", "id", id)

	release, err := r.releases.Publish(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to publish release: %w", err)
	}

	r.writePlain("✓ Release published: %s\n", release.Title)
	if release.ReleaseDate != "" {
		r.writePlain("Release date: %s\n", release.ReleaseDate)
	}
	return nil
}
