package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/formatter"
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk release exports.
type BulkExportOpts struct {
	Format        string                                               // Export format: json, csv, markdown, txt
	OutputDir     string                                               // Base output directory (default: maestro_export_{epoch})
	NumWorkers    int                                                  // Concurrent workers (default: 5)
	RateLimit     float64                                              // Requests per second (default: 5)
	GetCoverImage func(ctx context.Context, id string) (string, error) // Cover URL fetcher for markdown exports
}

// ReleaseExportJob carries one fetched release to an export worker.
type ReleaseExportJob struct {
	ReleaseID string
	Export    *models.ReleaseExport
}

// ReleaseExportResult records the outcome of exporting one release.
type ReleaseExportResult struct {
	ReleaseID    string
	ReleaseTitle string
	Success      bool
	Files        []string
	Error        error
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalReleases     int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ReleaseExportResult
}

// BulkExport exports multiple releases concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern: one producer fetches each
// release and its songs under a rate limiter, workers render files in the
// requested format, and a manifest summarizing the run is written last.
// Partial failures are recorded per release rather than aborting the run.
func (e *StudioEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.releases == nil || e.songs == nil {
		return nil, fmt.Errorf("%w: release engine not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("maestro_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalReleases:   len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ReleaseExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ReleaseExportJob, len(ids))
	results := make(chan ReleaseExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, releaseID := range ids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			export, err := e.fetchReleaseExport(ctx, releaseID, limiter)
			if err != nil {
				results <- ReleaseExportResult{
					ReleaseID:    releaseID,
					ReleaseTitle: fmt.Sprintf("Unknown (%s)", releaseID),
					Success:      false,
					Error:        fmt.Errorf("failed to fetch release: %w", err),
				}
				continue
			}

			jobs <- ReleaseExportJob{
				ReleaseID: releaseID,
				Export:    export,
			}

			e.sendProgress(prog, exportingReleaseUpdate(i+1, len(ids), export.Release.Title))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	failures := make(map[string]string)
	var files []string

	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			files = append(files, res.Files...)
			e.sendProgress(prog, exportCompletedUpdate(
				completed,
				len(ids),
				res.ReleaseTitle,
				len(res.Files),
			))
		} else {
			result.FailedExports++
			failures[res.ReleaseID] = res.Error.Error()
			e.sendProgress(prog, exportFailedUpdate(
				completed,
				len(ids),
				res.ReleaseTitle,
				res.Error,
			))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	manifest := &formatter.ExportManifest{
		Format:    opts.Format,
		Total:     result.TotalReleases,
		Succeeded: result.SuccessfulExports,
		Failed:    result.FailedExports,
		Files:     files,
		Failures:  failures,
	}
	if err := formatter.WriteExportManifest(manifest, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// fetchReleaseExport resolves a release and its songs into an export
// bundle, caching each song along the way.
func (e *StudioEngine) fetchReleaseExport(ctx context.Context, releaseID string, limiter *rate.Limiter) (*models.ReleaseExport, error) {
	release, err := e.releases.Get(ctx, releaseID)
	if err != nil {
		return nil, err
	}

	export := &models.ReleaseExport{
		Release: *release,
		Songs:   make([]models.Song, 0, len(release.SongIDs)),
	}

	for _, songID := range release.SongIDs {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		song, err := e.songs.Get(ctx, songID)
		if err != nil {
			// A missing song should not sink the whole release export.
			continue
		}
		e.cacheSong(song)
		export.Songs = append(export.Songs, *song)
	}

	return export, nil
}

// exportWorker is a worker goroutine that exports releases from the jobs channel.
func (e *StudioEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ReleaseExportJob,
	results chan<- ReleaseExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := e.exportSingleRelease(ctx, job, opts)
		results <- res
	}
}

// exportSingleRelease exports a single release to the appropriate format.
func (e *StudioEngine) exportSingleRelease(
	ctx context.Context,
	j ReleaseExportJob,
	opts BulkExportOpts,
) ReleaseExportResult {
	result := ReleaseExportResult{
		ReleaseID:    j.ReleaseID,
		ReleaseTitle: j.Export.Release.Title,
		Success:      false,
		Files:        []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Export.Release.ID)
		csvRes, err := formatter.WriteCSVExport(j.Export, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.SongsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Export.Release.ID)

		var imageURL string
		if opts.GetCoverImage != nil {
			if url, err := opts.GetCoverImage(ctx, j.ReleaseID); err == nil {
				imageURL = url
			}
		}

		mdRes, err := formatter.WriteMarkdownExport(j.Export, outputDir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_songs.txt", j.Export.Release.ID))
		written, err := formatter.WriteTextExport(j.Export, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true
	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Export.Release.ID))
		data, err := shared.MarshalJSON(j.Export, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}
