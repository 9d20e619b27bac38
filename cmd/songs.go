package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList lists songs in the library.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	offset := cmd.Int("offset")

	r.logger.Info("listing songs", "limit", limit, "offset", offset)

	page, err := r.songs.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Songs (%d of %d)", len(page.Items), page.Total))
	for _, song := range page.Items {
		r.writePlain("%s  %s", song.ID, song.Title)
		if song.Style != "" {
			r.writePlain(" [%s]", song.Style)
		}
		if song.Duration > 0 {
			r.writePlain(" %s", shared.FormatDuration(song.Duration))
		}
		r.writePlain("  (%s)\n", song.Status)
	}
	return nil
}

// SongsGet shows a single song.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	song, err := r.songs.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlainHeader(song.Title)
	r.writePlain("ID: %s\n", song.ID)
	r.writePlain("Style: %s\n", song.Style)
	r.writePlain("Status: %s\n", song.Status)
	if song.Duration > 0 {
		r.writePlain("Duration: %s\n", shared.FormatDuration(song.Duration))
	}
	if song.ProjectID != "" {
		r.writePlain("Project: %s\n", song.ProjectID)
	}
	if song.Prompt != "" {
		r.writePlain("Prompt: %s\n", song.Prompt)
	}
	return nil
}

// SongsCreate requests generation of a new song.
func (r *Runner) SongsCreate(ctx context.Context, cmd *cli.Command) error {
	req := services.SongRequest{
		Title:     cmd.String("title"),
		Style:     cmd.String("style"),
		Prompt:    cmd.String("prompt"),
		ProjectID: cmd.String("project"),
		LyricsID:  cmd.String("lyrics"),
	}

	r.logger.Info("creating song", "title", req.Title)

	song, err := r.songs.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}

	r.writePlain("✓ Song created: %s\n", song.Title)
	r.writePlain("ID: %s\n", song.ID)
	r.writePlain("Status: %s\n", song.Status)
	return nil
}

// SongsDelete removes a song from the library.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	if err := r.songs.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	r.logger.Info("song deleted", "id", id)
	return r.writePlain("✓ Song deleted: %s\n", id)
}

// SongsUpload uploads an audio file for an existing song.
func (r *Runner) SongsUpload(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	path := cmd.String("file")
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	r.logger.Info("uploading audio", "song", id, "file", path)

	song, err := r.songs.UploadAudio(ctx, id, filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	r.writePlain("✓ Audio uploaded for %s\n", song.Title)
	return nil
}

// SongsDownload saves a song's audio locally.
func (r *Runner) SongsDownload(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song ID is required", shared.ErrMissingArgument)
	}

	song, err := r.songs.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	data, err := r.songs.Download(ctx, song)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s.mp3", song.ID)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	r.logger.Info("audio saved", "path", outputPath, "bytes", len(data))
	return r.writePlain("✓ Saved %s to %s\n", song.Title, outputPath)
}
