package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maestro-studio/maestro-cli/internal/formatter"
	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// ImagesList lists artwork in the library.
func (r *Runner) ImagesList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.images.List(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Images (%d of %d)", len(page.Items), page.Total))
	for _, image := range page.Items {
		r.writePlain("%s  %s", image.ID, image.Title)
		if image.Width > 0 {
			r.writePlain("  %dx%d", image.Width, image.Height)
		}
		r.writePlain("\n")
	}
	return nil
}

// ImagesGenerate requests artwork generation from a prompt.
func (r *Runner) ImagesGenerate(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	r.logger.Info("generating image", "title", title)

	image, err := r.images.Generate(ctx, title, cmd.String("prompt"), cmd.String("project"))
	if err != nil {
		return fmt.Errorf("failed to generate image: %w", err)
	}

	r.writePlain("✓ Image generated: %s\n", image.Title)
	r.writePlain("ID: %s\n", image.ID)
	return nil
}

// ImagesUpload uploads a local image file.
func (r *Runner) ImagesUpload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	image, err := r.images.Upload(ctx, cmd.String("title"), filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	r.writePlain("✓ Image uploaded: %s\n", image.Title)
	r.writePlain("ID: %s\n", image.ID)
	return nil
}

// ImagesDownload saves an image locally.
func (r *Runner) ImagesDownload(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: image ID is required", shared.ErrMissingArgument)
	}

	image, err := r.images.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	data, err := r.images.Download(ctx, image)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s.jpg", image.ID)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return r.writePlain("✓ Saved %s to %s\n", image.Title, outputPath)
}

// ImagesDelete removes an image.
func (r *Runner) ImagesDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: image ID is required", shared.ErrMissingArgument)
	}

	if err := r.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return r.writePlain("✓ Image deleted: %s\n", id)
}

// LyricsList lists lyric sheets.
func (r *Runner) LyricsList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.lyrics.List(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Lyric sheets (%d of %d)", len(page.Items), page.Total))
	for _, sheet := range page.Items {
		r.writePlain("%s  %s", sheet.ID, sheet.Title)
		if sheet.SongID != "" {
			r.writePlain("  (song %s)", sheet.SongID)
		}
		r.writePlain("\n")
	}
	return nil
}

// LyricsGet prints a lyric sheet, converting the editor HTML to plain text.
func (r *Runner) LyricsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: lyric sheet ID is required", shared.ErrMissingArgument)
	}

	sheet, err := r.lyrics.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlainHeader(sheet.Title)
	if cmd.Bool("html") {
		r.writePlain("%s\n", sheet.Body)
		return nil
	}
	r.writePlain("%s\n", formatter.HTMLToText(sheet.Body))
	return nil
}

// LyricsCreate writes or generates a lyric sheet.
func (r *Runner) LyricsCreate(ctx context.Context, cmd *cli.Command) error {
	req := services.LyricsRequest{
		Title:  cmd.String("title"),
		Body:   cmd.String("body"),
		Prompt: cmd.String("prompt"),
		SongID: cmd.String("song"),
	}

	sheet, err := r.lyrics.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create lyric sheet: %w", err)
	}

	r.writePlain("✓ Lyric sheet created: %s\n", sheet.Title)
	r.writePlain("ID: %s\n", sheet.ID)
	return nil
}

// LyricsDelete removes a lyric sheet.
func (r *Runner) LyricsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: lyric sheet ID is required", shared.ErrMissingArgument)
	}

	if err := r.lyrics.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lyric sheet: %w", err)
	}
	return r.writePlain("✓ Lyric sheet deleted: %s\n", id)
}

// EquipmentList lists gear presets.
func (r *Runner) EquipmentList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.equipment.List(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Equipment (%d of %d)", len(page.Items), page.Total))
	for _, item := range page.Items {
		r.writePlain("%s  %s", item.ID, item.Name)
		if item.Kind != "" {
			r.writePlain("  [%s]", item.Kind)
		}
		r.writePlain("\n")
	}
	return nil
}

// EquipmentCreate creates a gear preset.
func (r *Runner) EquipmentCreate(ctx context.Context, cmd *cli.Command) error {
	req := services.EquipmentRequest{
		Name:     cmd.String("name"),
		Kind:     cmd.String("kind"),
		Settings: cmd.String("settings"),
	}

	item, err := r.equipment.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	r.writePlain("✓ Equipment created: %s\n", item.Name)
	r.writePlain("ID: %s\n", item.ID)
	return nil
}

// EquipmentDelete removes a gear preset.
func (r *Runner) EquipmentDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: equipment ID is required", shared.ErrMissingArgument)
	}

	if err := r.equipment.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return r.writePlain("✓ Equipment deleted: %s\n", id)
}

// ProjectsList lists project workspaces.
func (r *Runner) ProjectsList(ctx context.Context, cmd *cli.Command) error {
	page, err := r.projects.List(ctx, cmd.Int("limit"), cmd.Int("offset"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlainHeader(fmt.Sprintf("Projects (%d of %d)", len(page.Items), page.Total))
	for _, project := range page.Items {
		r.writePlain("%s  %s  (%d songs)", project.ID, project.Name, project.SongCount)
		if project.Archived {
			r.writePlain("  [archived]")
		}
		r.writePlain("\n")
	}
	return nil
}

// ProjectsCreate creates a project workspace.
func (r *Runner) ProjectsCreate(ctx context.Context, cmd *cli.Command) error {
	req := services.ProjectRequest{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
	}

	project, err := r.projects.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	r.writePlain("✓ Project created: %s\n", project.Name)
	r.writePlain("ID: %s\n", project.ID)
	return nil
}

// ProjectsArchive archives a project workspace.
func (r *Runner) ProjectsArchive(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: project ID is required", shared.ErrMissingArgument)
	}

	project, err := r.projects.Archive(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to archive project: %w", err)
	}
	return r.writePlain("✓ Project archived: %s\n", project.Name)
}
