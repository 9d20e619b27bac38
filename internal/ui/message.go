package ui

import (
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/tasks"
)

// releasesFetchedMsg carries the release library fetched at startup.
type releasesFetchedMsg struct {
	releases []models.Release
	err      error
}

// releaseSongsFetchedMsg carries a release resolved with its songs.
type releaseSongsFetchedMsg struct {
	export *models.ReleaseExport
	err    error
}

// progressUpdateMsg forwards an engine progress update into the Elm loop.
type progressUpdateMsg tasks.ProgressUpdate

// exportCompleteMsg carries the final export outcome.
type exportCompleteMsg struct {
	result *tasks.BulkExportResult
	err    error
}

// bannerMsg shows a transient notification banner.
type bannerMsg struct {
	message string
}

// bannerExpiredMsg dismisses the banner after its display window.
type bannerExpiredMsg struct{}

// navigateMsg switches the active view by route name.
type navigateMsg struct {
	route string
}
