package tasks

import (
	"fmt"

	"github.com/maestro-studio/maestro-cli/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRelease Phase = iota
	VerifySongs
	AttachSongs
	AttachArtwork
	Assembled
	FetchProfile
	FetchSongs
	FetchImages
	FetchLyrics
	FetchEquipment
	FetchReleases
	FetchProjects
	ExportRelease
)

func (p Phase) String() string {
	switch p {
	case FetchRelease:
		return "fetch_release"
	case VerifySongs:
		return "verify_songs"
	case AttachSongs:
		return "attach_songs"
	case AttachArtwork:
		return "attach_artwork"
	case Assembled:
		return "assembled"
	case FetchProfile:
		return "fetch_profile"
	case FetchSongs:
		return "fetch_songs"
	case FetchImages:
		return "fetch_images"
	case FetchLyrics:
		return "fetch_lyrics"
	case FetchEquipment:
		return "fetch_equipment"
	case FetchReleases:
		return "fetch_releases"
	case FetchProjects:
		return "fetch_projects"
	case ExportRelease:
		return "export_release"
	default:
		return ""
	}
}

func fetchReleaseUpdate(step, total int, releaseID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRelease,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching release %s...", releaseID),
	}
}

func verifySongUpdate(step, total int, songID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   VerifySongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Verifying song %s...", step, total, songID),
	}
}

func attachSongsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AttachSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Attaching %d songs...", count),
	}
}

func attachArtworkUpdate(step, total int, artworkID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AttachArtwork,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Setting cover image %s...", artworkID),
	}
}

func assembledUpdate(step, total int, release *models.Release) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Assembled,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Release assembled: %s (%d songs)", release.Title, len(release.SongIDs)),
		Data:    release,
	}
}

func operationUpdate(endpoint endpointOperation, step int, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   endpoint.phase,
		Step:    step,
		Total:   total,
		Message: endpoint.message,
	}
}

func exportingReleaseUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRelease,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRelease,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportRelease,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
