package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

var (
	_ list.Item = releaseItem{}
	_ list.Item = songItem{}
)

// releaseItem wraps [models.Release] to implement [list.Item].
type releaseItem struct {
	release models.Release
}

func (i releaseItem) FilterValue() string { return i.release.Title }
func (i releaseItem) Title() string       { return i.release.Title }
func (i releaseItem) Description() string {
	desc := fmt.Sprintf("%d songs • %s", len(i.release.SongIDs), i.release.Status)
	if i.release.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.release.Description)
	}
	return desc
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.Style
	if i.song.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.song.Duration))
	}
	return desc
}
