package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/maestro-studio/maestro-cli/internal/repositories"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/maestro-studio/maestro-cli/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing and exporting releases.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: studio engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.UI.LogPath
	if logPath == "" {
		logPath = "./tmp/maestro-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	exportFormat := r.config.Export.Format
	notifyPosition := r.config.UI.NotifyPosition

	db := r.attachSongCache()
	if db != nil {
		defer db.Close()

		// Stored preferences win over config.toml when persistence is on.
		if r.config.UI.PersistPreferences {
			repo := repositories.NewPreferenceRepository(db)
			if pref, err := repo.GetByKey("export", "format"); err == nil {
				exportFormat = pref.Value()
			}
			if pref, err := repo.GetByKey("ui", "notify_position"); err == nil {
				notifyPosition = pref.Value()
			}
		}
	}

	opts := []ui.ModelOption{ui.WithExportFormat(exportFormat)}
	if notifyPosition == "bottom" {
		opts = append(opts, ui.WithBannerAtBottom())
	}

	model := ui.NewModel(ctx, r.releases, r.songs, r.engine, opts...)
	p := tea.NewProgram(model)

	// Session events from the token coordinator surface as banners while
	// the program is running.
	if r.coordinator != nil {
		link := ui.NewProgramLink(p)
		r.coordinator.SetNotifier(link)
		r.coordinator.SetNavigator(link)
		defer func() {
			r.coordinator.SetNotifier(&logNotifier{r.logger})
			r.coordinator.SetNavigator(nil)
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
