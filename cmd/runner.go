package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maestro-studio/maestro-cli/internal/auth"
	"github.com/maestro-studio/maestro-cli/internal/repositories"
	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/maestro-studio/maestro-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	session     auth.SessionStore
	coordinator *auth.Coordinator
	client      *services.Client
	account     *services.AccountService
	songs       *services.SongService
	images      *services.ImageService
	lyrics      *services.LyricsService
	equipment   *services.EquipmentService
	releases    *services.ReleaseService
	projects    *services.ProjectService
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	engine      *tasks.StudioEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Session     auth.SessionStore
	Coordinator *auth.Coordinator
	Client      *services.Client
	Account     *services.AccountService
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Client == nil {
		opts.Client = services.NewClient(opts.Config.API.BaseURL, opts.HTTPClient, opts.Logger)
	}
	if opts.Account == nil {
		opts.Account = services.NewAccountService(opts.Client, opts.Session)
	}

	songs := services.NewSongService(opts.Client)
	images := services.NewImageService(opts.Client)
	releases := services.NewReleaseService(opts.Client)

	return &Runner{
		config:      opts.Config,
		session:     opts.Session,
		coordinator: opts.Coordinator,
		client:      opts.Client,
		account:     opts.Account,
		songs:       songs,
		images:      images,
		lyrics:      services.NewLyricsService(opts.Client),
		equipment:   services.NewEquipmentService(opts.Client),
		releases:    releases,
		projects:    services.NewProjectService(opts.Client),
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		engine:      tasks.NewStudioEngine(songs, releases, images, opts.Client),
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songsCommand, imagesCommand, lyricsCommand, equipmentCommand,
		projectsCommand, releasesCommand, exportCommand, apiCommand, prefsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase opens the configured sqlite database.
//
// Callers own the returned handle and must close it.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// attachSongCache wires the local song cache into the engine when the
// database is available. Returns the handle so the caller can close it;
// a missing or broken database only disables caching.
func (r *Runner) attachSongCache() *sql.DB {
	db, err := r.openDatabase()
	if err != nil {
		r.logger.Debug("song cache disabled", "error", err)
		return nil
	}
	r.engine.WithSongCache(repositories.NewSongCacheRepository(db))
	return db
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// logNotifier routes session notifications to the logger for plain CLI runs.
type logNotifier struct {
	logger *log.Logger
}

func (n *logNotifier) Notify(message string) {
	n.logger.Warn(message)
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
