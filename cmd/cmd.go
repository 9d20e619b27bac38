// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// listFlags are the shared pagination and output flags for list commands.
func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of items to return",
			Value: 50,
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Number of items to skip",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
	}
}

// songsCommand handles song operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song"},
		Usage:   "Manage songs in your library",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List songs",
				Flags:  listFlags(),
				Action: r.SongsList,
			},
			{
				Name:  "get",
				Usage: "Show a single song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsGet,
			},
			{
				Name:  "create",
				Usage: "Generate a new song",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Song title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "Musical style (e.g. synthwave, lo-fi)",
					},
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Generation prompt",
					},
					&cli.StringFlag{
						Name:  "project",
						Usage: "Project ID to attach the song to",
					},
					&cli.StringFlag{
						Name:  "lyrics",
						Usage: "Lyric sheet ID",
					},
				},
				Action: r.SongsCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongsDelete,
			},
			{
				Name:  "upload",
				Usage: "Upload an audio file for a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the audio file",
						Required: true,
					},
				},
				Action: r.SongsUpload,
			},
			{
				Name:  "download",
				Usage: "Download a song's audio",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.SongsDownload,
			},
		},
	}
}

// imagesCommand handles artwork operations
func imagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "images",
		Aliases: []string{"image", "art"},
		Usage:   "Manage artwork",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List images",
				Flags:  listFlags(),
				Action: r.ImagesList,
			},
			{
				Name:  "generate",
				Usage: "Generate artwork from a prompt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Image title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "prompt",
						Usage:    "Generation prompt",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "project",
						Usage: "Project ID to attach the image to",
					},
				},
				Action: r.ImagesGenerate,
			},
			{
				Name:  "upload",
				Usage: "Upload an image file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Image title",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the image file",
						Required: true,
					},
				},
				Action: r.ImagesUpload,
			},
			{
				Name:  "download",
				Usage: "Download an image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.ImagesDownload,
			},
			{
				Name:  "delete",
				Usage: "Delete an image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ImagesDelete,
			},
		},
	}
}

// lyricsCommand handles lyric sheet operations
func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Manage lyric sheets",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List lyric sheets",
				Flags:  listFlags(),
				Action: r.LyricsList,
			},
			{
				Name:  "get",
				Usage: "Show a lyric sheet as plain text",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "html",
						Usage: "Print the raw HTML body",
					},
				},
				Action: r.LyricsGet,
			},
			{
				Name:  "create",
				Usage: "Write or generate a lyric sheet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Sheet title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "body",
						Usage: "Lyric body (HTML or plain text)",
					},
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Generation prompt (used when no body is given)",
					},
					&cli.StringFlag{
						Name:  "song",
						Usage: "Song ID to attach the sheet to",
					},
				},
				Action: r.LyricsCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a lyric sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LyricsDelete,
			},
		},
	}
}

// equipmentCommand handles gear preset operations
func equipmentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "equipment",
		Aliases: []string{"gear"},
		Usage:   "Manage virtual studio equipment",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List equipment presets",
				Flags:  listFlags(),
				Action: r.EquipmentList,
			},
			{
				Name:  "create",
				Usage: "Create an equipment preset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Preset name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Equipment kind (synth, amp, pedal, ...)",
					},
					&cli.StringFlag{
						Name:  "settings",
						Usage: "Preset settings blob",
					},
				},
				Action: r.EquipmentCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete an equipment preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.EquipmentDelete,
			},
		},
	}
}

// projectsCommand handles project workspace operations
func projectsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "projects",
		Aliases: []string{"project"},
		Usage:   "Manage project workspaces",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List projects",
				Flags:  listFlags(),
				Action: r.ProjectsList,
			},
			{
				Name:  "create",
				Usage: "Create a project",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Project name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Project description",
					},
				},
				Action: r.ProjectsCreate,
			},
			{
				Name:  "archive",
				Usage: "Archive a project",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ProjectsArchive,
			},
		},
	}
}

// releasesCommand handles release operations
func releasesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "releases",
		Aliases: []string{"release", "rel"},
		Usage:   "Manage releases",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List releases",
				Flags:  listFlags(),
				Action: r.ReleasesList,
			},
			{
				Name:  "create",
				Usage: "Create a draft release",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Release title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Release description",
					},
				},
				Action: r.ReleasesCreate,
			},
			{
				Name:  "assemble",
				Usage: "Attach songs and artwork to a release",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "song",
						Usage:    "Song ID to attach (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "artwork",
						Usage: "Cover image ID",
					},
				},
				Action: r.ReleasesAssemble,
			},
			{
				Name:  "publish",
				Usage: "Publish a draft release",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ReleasesPublish,
			},
		},
	}
}

// exportCommand handles bulk release exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export releases to local files",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "id",
				Usage: "Release ID to export (repeatable, default: all releases)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: json, csv, markdown, txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "API requests per second",
			},
		},
		Action: r.ExportRun,
	}
}

// apiCommand handles direct calls against the studio backend
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the studio backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "dump",
				Usage: "Full library state dump (songs, images, releases, etc)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to api_dump.json",
						Value: false,
					},
				},
				Action: r.APIDump,
			},
		},
	}
}

// prefsCommand handles locally persisted preferences
func prefsCommand(r *Runner) *cli.Command {
	scopeFlag := &cli.StringFlag{
		Name:  "scope",
		Usage: "Preference scope (global, ui, export)",
		Value: "global",
	}

	return &cli.Command{
		Name:  "prefs",
		Usage: "Manage local preferences",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set a preference value",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
					&cli.StringArg{Name: "value"},
				},
				Flags:  []cli.Flag{scopeFlag},
				Action: r.PrefsSet,
			},
			{
				Name:  "get",
				Usage: "Read a preference value",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Flags:  []cli.Flag{scopeFlag},
				Action: r.PrefsGet,
			},
			{
				Name:  "list",
				Usage: "List preferences",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Filter by scope",
					},
				},
				Action: r.PrefsList,
			},
			{
				Name:  "unset",
				Usage: "Delete a preference",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
				},
				Flags:  []cli.Flag{scopeFlag},
				Action: r.PrefsUnset,
			},
		},
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in to the studio",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "email",
						Aliases: []string{"e"},
						Usage:   "Account email",
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
					},
					&cli.BoolFlag{
						Name:  "browser",
						Usage: "Sign in through the studio web app",
					},
					&cli.IntFlag{
						Name:  "port",
						Usage: "Local port for the browser login callback",
						Value: 8976,
					},
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive library management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and exporting releases",
		Action:  r.TUI,
	}
}
