// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/repositories"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/urfave/cli/v3"
)

// globalFlags are inherited by every subcommand.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error), overrides the config file",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Do not indent JSON output",
		},
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "skip",
			Usage: "Number of records to skip",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of records to return (max 100)",
			Value: services.MaxLimit,
		},
	}
}

func songFilterFlags() []cli.Flag {
	return append(pageFlags(),
		&cli.StringFlag{
			Name:  "artist",
			Usage: "Only songs by this artist",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Only songs of this genre",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort locally by title, artist, duration or year",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Sort in descending order",
		},
	)
}

func songFields(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Usage:    "Song title",
			Required: required,
		},
		&cli.StringFlag{
			Name:     "artist",
			Usage:    "Artist name",
			Required: required,
		},
		&cli.StringFlag{
			Name:  "album",
			Usage: "Album name",
		},
		&cli.StringFlag{
			Name:     "duration",
			Usage:    "Duration as m:ss or whole seconds",
			Required: required,
		},
		&cli.IntFlag{
			Name:  "year",
			Usage: "Release year (1900-2100)",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Genre",
		},
	}
}

func favoritePairFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "User ID",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "song",
			Aliases:  []string{"s"},
			Usage:    "Song ID",
			Required: true,
		},
	}
}

func stringArgs(name string) []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: name}}
}

// usersCommand handles user CRUD
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"user", "u"},
		Usage:   "Manage users",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List users",
				Flags:   pageFlags(),
				Action:  r.UsersList,
			},
			{
				Name:      "get",
				Usage:     "Show a user",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Action:    r.UsersGet,
			},
			{
				Name:  "create",
				Usage: "Create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Full name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
				},
				Action: r.UsersCreate,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a user",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Full name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email address",
					},
				},
				Action: r.UsersUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a user and their favorites",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Action:    r.UsersDelete,
			},
		},
	}
}

// songsCommand handles song CRUD, export and import
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song", "s"},
		Usage:   "Manage songs",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List songs",
				Flags:   songFilterFlags(),
				Action:  r.SongsList,
			},
			{
				Name:      "get",
				Usage:     "Show a song",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Action:    r.SongsGet,
			},
			{
				Name:   "create",
				Usage:  "Create a song",
				Flags:  songFields(true),
				Action: r.SongsCreate,
			},
			{
				Name:      "update",
				Usage:     "Update the given fields of a song",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Flags:     songFields(false),
				Action:    r.SongsUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a song",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Action:    r.SongsDelete,
			},
			{
				Name:  "export",
				Usage: "Export songs as CSV, Markdown or JSON",
				Flags: append(songFilterFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, json)",
						Value:   formatter.FormatCSV,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				),
				Action: r.SongsExport,
			},
			{
				Name:      "import",
				Usage:     "Create songs from a CSV file",
				ArgsUsage: "<file.csv>",
				Arguments: stringArgs("file"),
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent create requests (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Create requests per second",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Validate the file without creating songs",
					},
				},
				Action: r.SongsImport,
			},
		},
	}
}

// favoritesCommand handles favorites
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav", "f"},
		Usage:   "Manage favorites",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List favorites of every user",
				Flags:   pageFlags(),
				Action:  r.FavoritesList,
			},
			{
				Name:      "user",
				Usage:     "List the favorites of a user with song details",
				ArgsUsage: "<user-id>",
				Arguments: stringArgs("user-id"),
				Action:    r.FavoritesUser,
			},
			{
				Name:   "add",
				Usage:  "Mark a song as favorite for a user",
				Flags:  favoritePairFlags(),
				Action: r.FavoritesAdd,
			},
			{
				Name:      "delete",
				Usage:     "Delete a favorite by ID",
				ArgsUsage: "<id>",
				Arguments: stringArgs("id"),
				Action:    r.FavoritesDelete,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a song from the favorites of a user",
				Flags:   favoritePairFlags(),
				Action:  r.FavoritesRemove,
			},
		},
	}
}

// dashboardCommand returns the catalog overview command
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Show catalog counts, top songs, top artists and recent favorites",
		Action:  r.Dashboard,
	}
}

// notificationsCommand handles the local notification journal
func notificationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notes"},
		Usage:   "Show or clear the notification history",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recent notifications",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of notifications",
						Value: repositories.DefaultJournalLimit,
					},
				},
				Action: r.NotificationsList,
			},
			{
				Name:   "clear",
				Usage:  "Delete every notification",
				Action: r.NotificationsClear,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (default: --config)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the notification journal and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog TUI",
		Action:  r.TUI,
	}
}
