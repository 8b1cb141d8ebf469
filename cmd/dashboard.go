package main

import (
	"context"
	"strconv"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Dashboard prints catalog counts, top songs, top artists and recent favorites.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase)
		}
	}()

	result, err := r.engine.Dashboard(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	return r.writeResult(cmd, result, func() error {
		r.writePlainHeader("Catalog Dashboard")
		r.writePlain("Users: %d\n", result.Users)
		r.writePlain("Songs: %d\n", result.Songs)
		r.writePlain("Favorites: %d\n", result.Favorites)

		r.writePlainln("Top songs")
		rows := make([][]string, len(result.TopSongs))
		for i, rank := range result.TopSongs {
			rows[i] = []string{strconv.Itoa(i + 1), rank.Song.Title, rank.Song.Artist, strconv.Itoa(rank.Favorites)}
		}
		r.writePlain("%s\n", formatter.Table([]string{"#", "Title", "Artist", "Favorites"}, rows))

		r.writePlainln("Top artists")
		rows = make([][]string, len(result.TopArtists))
		for i, rank := range result.TopArtists {
			rows[i] = []string{strconv.Itoa(i + 1), rank.Artist, strconv.Itoa(rank.Songs)}
		}
		r.writePlain("%s\n", formatter.Table([]string{"#", "Artist", "Songs"}, rows))

		r.writePlainln("Recent activity")
		if len(result.Recent) == 0 {
			return r.writePlain("No favorites yet.\n")
		}
		return r.writePlain("%s\n", formatter.UserFavoritesTable(result.Recent))
	})
}
