package main

import (
	"context"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints a page of favorites across all users.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	favorites, err := r.svc.Favorites.List(ctx, services.ListOptions{Skip: cmd.Int("skip"), Limit: cmd.Int("limit")})
	if err != nil {
		return err
	}

	return r.writeResult(cmd, favorites, func() error {
		if len(favorites) == 0 {
			return r.writePlain("No favorites found.\n")
		}
		r.writePlain("%s\n", formatter.FavoritesTable(favorites))
		return r.writePlain("%d favorite(s)\n", len(favorites))
	})
}

// FavoritesUser prints the favorites of one user with their songs.
func (r *Runner) FavoritesUser(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	userID, err := idArg(cmd, "user-id")
	if err != nil {
		return err
	}

	favorites, err := r.svc.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	return r.writeResult(cmd, favorites, func() error {
		if len(favorites) == 0 {
			return r.writePlain("User #%d has no favorites.\n", userID)
		}
		r.writePlain("%s\n", formatter.UserFavoritesTable(favorites))
		return r.writePlain("%d favorite(s)\n", len(favorites))
	})
}

// FavoritesAdd marks a song as favorite for a user.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	req, err := favoriteFlags(cmd)
	if err != nil {
		return err
	}

	favorite, err := r.svc.Favorites.Create(ctx, req)
	if err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "song #%d added to the favorites of user #%d", favorite.SongID, favorite.UserID)
	return r.writeResult(cmd, favorite, func() error {
		return r.writePlain("%s\n", formatter.FavoritesTable([]models.Favorite{*favorite}))
	})
}

// FavoritesDelete deletes a favorite by its own ID.
func (r *Runner) FavoritesDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.svc.Favorites.Delete(ctx, id); err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "favorite #%d deleted", id)
	return nil
}

// FavoritesRemove deletes the favorite identified by the user and song pair.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	req, err := favoriteFlags(cmd)
	if err != nil {
		return err
	}

	if err := r.svc.Favorites.DeleteByUserSong(ctx, req.UserID, req.SongID); err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "song #%d removed from the favorites of user #%d", req.SongID, req.UserID)
	return nil
}

func favoriteFlags(cmd *cli.Command) (models.CreateFavoriteRequest, error) {
	userID, err := idFlag(cmd, "user")
	if err != nil {
		return models.CreateFavoriteRequest{}, err
	}
	songID, err := idFlag(cmd, "song")
	if err != nil {
		return models.CreateFavoriteRequest{}, err
	}

	req := models.CreateFavoriteRequest{UserID: userID, SongID: songID}
	return req, req.Validate()
}
