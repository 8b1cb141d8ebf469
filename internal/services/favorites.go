package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/models"
)

// FavoriteService manages user/song favorites at /favoritos.
type FavoriteService struct {
	client *Client
}

func NewFavoriteService(c *Client) *FavoriteService {
	return &FavoriteService{client: c}
}

// List returns one page of favorites across all users.
func (s *FavoriteService) List(ctx context.Context, opts ListOptions) ([]models.Favorite, error) {
	return getList[models.Favorite](ctx, s.client, "/favoritos", opts.query())
}

// ListByUser returns the favorites of one user with each song embedded.
// A user without favorites yields an empty slice.
func (s *FavoriteService) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteWithSong, error) {
	return getList[models.FavoriteWithSong](ctx, s.client, fmt.Sprintf("/favoritos/usuario/%d", userID), nil)
}

func (s *FavoriteService) Create(ctx context.Context, req models.CreateFavoriteRequest) (*models.Favorite, error) {
	var fav models.Favorite
	if err := s.client.Post(ctx, "/favoritos", nil, req, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

// Delete removes a favorite by its own ID.
func (s *FavoriteService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/favoritos/%d", id), nil, nil, nil)
}

// DeleteByUserSong removes the favorite linking userID and songID.
func (s *FavoriteService) DeleteByUserSong(ctx context.Context, userID, songID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/favoritos/usuario/%d/cancion/%d", userID, songID), nil, nil, nil)
}
