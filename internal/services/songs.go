package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/models"
)

// SongService manages songs at /canciones/. The backend requires the trailing slash on every song path.
type SongService struct {
	client *Client
}

func NewSongService(c *Client) *SongService {
	return &SongService{client: c}
}

func songPath(id int64) string { return fmt.Sprintf("/canciones/%d/", id) }

// List returns one page of songs, optionally filtered by artist and genre.
func (s *SongService) List(ctx context.Context, filter SongFilter) ([]models.Song, error) {
	return getList[models.Song](ctx, s.client, "/canciones/", filter.query())
}

func (s *SongService) Get(ctx context.Context, id int64) (*models.Song, error) {
	var song models.Song
	if err := s.client.Get(ctx, songPath(id), nil, nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Create(ctx context.Context, req models.CreateSongRequest) (*models.Song, error) {
	var song models.Song
	if err := s.client.Post(ctx, "/canciones/", nil, req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Update(ctx context.Context, id int64, req models.UpdateSongRequest) (*models.Song, error) {
	var song models.Song
	if err := s.client.Patch(ctx, songPath(id), nil, req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *SongService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, songPath(id), nil, nil, nil)
}
