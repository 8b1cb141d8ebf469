// package tasks implements multi-request catalog operations on top of the resource services.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
)

// UserLister is the part of [services.UserService] used by tasks.
type UserLister interface {
	List(ctx context.Context, opts services.ListOptions) ([]models.User, error)
}

// SongStore is the part of [services.SongService] used by tasks.
type SongStore interface {
	List(ctx context.Context, filter services.SongFilter) ([]models.Song, error)
	Create(ctx context.Context, req models.CreateSongRequest) (*models.Song, error)
}

// FavoriteLister is the part of [services.FavoriteService] used by tasks.
type FavoriteLister interface {
	List(ctx context.Context, opts services.ListOptions) ([]models.Favorite, error)
}

// CatalogEngine runs dashboard aggregation and bulk imports.
type CatalogEngine struct {
	users     UserLister
	songs     SongStore
	favorites FavoriteLister
}

// NewCatalogEngine creates a [CatalogEngine] with the provided services.
func NewCatalogEngine(users UserLister, songs SongStore, favorites FavoriteLister) *CatalogEngine {
	return &CatalogEngine{users: users, songs: songs, favorites: favorites}
}

// FromServices wires a [CatalogEngine] to the resource services in svc.
func FromServices(svc *services.Services) *CatalogEngine {
	return NewCatalogEngine(svc.Users, svc.Songs, svc.Favorites)
}

func (e *CatalogEngine) ready() error {
	if e == nil || e.users == nil || e.songs == nil || e.favorites == nil {
		return fmt.Errorf("%w: catalog services not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
