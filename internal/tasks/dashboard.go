package tasks

import (
	"cmp"
	"context"
	"slices"

	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"golang.org/x/sync/errgroup"
)

// DashboardLimit is the page size of each list call issued by [CatalogEngine.Dashboard].
const DashboardLimit = 100

// dashboardTop is the length of every ranking on the dashboard.
const dashboardTop = 5

// SongRank is a song with the number of users that marked it favorite.
type SongRank struct {
	Song      models.Song `json:"song"`
	Favorites int         `json:"favorites"`
}

// ArtistRank is an artist with the number of catalog songs credited to it.
type ArtistRank struct {
	Artist string `json:"artist"`
	Songs  int    `json:"songs"`
}

// DashboardResult holds the catalog overview.
//
// Counts reflect the first [DashboardLimit] records of each resource.
type DashboardResult struct {
	Users      int                       `json:"users"`
	Songs      int                       `json:"songs"`
	Favorites  int                       `json:"favorites"`
	TopSongs   []SongRank                `json:"top_songs"`
	TopArtists []ArtistRank              `json:"top_artists"`
	Recent     []models.FavoriteWithSong `json:"recent"`
}

// Dashboard lists users, songs and favorites concurrently and aggregates them.
//
// If any list call fails, the first error is returned and the other calls are canceled.
func (e *CatalogEngine) Dashboard(ctx context.Context, progress chan<- ProgressUpdate) (*DashboardResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	var (
		users     []models.User
		songs     []models.Song
		favorites []models.Favorite
	)

	sendProgress(progress, fetchCatalogUpdate())

	g, gctx := errgroup.WithContext(ctx)
	opts := services.ListOptions{Limit: DashboardLimit}
	g.Go(func() error {
		var err error
		users, err = e.users.List(gctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		songs, err = e.songs.List(gctx, services.SongFilter{ListOptions: opts})
		return err
	})
	g.Go(func() error {
		var err error
		favorites, err = e.favorites.List(gctx, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sendProgress(progress, aggregateUpdate())
	return Summarize(users, songs, favorites), nil
}

// Summarize computes the dashboard aggregates from already fetched lists.
func Summarize(users []models.User, songs []models.Song, favorites []models.Favorite) *DashboardResult {
	return &DashboardResult{
		Users:      len(users),
		Songs:      len(songs),
		Favorites:  len(favorites),
		TopSongs:   TopSongs(songs, favorites, dashboardTop),
		TopArtists: TopArtists(songs, dashboardTop),
		Recent:     RecentActivity(songs, favorites, dashboardTop),
	}
}

func songIndex(songs []models.Song) map[int64]models.Song {
	index := make(map[int64]models.Song, len(songs))
	for _, s := range songs {
		index[s.ID] = s
	}
	return index
}

// TopSongs ranks songs by favorite count, highest first. Ties keep the order in which songs first appear in
// favorites. Favorites pointing at songs missing from songs are not ranked.
func TopSongs(songs []models.Song, favorites []models.Favorite, n int) []SongRank {
	index := songIndex(songs)
	counts := map[int64]int{}
	order := []int64{}
	for _, f := range favorites {
		if _, seen := counts[f.SongID]; !seen {
			order = append(order, f.SongID)
		}
		counts[f.SongID]++
	}

	ranks := []SongRank{}
	for _, id := range order {
		song, ok := index[id]
		if !ok {
			continue
		}
		ranks = append(ranks, SongRank{Song: song, Favorites: counts[id]})
	}

	slices.SortStableFunc(ranks, func(a, b SongRank) int { return cmp.Compare(b.Favorites, a.Favorites) })
	return ranks[:min(n, len(ranks))]
}

// TopArtists ranks artists by song count, highest first. Ties keep first-seen order.
func TopArtists(songs []models.Song, n int) []ArtistRank {
	counts := map[string]int{}
	order := []string{}
	for _, s := range songs {
		if _, seen := counts[s.Artist]; !seen {
			order = append(order, s.Artist)
		}
		counts[s.Artist]++
	}

	ranks := make([]ArtistRank, 0, len(order))
	for _, artist := range order {
		ranks = append(ranks, ArtistRank{Artist: artist, Songs: counts[artist]})
	}

	slices.SortStableFunc(ranks, func(a, b ArtistRank) int { return cmp.Compare(b.Songs, a.Songs) })
	return ranks[:min(n, len(ranks))]
}

// RecentActivity joins the first n favorites with their songs, skipping favorites whose song is unknown.
func RecentActivity(songs []models.Song, favorites []models.Favorite, n int) []models.FavoriteWithSong {
	index := songIndex(songs)
	recent := []models.FavoriteWithSong{}
	for _, f := range favorites[:min(n, len(favorites))] {
		song, ok := index[f.SongID]
		if !ok {
			continue
		}
		recent = append(recent, models.FavoriteWithSong{Favorite: f, Song: song})
	}
	return recent
}
