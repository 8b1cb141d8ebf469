package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
)

type mockUsers struct {
	users []models.User
	err   error
	opts  services.ListOptions
}

func (m *mockUsers) List(ctx context.Context, opts services.ListOptions) ([]models.User, error) {
	m.opts = opts
	return m.users, m.err
}

type mockSongs struct {
	mu        sync.Mutex
	songs     []models.Song
	listErr   error
	createErr map[string]error
	created   []models.CreateSongRequest
	inFlight  atomic.Int32
	maxFlight atomic.Int32
	delay     time.Duration
}

func (m *mockSongs) List(ctx context.Context, filter services.SongFilter) ([]models.Song, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.songs, nil
}

func (m *mockSongs) Create(ctx context.Context, req models.CreateSongRequest) (*models.Song, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		prev := m.maxFlight.Load()
		if n <= prev || m.maxFlight.CompareAndSwap(prev, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if err := m.createErr[req.Title]; err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, req)
	return &models.Song{ID: int64(len(m.created)), Title: req.Title, Artist: req.Artist, Duration: req.Duration}, nil
}

type mockFavorites struct {
	favorites []models.Favorite
	err       error
}

func (m *mockFavorites) List(ctx context.Context, opts services.ListOptions) ([]models.Favorite, error) {
	return m.favorites, m.err
}

func catalog() ([]models.User, []models.Song, []models.Favorite) {
	users := []models.User{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis"}}
	songs := []models.Song{
		{ID: 10, Title: "A", Artist: "Soda"},
		{ID: 11, Title: "B", Artist: "Soda"},
		{ID: 12, Title: "C", Artist: "Cerati"},
		{ID: 13, Title: "D", Artist: "Charly"},
		{ID: 14, Title: "E", Artist: "Cerati"},
		{ID: 15, Title: "F", Artist: "Fito"},
		{ID: 16, Title: "G", Artist: "Spinetta"},
		{ID: 17, Title: "H", Artist: "Soda"},
	}
	favorites := []models.Favorite{
		{ID: 1, UserID: 1, SongID: 12},
		{ID: 2, UserID: 2, SongID: 12},
		{ID: 3, UserID: 1, SongID: 99},
		{ID: 4, UserID: 2, SongID: 10},
		{ID: 5, UserID: 1, SongID: 13},
		{ID: 6, UserID: 2, SongID: 13},
		{ID: 7, UserID: 1, SongID: 14},
		{ID: 8, UserID: 2, SongID: 15},
		{ID: 9, UserID: 1, SongID: 16},
	}
	return users, songs, favorites
}

func TestDashboard(t *testing.T) {
	t.Run("aggregates", func(t *testing.T) {
		users, songs, favorites := catalog()
		u := &mockUsers{users: users}
		engine := NewCatalogEngine(u, &mockSongs{songs: songs}, &mockFavorites{favorites: favorites})

		progress := make(chan ProgressUpdate, 10)
		result, err := engine.Dashboard(context.Background(), progress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Users != 2 || result.Songs != 8 || result.Favorites != 9 {
			t.Errorf("unexpected counts %d/%d/%d", result.Users, result.Songs, result.Favorites)
		}
		if u.opts.Limit != DashboardLimit {
			t.Errorf("expected limit %d, got %d", DashboardLimit, u.opts.Limit)
		}

		wantTop := []int64{12, 13, 10, 14, 15}
		if len(result.TopSongs) != len(wantTop) {
			t.Fatalf("expected %d top songs, got %d", len(wantTop), len(result.TopSongs))
		}
		for i, id := range wantTop {
			if result.TopSongs[i].Song.ID != id {
				t.Errorf("top song %d: expected %d, got %d", i, id, result.TopSongs[i].Song.ID)
			}
		}
		if result.TopSongs[0].Favorites != 2 {
			t.Errorf("expected 2 favorites for top song, got %d", result.TopSongs[0].Favorites)
		}

		if result.TopArtists[0].Artist != "Soda" || result.TopArtists[0].Songs != 3 {
			t.Errorf("unexpected top artist %+v", result.TopArtists[0])
		}
		if result.TopArtists[1].Artist != "Cerati" || len(result.TopArtists) != 5 {
			t.Errorf("unexpected artist ranking %+v", result.TopArtists)
		}

		if len(result.Recent) != 4 {
			t.Fatalf("expected unknown song skipped from recent activity, got %d", len(result.Recent))
		}
		if result.Recent[2].ID != 4 || result.Recent[2].Song.Title != "A" {
			t.Errorf("unexpected recent entry %+v", result.Recent[2])
		}

		close(progress)
		var phases []Phase
		for p := range progress {
			phases = append(phases, p.Phase)
		}
		if len(phases) != 2 || phases[0] != FetchCatalog || phases[1] != Aggregate {
			t.Errorf("unexpected progress phases %v", phases)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		engine := NewCatalogEngine(&mockUsers{}, &mockSongs{}, &mockFavorites{})
		result, err := engine.Dashboard(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.TopSongs == nil || result.TopArtists == nil || result.Recent == nil {
			t.Errorf("expected empty non-nil rankings, got %+v", result)
		}
	})

	t.Run("any failure fails the dashboard", func(t *testing.T) {
		failure := services.Normalize(500, nil, nil)
		engine := NewCatalogEngine(&mockUsers{}, &mockSongs{listErr: failure}, &mockFavorites{})

		_, err := engine.Dashboard(context.Background(), nil)
		if !errors.Is(err, shared.ErrServer) {
			t.Errorf("expected server error, got %v", err)
		}
	})

	t.Run("uninitialized engine", func(t *testing.T) {
		var engine *CatalogEngine
		if _, err := engine.Dashboard(context.Background(), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestTopSongsTies(t *testing.T) {
	songs := []models.Song{{ID: 1}, {ID: 2}, {ID: 3}}
	favorites := []models.Favorite{{SongID: 3}, {SongID: 1}, {SongID: 2}, {SongID: 1}, {SongID: 3}}

	got := TopSongs(songs, favorites, 5)
	want := []int64{3, 1, 2}
	for i, id := range want {
		if got[i].Song.ID != id {
			t.Fatalf("expected order %v, got %+v", want, got)
		}
	}
}

func importRows(titles ...string) []formatter.ImportRow {
	rows := make([]formatter.ImportRow, len(titles))
	for i, title := range titles {
		rows[i] = formatter.ImportRow{
			Line:    i + 2,
			Request: models.CreateSongRequest{Title: title, Artist: "Artist", Duration: 100 + i},
		}
	}
	return rows
}

func TestImportSongs(t *testing.T) {
	t.Run("creates valid rows and skips invalid ones", func(t *testing.T) {
		songs := &mockSongs{createErr: map[string]error{"Dup": services.Normalize(400, []byte(`{"detail":"duplicated"}`), nil)}}
		engine := NewCatalogEngine(&mockUsers{}, songs, &mockFavorites{})

		rows := importRows("One", "Two", "Dup", "  ")
		rows = append(rows, formatter.ImportRow{Line: 6, Err: fmt.Errorf("%w: duration", shared.ErrInvalidInput)})

		progress := make(chan ProgressUpdate, 20)
		summary, err := engine.ImportSongs(context.Background(), progress, rows, ImportOpts{RateLimit: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if summary.Total != 5 || summary.Created != 2 || summary.Failed != 1 || summary.Skipped != 2 {
			t.Errorf("unexpected summary %+v", summary)
		}
		if len(songs.created) != 2 {
			t.Errorf("expected 2 create calls to succeed, got %d", len(songs.created))
		}

		if summary.Results[0].Song == nil || summary.Results[0].Line != 2 {
			t.Errorf("expected results in input order, got %+v", summary.Results[0])
		}
		if !errors.Is(summary.Results[2].Err, shared.ErrBadRequest) {
			t.Errorf("expected API error on Dup row, got %v", summary.Results[2].Err)
		}
		if !summary.Results[3].Skipped || !errors.Is(summary.Results[3].Err, shared.ErrInvalidInput) {
			t.Errorf("expected blank title skipped locally, got %+v", summary.Results[3])
		}

		close(progress)
		creates := 0
		for p := range progress {
			if p.Phase == CreateSongs {
				creates++
			}
		}
		if creates != 3 {
			t.Errorf("expected 3 create progress updates, got %d", creates)
		}
	})

	t.Run("dry run sends nothing", func(t *testing.T) {
		songs := &mockSongs{}
		engine := NewCatalogEngine(&mockUsers{}, songs, &mockFavorites{})

		summary, err := engine.ImportSongs(context.Background(), nil, importRows("One", "Two"), ImportOpts{DryRun: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(songs.created) != 0 || summary.Created != 0 || summary.Skipped != 0 {
			t.Errorf("expected no requests in dry run, got %+v", summary)
		}
	})

	t.Run("worker pool is bounded", func(t *testing.T) {
		songs := &mockSongs{delay: 20 * time.Millisecond}
		engine := NewCatalogEngine(&mockUsers{}, songs, &mockFavorites{})

		titles := make([]string, 12)
		for i := range titles {
			titles[i] = fmt.Sprintf("Song %d", i)
		}

		summary, err := engine.ImportSongs(context.Background(), nil, importRows(titles...), ImportOpts{NumWorkers: 50, RateLimit: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Created != 12 {
			t.Errorf("expected 12 created, got %d", summary.Created)
		}
		if got := songs.maxFlight.Load(); got > maxImportWorkers {
			t.Errorf("expected at most %d concurrent creates, got %d", maxImportWorkers, got)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		songs := &mockSongs{}
		engine := NewCatalogEngine(&mockUsers{}, songs, &mockFavorites{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary, err := engine.ImportSongs(ctx, nil, importRows("One", "Two"), ImportOpts{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Failed != 2 || !errors.Is(summary.Results[0].Err, context.Canceled) {
			t.Errorf("expected rows failed with context error, got %+v", summary)
		}
	})
}
