package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	tu "github.com/desertthunder/musicadm/internal/testing"
)

type request struct {
	method string
	path   string
	body   string
}

// fakeAPI records every request and answers with status and body.
type fakeAPI struct {
	mu       sync.Mutex
	requests []request
	status   int
	body     string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, request{method: r.Method, path: r.URL.Path, body: string(data)})
	status, body := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func (f *fakeAPI) last() request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return request{}
	}
	return f.requests[len(f.requests)-1]
}

func newTestModel(t *testing.T, api *fakeAPI) (*Model, *tu.RecordingNotifier) {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	svc := services.New(services.NewClient(services.ClientOpts{BaseURL: server.URL + "/api"}))
	notifier := &tu.RecordingNotifier{}
	m := NewModel(context.Background(), svc, notifier)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, notifier
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func testUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
		{ID: 2, Name: "Luis", Email: "luis@example.com"},
	}
}

func testSongs() []models.Song {
	return []models.Song{
		{ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", Duration: 354},
		{ID: 2, Title: "Aerials", Artist: "System of a Down", Duration: 235},
		{ID: 3, Title: "Creep", Artist: "Radiohead", Duration: 238},
	}
}

func TestModel(t *testing.T) {
	t.Run("NewModel", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		if m.tab != DashboardTab {
			t.Errorf("expected dashboard tab, got %v", m.tab)
		}
		if m.mode != browseMode {
			t.Errorf("expected browse mode, got %v", m.mode)
		}
		if m.engine == nil {
			t.Error("expected catalog engine to be built from services")
		}
	})

	t.Run("Tabs", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})

		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.tab != UsersTab {
			t.Errorf("expected users tab after tab, got %v", m.tab)
		}

		m.Update(keyRunes("3"))
		if m.tab != SongsTab {
			t.Errorf("expected songs tab after 3, got %v", m.tab)
		}

		m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		if m.tab != UsersTab {
			t.Errorf("expected users tab after shift+tab, got %v", m.tab)
		}

		m.Update(keyRunes("1"))
		m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		if m.tab != FavoritesTab {
			t.Errorf("expected shift+tab to wrap to favorites, got %v", m.tab)
		}
	})

	t.Run("Loaded Messages", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})

		m.loading[UsersTab] = true
		m.Update(usersLoadedMsg{users: testUsers()})
		if m.loading[UsersTab] {
			t.Error("expected users loading flag to be cleared")
		}
		if len(m.users.Items()) != 2 {
			t.Errorf("expected 2 user items, got %d", len(m.users.Items()))
		}

		m.loading[SongsTab] = true
		m.Update(songsLoadedMsg{err: context.Canceled})
		if !m.loading[SongsTab] {
			t.Error("expected canceled load to be ignored")
		}
	})

	t.Run("Stale Favorites Are Ignored", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		m.selectedUser = &models.User{ID: 2, Name: "Luis"}

		m.Update(favoritesLoadedMsg{userID: 1, favorites: []models.FavoriteWithSong{{Favorite: models.Favorite{ID: 1}}}})
		if len(m.favorites.Items()) != 0 {
			t.Errorf("expected favorites of another user to be dropped, got %d", len(m.favorites.Items()))
		}

		m.Update(favoritesLoadedMsg{userID: 2, favorites: []models.FavoriteWithSong{{Favorite: models.Favorite{ID: 1}}}})
		if len(m.favorites.Items()) != 1 {
			t.Errorf("expected 1 favorite item, got %d", len(m.favorites.Items()))
		}
	})

	t.Run("Sort Songs", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		m.Update(keyRunes("3"))
		m.Update(songsLoadedMsg{songs: testSongs()})

		m.Update(keyRunes("s"))
		if m.sortField != formatter.SortTitle {
			t.Fatalf("expected title sort, got %q", m.sortField)
		}
		first := m.songs.Items()[0].(songItem).song.Title
		if first != "Aerials" {
			t.Errorf("expected Aerials first, got %s", first)
		}

		m.Update(keyRunes("o"))
		first = m.songs.Items()[0].(songItem).song.Title
		if first != "Creep" {
			t.Errorf("expected Creep first in descending order, got %s", first)
		}

		if m.songData[0].Title != "Bohemian Rhapsody" {
			t.Error("expected sorting to leave loaded data untouched")
		}
	})

	t.Run("Notices", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		n := services.NewNotification(services.LevelError, "resource not found")

		_, cmd := m.Update(noticeMsg(n))
		if cmd == nil {
			t.Error("expected clear command to be scheduled")
		}
		if m.notice == nil || m.notice.Message != "resource not found" {
			t.Fatalf("expected notice to be set, got %+v", m.notice)
		}
		if !strings.Contains(m.View(), "resource not found") {
			t.Error("expected notice in view")
		}

		m.Update(clearNoticeMsg{id: "other"})
		if m.notice == nil {
			t.Error("expected notice to survive a stale clear")
		}

		m.Update(clearNoticeMsg{id: n.ID})
		if m.notice != nil {
			t.Error("expected notice to be cleared")
		}
	})

	t.Run("Quit Cancels Context", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		_, cmd := m.Update(keyRunes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if m.ctx.Err() == nil {
			t.Error("expected context to be canceled on quit")
		}
	})
}

func TestUserForm(t *testing.T) {
	t.Run("Local Validation", func(t *testing.T) {
		api := &fakeAPI{}
		m, _ := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(keyRunes("n"))
		if m.mode != formMode {
			t.Fatalf("expected form mode, got %v", m.mode)
		}

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		if cmd != nil {
			t.Error("expected no request for an invalid form")
		}
		if m.form.fields[0].err != "name is required" {
			t.Errorf("expected name error, got %q", m.form.fields[0].err)
		}
		if m.form.fields[1].err != "email is required" {
			t.Errorf("expected email error, got %q", m.form.fields[1].err)
		}
		if len(api.requests) != 0 {
			t.Errorf("expected no requests, got %d", len(api.requests))
		}
	})

	t.Run("Create", func(t *testing.T) {
		api := &fakeAPI{status: http.StatusCreated, body: `{"id":3,"nombre":"Ada","correo":"ada@example.com"}`}
		m, notifier := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(keyRunes("n"))

		typeText(m, "Ada")
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		typeText(m, "ada@example.com")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected enter on the last field to submit")
		}
		msg := cmd()

		req := api.last()
		if req.method != http.MethodPost || req.path != "/api/usuarios" {
			t.Errorf("expected POST /api/usuarios, got %s %s", req.method, req.path)
		}
		var body map[string]string
		json.Unmarshal([]byte(req.body), &body)
		if body["nombre"] != "Ada" || body["correo"] != "ada@example.com" {
			t.Errorf("unexpected request body %s", req.body)
		}

		m.Update(msg)
		if m.mode != browseMode || m.form != nil {
			t.Error("expected form to close after success")
		}
		if m.notice == nil || m.notice.Level != services.LevelSuccess {
			t.Errorf("expected success notice, got %+v", m.notice)
		}
		if notifier.Len() != 1 {
			t.Errorf("expected success to be forwarded, got %d", notifier.Len())
		}
	})

	t.Run("Server Error Keeps Form Open", func(t *testing.T) {
		api := &fakeAPI{status: http.StatusBadRequest, body: `{"detail":"El correo ya está registrado"}`}
		m, _ := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(keyRunes("n"))
		typeText(m, "Ada")
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		typeText(m, "ada@example.com")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		if cmd == nil {
			t.Fatal("expected submit command")
		}
		m.Update(cmd())

		if m.mode != formMode {
			t.Errorf("expected form to stay open, got mode %v", m.mode)
		}
	})

	t.Run("Edit Without Changes", func(t *testing.T) {
		api := &fakeAPI{}
		m, _ := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(usersLoadedMsg{users: testUsers()})
		m.Update(keyRunes("e"))
		if m.form == nil || !m.form.editing() {
			t.Fatal("expected edit form")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		if m.mode != browseMode {
			t.Error("expected form to close")
		}
		if len(api.requests) != 0 {
			t.Errorf("expected no request for an unchanged user, got %d", len(api.requests))
		}
	})

	t.Run("Escape Cancels", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		m.Update(keyRunes("2"))
		m.Update(keyRunes("n"))
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.mode != browseMode || m.form != nil {
			t.Error("expected esc to close the form")
		}
	})
}

func TestSongForm(t *testing.T) {
	t.Run("Parse Errors", func(t *testing.T) {
		f := newSongForm(nil)
		f.fields[0].input.SetValue("Creep")
		f.fields[1].input.SetValue("Radiohead")
		f.fields[3].input.SetValue("3:9")
		f.fields[4].input.SetValue("soon")

		_, err := f.songCreate()
		f.setErrors(err)

		if f.fields[3].err == "" {
			t.Error("expected duration error")
		}
		if f.fields[4].err != "year must be a number" {
			t.Errorf("expected year error, got %q", f.fields[4].err)
		}
		if f.fields[0].err != "" {
			t.Errorf("expected no title error, got %q", f.fields[0].err)
		}
	})

	t.Run("Create", func(t *testing.T) {
		f := newSongForm(nil)
		f.fields[0].input.SetValue("Creep")
		f.fields[1].input.SetValue("Radiohead")
		f.fields[3].input.SetValue("3:58")
		f.fields[4].input.SetValue("1992")

		req, err := f.songCreate()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Duration != 238 || req.Year == nil || *req.Year != 1992 {
			t.Errorf("unexpected request %+v", req)
		}
		if req.Album != nil || req.Genre != nil {
			t.Error("expected blank optionals to be omitted")
		}
	})

	t.Run("Update Sends Changed Fields", func(t *testing.T) {
		year := 1992
		song := models.Song{ID: 3, Title: "Creep", Artist: "Radiohead", Duration: 238, Year: &year}
		f := newSongForm(&song)
		f.fields[0].input.SetValue("Creep (Acoustic)")
		f.fields[4].input.SetValue("")

		req, err := f.songUpdate()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if req.Title == nil || *req.Title != "Creep (Acoustic)" {
			t.Errorf("expected title change, got %+v", req.Title)
		}
		if req.Artist != nil || req.Duration != nil || req.Year != nil || req.Album != nil || req.Genre != nil {
			t.Errorf("expected only the title to change, got %+v", req)
		}
	})
}

func TestConfirmDelete(t *testing.T) {
	t.Run("Decline", func(t *testing.T) {
		api := &fakeAPI{}
		m, _ := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(usersLoadedMsg{users: testUsers()})

		m.Update(keyRunes("d"))
		if m.mode != confirmMode {
			t.Fatalf("expected confirm mode, got %v", m.mode)
		}
		m.Update(keyRunes("n"))
		if m.mode != browseMode {
			t.Error("expected n to cancel")
		}
		if len(api.requests) != 0 {
			t.Errorf("expected no request, got %d", len(api.requests))
		}
	})

	t.Run("Accept Deletes Selected User", func(t *testing.T) {
		api := &fakeAPI{status: http.StatusNoContent}
		m, _ := newTestModel(t, api)
		m.Update(keyRunes("2"))
		m.Update(usersLoadedMsg{users: testUsers()})
		m.selectedUser = &models.User{ID: 1, Name: "Ana"}

		m.Update(keyRunes("d"))
		_, cmd := m.Update(keyRunes("y"))
		if cmd == nil {
			t.Fatal("expected delete command")
		}
		m.Update(cmd())

		req := api.last()
		if req.method != http.MethodDelete || req.path != "/api/usuarios/1" {
			t.Errorf("expected DELETE /api/usuarios/1, got %s %s", req.method, req.path)
		}
		if m.mode != browseMode {
			t.Error("expected browse mode after delete")
		}
		if m.selectedUser != nil {
			t.Error("expected deleted user to be deselected")
		}
	})
}

func TestFavorites(t *testing.T) {
	t.Run("Picker Requires User", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		m.Update(keyRunes("4"))
		m.Update(keyRunes("a"))
		if m.mode != browseMode {
			t.Error("expected picker to stay closed without a user")
		}
		if m.notice == nil || m.notice.Level != services.LevelWarn {
			t.Errorf("expected warning notice, got %+v", m.notice)
		}
	})

	t.Run("Picker Excludes Favorites", func(t *testing.T) {
		m, _ := newTestModel(t, &fakeAPI{})
		m.Update(songsLoadedMsg{songs: testSongs()})
		m.Update(usersLoadedMsg{users: testUsers()})
		m.Update(keyRunes("2"))
		m.Update(keyRunes("f"))
		if m.tab != FavoritesTab || m.selectedUser == nil || m.selectedUser.ID != 1 {
			t.Fatalf("expected favorites of user 1, got tab %v user %+v", m.tab, m.selectedUser)
		}

		m.Update(favoritesLoadedMsg{userID: 1, favorites: []models.FavoriteWithSong{
			{Favorite: models.Favorite{ID: 9, UserID: 1, SongID: 2}, Song: testSongs()[1]},
		}})

		m.Update(keyRunes("a"))
		if m.mode != pickMode {
			t.Fatalf("expected pick mode, got %v", m.mode)
		}
		for _, item := range m.picker.Items() {
			if item.(songItem).song.ID == 2 {
				t.Error("expected existing favorite to be excluded from the picker")
			}
		}
		if len(m.picker.Items()) != 2 {
			t.Errorf("expected 2 songs to pick from, got %d", len(m.picker.Items()))
		}
	})

	t.Run("Add And Remove", func(t *testing.T) {
		api := &fakeAPI{status: http.StatusCreated, body: `{"id":10,"usuario_id":1,"cancion_id":1}`}
		m, _ := newTestModel(t, api)
		m.Update(songsLoadedMsg{songs: testSongs()})
		m.Update(usersLoadedMsg{users: testUsers()})
		m.Update(keyRunes("2"))
		m.Update(keyRunes("f"))
		m.Update(favoritesLoadedMsg{userID: 1, favorites: []models.FavoriteWithSong{}})

		m.Update(keyRunes("a"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected add command")
		}
		m.Update(cmd())

		req := api.last()
		if req.method != http.MethodPost || req.path != "/api/favoritos" {
			t.Errorf("expected POST /api/favoritos, got %s %s", req.method, req.path)
		}
		if !strings.Contains(req.body, `"usuario_id":1`) || !strings.Contains(req.body, `"cancion_id":1`) {
			t.Errorf("unexpected body %s", req.body)
		}

		api.status, api.body = http.StatusNoContent, ""
		m.Update(favoritesLoadedMsg{userID: 1, favorites: []models.FavoriteWithSong{
			{Favorite: models.Favorite{ID: 10, UserID: 1, SongID: 1}, Song: testSongs()[0]},
		}})
		m.Update(keyRunes("d"))
		if m.mode != confirmMode {
			t.Fatalf("expected confirm mode, got %v", m.mode)
		}
		_, cmd = m.Update(keyRunes("y"))
		m.Update(cmd())

		req = api.last()
		if req.method != http.MethodDelete || req.path != "/api/favoritos/usuario/1/cancion/1" {
			t.Errorf("expected DELETE by pair, got %s %s", req.method, req.path)
		}
	})
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{})
	view := m.View()
	for _, tab := range tabs {
		if !strings.Contains(view, tab.String()) {
			t.Errorf("expected %s tab label in view", tab)
		}
	}

	m.Update(keyRunes("4"))
	if !strings.Contains(m.View(), "No user selected") {
		t.Error("expected hint when no user is selected")
	}
}
