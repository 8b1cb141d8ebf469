package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
)

var (
	_ list.Item = userItem{}
	_ list.Item = songItem{}
	_ list.Item = favoriteItem{}
)

// userItem wraps [models.User] to implement [list.Item].
type userItem struct {
	user models.User
}

func (i userItem) FilterValue() string { return i.user.Name + " " + i.user.Email }
func (i userItem) Title() string       { return i.user.Name }
func (i userItem) Description() string {
	return fmt.Sprintf("%s • since %s", i.user.Email, formatter.FormatDate(i.user.RegisteredAt.Time))
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	parts := []string{i.song.Artist}
	if album := i.song.AlbumName(); album != "" {
		parts = append(parts, album)
	}
	if i.song.Year != nil {
		parts = append(parts, i.song.YearString())
	}
	if genre := i.song.GenreName(); genre != "" {
		parts = append(parts, genre)
	}
	parts = append(parts, formatter.FormatDuration(i.song.Duration))
	return strings.Join(parts, " • ")
}

// favoriteItem wraps [models.FavoriteWithSong] to implement [list.Item].
type favoriteItem struct {
	favorite models.FavoriteWithSong
}

func (i favoriteItem) FilterValue() string { return i.favorite.Song.Title + " " + i.favorite.Song.Artist }
func (i favoriteItem) Title() string       { return i.favorite.Song.Title }
func (i favoriteItem) Description() string {
	return fmt.Sprintf("%s • %s • added %s",
		i.favorite.Song.Artist,
		formatter.FormatDuration(i.favorite.Song.Duration),
		formatter.FormatDate(i.favorite.AddedAt.Time),
	)
}

func newList(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func userItems(users []models.User) []list.Item {
	items := make([]list.Item, len(users))
	for i, u := range users {
		items[i] = userItem{user: u}
	}
	return items
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

func favoriteItems(favorites []models.FavoriteWithSong) []list.Item {
	items := make([]list.Item, len(favorites))
	for i, f := range favorites {
		items[i] = favoriteItem{favorite: f}
	}
	return items
}
