package formatter

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/musicadm/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

func UsersTable(users []models.User) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			FormatDate(u.RegisteredAt.Time),
		})
	}
	return Table([]string{"ID", "Name", "Email", "Registered"}, rows)
}

func SongsTable(songs []models.Song) string {
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			s.Artist,
			orDash(s.AlbumName()),
			FormatDuration(s.Duration),
			s.YearString(),
			orDash(s.GenreName()),
		})
	}
	return Table([]string{"ID", "Title", "Artist", "Album", "Duration", "Year", "Genre"}, rows)
}

func FavoritesTable(favorites []models.Favorite) string {
	rows := make([][]string, 0, len(favorites))
	for _, f := range favorites {
		rows = append(rows, []string{
			strconv.FormatInt(f.ID, 10),
			strconv.FormatInt(f.UserID, 10),
			strconv.FormatInt(f.SongID, 10),
			FormatDate(f.AddedAt.Time),
		})
	}
	return Table([]string{"ID", "User", "Song", "Added"}, rows)
}

// UserFavoritesTable lists a user's favorites with song details.
func UserFavoritesTable(favorites []models.FavoriteWithSong) string {
	rows := make([][]string, 0, len(favorites))
	for _, f := range favorites {
		rows = append(rows, []string{
			strconv.FormatInt(f.SongID, 10),
			f.Song.Title,
			f.Song.Artist,
			FormatDuration(f.Song.Duration),
			FormatDate(f.AddedAt.Time),
		})
	}
	return Table([]string{"Song", "Title", "Artist", "Duration", "Added"}, rows)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
