package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/shared"
)

// Export formats accepted by [ExportSongs].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// SongsCSVHeader is the header row written by [SongsToCSV] and read by [ParseSongsCSV].
var SongsCSVHeader = []string{"ID", "Title", "Artist", "Album", "Duration", "Year", "Genre"}

// SongsToCSV converts songs to CSV. Duration is written in whole seconds; unset optionals are empty.
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(SongsCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range songs {
		year := ""
		if s.Year != nil {
			year = strconv.Itoa(*s.Year)
		}
		record := []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			s.Artist,
			s.AlbumName(),
			strconv.Itoa(s.Duration),
			year,
			s.GenreName(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SongsToMarkdown renders songs as a numbered Markdown list under title.
func SongsToMarkdown(title string, songs []models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	total := 0
	for _, s := range songs {
		total += s.Duration
	}
	buf.WriteString(fmt.Sprintf("**Total duration**: %s\n\n", FormatDuration(total)))

	buf.WriteString("## Songs\n\n")
	for i, s := range songs {
		var extra []string
		if album := s.AlbumName(); album != "" {
			extra = append(extra, album)
		}
		if s.Year != nil {
			extra = append(extra, strconv.Itoa(*s.Year))
		}
		detail := ""
		if len(extra) > 0 {
			detail = fmt.Sprintf(" (%s)", strings.Join(extra, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, s.Artist, s.Title, detail, FormatDuration(s.Duration)))
	}

	return buf.Bytes()
}

// ExportSongs renders songs in format.
func ExportSongs(songs []models.Song, format string) ([]byte, error) {
	switch format {
	case FormatCSV, "":
		return SongsToCSV(songs)
	case FormatMarkdown, "md":
		return SongsToMarkdown("Songs", songs), nil
	case FormatJSON:
		return shared.MarshalJSON(songs, true)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport writes data to path, creating parent directories as needed.
func WriteExport(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
