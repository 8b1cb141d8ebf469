package formatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/shared"
)

// ImportRow is one parsed CSV record. Err is set when the record could not be read as a song.
type ImportRow struct {
	Line    int
	Request models.CreateSongRequest
	Err     error
}

// ParseSongsCSV reads songs in the layout written by [SongsToCSV].
//
// Header names are matched case-insensitively and the ID column is ignored. Title, Artist and Duration
// columns are required. Duration accepts whole seconds or m:ss. Per-record problems are reported on the row
// so one bad record does not reject the file.
func ParseSongsCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV file is empty", shared.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"title", "artist", "duration"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: CSV header is missing column %q", shared.ErrInvalidInput, required)
		}
	}

	get := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := []ImportRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rows = append(rows, ImportRow{Line: parseErr.Line, Err: fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)})
				continue
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		row := ImportRow{Line: line}
		req := models.CreateSongRequest{
			Title:  get(record, "title"),
			Artist: get(record, "artist"),
		}

		if d, err := ParseDuration(get(record, "duration")); err != nil {
			row.Err = err
		} else {
			req.Duration = d
		}

		if y := get(record, "year"); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				row.Err = errors.Join(row.Err, fmt.Errorf("%w: year %q", shared.ErrInvalidInput, y))
			} else {
				req.Year = &year
			}
		}

		if album := get(record, "album"); album != "" {
			req.Album = &album
		}
		if genre := get(record, "genre"); genre != "" {
			req.Genre = &genre
		}

		row.Request = req
		rows = append(rows, row)
	}

	return rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
