package formatter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/shared"
)

// SortField names a song column that can be sorted locally.
type SortField string

const (
	SortTitle    SortField = "title"
	SortArtist   SortField = "artist"
	SortDuration SortField = "duration"
	SortYear     SortField = "year"
)

// ParseSortField validates s. An empty string means no sorting.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "", SortTitle, SortArtist, SortDuration, SortYear:
		return f, nil
	default:
		return "", fmt.Errorf("%w: sort must be one of title, artist, duration, year (got %q)", shared.ErrInvalidFlag, s)
	}
}

// SortSongs sorts songs in place by field. Songs without a year sort first ascending.
// Equal keys keep their order.
func SortSongs(songs []models.Song, field SortField, desc bool) {
	if field == "" {
		return
	}

	compare := func(a, b models.Song) int {
		switch field {
		case SortTitle:
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortArtist:
			return cmp.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist))
		case SortDuration:
			return cmp.Compare(a.Duration, b.Duration)
		case SortYear:
			return cmp.Compare(yearOf(a), yearOf(b))
		}
		return 0
	}

	slices.SortStableFunc(songs, func(a, b models.Song) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func yearOf(s models.Song) int {
	if s.Year == nil {
		return 0
	}
	return *s.Year
}
