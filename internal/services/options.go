package services

import (
	"net/url"
	"strconv"
)

// MaxLimit is the largest page size the API accepts.
const MaxLimit = 100

// ListOptions paginates list calls.
type ListOptions struct {
	Skip  int
	Limit int
}

// Normalized returns a copy with Skip clamped to 0 and Limit in [1, MaxLimit].
// A zero or out of range Limit becomes MaxLimit.
func (o ListOptions) Normalized() ListOptions {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 || o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

func (o ListOptions) query() url.Values {
	o = o.Normalized()
	q := url.Values{}
	q.Set("skip", strconv.Itoa(o.Skip))
	q.Set("limit", strconv.Itoa(o.Limit))
	return q
}

// SongFilter narrows a song listing. Empty filters are not sent.
type SongFilter struct {
	ListOptions
	Artist string
	Genre  string
}

func (f SongFilter) query() url.Values {
	q := f.ListOptions.query()
	if f.Artist != "" {
		q.Set("artista", f.Artist)
	}
	if f.Genre != "" {
		q.Set("genero", f.Genre)
	}
	return q
}
