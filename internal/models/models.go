package models

import "strconv"

// User is a registered listener.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"correo"`
	RegisteredAt Timestamp `json:"fecha_registro"`
}

// Song is a catalog entry. Duration is in whole seconds.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Artist    string    `json:"artista"`
	Album     *string   `json:"album,omitempty"`
	Duration  int       `json:"duracion"`
	Year      *int      `json:"año,omitempty"`
	Genre     *string   `json:"genero,omitempty"`
	CreatedAt Timestamp `json:"fecha_creacion"`
}

// AlbumName returns the album or "" when unset.
func (s Song) AlbumName() string { return deref(s.Album) }

// GenreName returns the genre or "" when unset.
func (s Song) GenreName() string { return deref(s.Genre) }

// YearString returns the release year or "-" when unset.
func (s Song) YearString() string {
	if s.Year == nil {
		return "-"
	}
	return strconv.Itoa(*s.Year)
}

// Favorite links one user to one song.
type Favorite struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"usuario_id"`
	SongID  int64     `json:"cancion_id"`
	AddedAt Timestamp `json:"fecha_agregado"`
}

// FavoriteWithSong is a [Favorite] with the full [Song] embedded, as returned by the per-user listing.
type FavoriteWithSong struct {
	Favorite
	Song Song `json:"cancion"`
}

// CreateUserRequest is the body of POST /usuarios.
type CreateUserRequest struct {
	Name  string `json:"nombre"`
	Email string `json:"correo"`
}

// UpdateUserRequest is the partial body of PATCH /usuarios/{id}. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"nombre,omitempty"`
	Email *string `json:"correo,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil
}

// CreateSongRequest is the body of POST /canciones/.
type CreateSongRequest struct {
	Title    string  `json:"titulo"`
	Artist   string  `json:"artista"`
	Album    *string `json:"album,omitempty"`
	Duration int     `json:"duracion"`
	Year     *int    `json:"año,omitempty"`
	Genre    *string `json:"genero,omitempty"`
}

// UpdateSongRequest is the partial body of PATCH /canciones/{id}/. Nil fields are left unchanged.
type UpdateSongRequest struct {
	Title    *string `json:"titulo,omitempty"`
	Artist   *string `json:"artista,omitempty"`
	Album    *string `json:"album,omitempty"`
	Duration *int    `json:"duracion,omitempty"`
	Year     *int    `json:"año,omitempty"`
	Genre    *string `json:"genero,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r UpdateSongRequest) IsEmpty() bool {
	return r.Title == nil && r.Artist == nil && r.Album == nil && r.Duration == nil && r.Year == nil && r.Genre == nil
}

// CreateFavoriteRequest is the body of POST /favoritos.
type CreateFavoriteRequest struct {
	UserID int64 `json:"usuario_id"`
	SongID int64 `json:"cancion_id"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
