package models

import (
	"regexp"
	"strings"

	"github.com/desertthunder/musicadm/internal/shared"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every [FieldError] found by a Validate method.
// It wraps [shared.ErrInvalidInput].
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return shared.ErrInvalidInput }

// Message returns the message for field, or "" when the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ValidateEmail reports whether s has the shape local@domain.tld.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidYear reports whether y lies in [MinYear, MaxYear].
func ValidYear(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// Clean trims whitespace from every field.
func (r CreateUserRequest) Clean() CreateUserRequest {
	return CreateUserRequest{Name: strings.TrimSpace(r.Name), Email: strings.TrimSpace(r.Email)}
}

func (r CreateUserRequest) Validate() error {
	var v ValidationError
	validateName(&v, r.Name)
	validateEmail(&v, r.Email)
	return v.err()
}

// Clean trims set fields.
func (r UpdateUserRequest) Clean() UpdateUserRequest {
	return UpdateUserRequest{Name: trimPtr(r.Name), Email: trimPtr(r.Email)}
}

func (r UpdateUserRequest) Validate() error {
	var v ValidationError
	if r.Name != nil {
		validateName(&v, *r.Name)
	}
	if r.Email != nil {
		validateEmail(&v, *r.Email)
	}
	return v.err()
}

// Clean trims text fields and drops optional fields left blank.
func (r CreateSongRequest) Clean() CreateSongRequest {
	return CreateSongRequest{
		Title:    strings.TrimSpace(r.Title),
		Artist:   strings.TrimSpace(r.Artist),
		Album:    blankToNil(r.Album),
		Duration: r.Duration,
		Year:     r.Year,
		Genre:    blankToNil(r.Genre),
	}
}

func (r CreateSongRequest) Validate() error {
	var v ValidationError
	validateRequired(&v, "title", r.Title)
	validateRequired(&v, "artist", r.Artist)
	validateDuration(&v, r.Duration)
	validateYear(&v, r.Year)
	return v.err()
}

// Clean trims set text fields. Blank optional fields stay set so they can be cleared.
func (r UpdateSongRequest) Clean() UpdateSongRequest {
	return UpdateSongRequest{
		Title:    trimPtr(r.Title),
		Artist:   trimPtr(r.Artist),
		Album:    trimPtr(r.Album),
		Duration: r.Duration,
		Year:     r.Year,
		Genre:    trimPtr(r.Genre),
	}
}

func (r UpdateSongRequest) Validate() error {
	var v ValidationError
	if r.Title != nil {
		validateRequired(&v, "title", *r.Title)
	}
	if r.Artist != nil {
		validateRequired(&v, "artist", *r.Artist)
	}
	if r.Duration != nil {
		validateDuration(&v, *r.Duration)
	}
	validateYear(&v, r.Year)
	return v.err()
}

func (r CreateFavoriteRequest) Validate() error {
	var v ValidationError
	if r.UserID <= 0 {
		v.add("user", "select a user")
	}
	if r.SongID <= 0 {
		v.add("song", "select a song")
	}
	return v.err()
}

func validateName(v *ValidationError, name string) {
	validateRequired(v, "name", name)
}

func validateEmail(v *ValidationError, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		v.add("email", "email is required")
	case !ValidateEmail(email):
		v.add("email", "email is not valid")
	}
}

func validateRequired(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" is required")
	}
}

func validateDuration(v *ValidationError, d int) {
	if d <= 0 {
		v.add("duration", "duration must be greater than 0")
	}
}

func validateYear(v *ValidationError, y *int) {
	if y != nil && !ValidYear(*y) {
		v.add("year", "year must be between 1900 and 2100")
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func blankToNil(s *string) *string {
	t := trimPtr(s)
	if t == nil || *t == "" {
		return nil
	}
	return t
}
