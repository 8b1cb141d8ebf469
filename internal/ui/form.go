package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
)

type formKind int

const (
	userForm formKind = iota
	songForm
)

type formField struct {
	key   string
	label string
	input textinput.Model
	err   string
}

// form is a create/edit form made of text inputs. The zero ID means create.
type form struct {
	kind   formKind
	title  string
	id     int64
	user   models.User
	song   models.Song
	fields []formField
	focus  int
}

func newField(key, label, placeholder, value string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.SetValue(value)
	return formField{key: key, label: label, input: ti}
}

func newUserForm(u *models.User) *form {
	f := &form{kind: userForm, title: "New user"}
	var name, email string
	if u != nil {
		f.title, f.id, f.user = "Edit user", u.ID, *u
		name, email = u.Name, u.Email
	}
	f.fields = []formField{
		newField("name", "Name", "Ada Lovelace", name),
		newField("email", "Email", "ada@example.com", email),
	}
	f.setFocus(0)
	return f
}

func newSongForm(s *models.Song) *form {
	f := &form{kind: songForm, title: "New song"}
	var title, artist, album, duration, year, genre string
	if s != nil {
		f.title, f.id, f.song = "Edit song", s.ID, *s
		title, artist, album, genre = s.Title, s.Artist, s.AlbumName(), s.GenreName()
		duration = formatter.FormatDuration(s.Duration)
		if s.Year != nil {
			year = strconv.Itoa(*s.Year)
		}
	}
	f.fields = []formField{
		newField("title", "Title", "Song title", title),
		newField("artist", "Artist", "Artist name", artist),
		newField("album", "Album", "optional", album),
		newField("duration", "Duration", "m:ss or seconds", duration),
		newField("year", "Year", fmt.Sprintf("optional, %d-%d", models.MinYear, models.MaxYear), year),
		newField("genre", "Genre", "optional", genre),
	}
	f.setFocus(0)
	return f
}

func (f *form) editing() bool { return f.id != 0 }

func (f *form) setFocus(i int) {
	if i < 0 {
		i = len(f.fields) - 1
	}
	if i >= len(f.fields) {
		i = 0
	}
	f.focus = i
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// onLastField reports whether enter should submit.
func (f *form) onLastField() bool { return f.focus == len(f.fields)-1 }

// Update moves focus on navigation keys and otherwise forwards msg to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down", "enter":
			f.setFocus(f.focus + 1)
			return textinput.Blink
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return textinput.Blink
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return strings.TrimSpace(field.input.Value())
		}
	}
	return ""
}

// setErrors shows err next to its fields. A non-validation error is ignored.
func (f *form) setErrors(err error) {
	var verr *models.ValidationError
	errors.As(err, &verr)
	for i := range f.fields {
		f.fields[i].err = ""
		if verr != nil {
			f.fields[i].err = verr.Message(f.fields[i].key)
		}
	}
}

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")
	for i, field := range f.fields {
		label := styles.label.Render(fmt.Sprintf("%-9s", field.label))
		if i == f.focus {
			label = styles.ok.Render(fmt.Sprintf("%-9s", field.label))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, field.input.View()))
		if field.err != "" {
			b.WriteString(styles.err.Render("          " + field.err))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// userCreate builds and validates a create request.
func (f *form) userCreate() (models.CreateUserRequest, error) {
	req := models.CreateUserRequest{Name: f.value("name"), Email: f.value("email")}.Clean()
	return req, req.Validate()
}

// userUpdate builds a partial update holding only changed fields.
func (f *form) userUpdate() (models.UpdateUserRequest, error) {
	var req models.UpdateUserRequest
	if name := f.value("name"); name != f.user.Name {
		req.Name = &name
	}
	if email := f.value("email"); email != f.user.Email {
		req.Email = &email
	}
	return req, req.Validate()
}

// songValues parses the numeric fields. Parse failures are reported as field errors.
func (f *form) songValues() (duration int, year *int, verr *models.ValidationError) {
	verr = &models.ValidationError{}

	d, err := formatter.ParseDuration(f.value("duration"))
	if err != nil && f.value("duration") != "" {
		verr.Fields = append(verr.Fields, models.FieldError{Field: "duration", Message: "duration must be m:ss or whole seconds"})
	}
	duration = d

	if y := f.value("year"); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			verr.Fields = append(verr.Fields, models.FieldError{Field: "year", Message: "year must be a number"})
		} else {
			year = &n
		}
	}
	return duration, year, verr
}

// merge adds the fields of err not already reported by parsing.
func merge(parsed *models.ValidationError, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Fields {
			if parsed.Message(fe.Field) == "" {
				parsed.Fields = append(parsed.Fields, fe)
			}
		}
	} else if err != nil {
		return err
	}

	if len(parsed.Fields) == 0 {
		return nil
	}
	return parsed
}

func (f *form) songCreate() (models.CreateSongRequest, error) {
	duration, year, parsed := f.songValues()
	req := models.CreateSongRequest{
		Title:    f.value("title"),
		Artist:   f.value("artist"),
		Album:    models.Ptr(f.value("album")),
		Duration: duration,
		Year:     year,
		Genre:    models.Ptr(f.value("genre")),
	}.Clean()
	return req, merge(parsed, req.Validate())
}

// songUpdate builds a partial update holding only changed fields. A blank year leaves the year unchanged.
func (f *form) songUpdate() (models.UpdateSongRequest, error) {
	duration, year, parsed := f.songValues()

	var req models.UpdateSongRequest
	if v := f.value("title"); v != f.song.Title {
		req.Title = &v
	}
	if v := f.value("artist"); v != f.song.Artist {
		req.Artist = &v
	}
	if v := f.value("album"); v != f.song.AlbumName() {
		req.Album = &v
	}
	if parsed.Message("duration") == "" && duration != f.song.Duration {
		req.Duration = &duration
	}
	if year != nil && (f.song.Year == nil || *year != *f.song.Year) {
		req.Year = year
	}
	if v := f.value("genre"); v != f.song.GenreName() {
		req.Genre = &v
	}
	return req, merge(parsed, req.Validate())
}
