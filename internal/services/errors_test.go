package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/musicadm/internal/shared"
)

func TestNormalize(t *testing.T) {
	tc := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "400 with detail", status: 400, body: `{"detail":"El correo ya está registrado"}`, message: "El correo ya está registrado"},
		{name: "400 with message", status: 400, body: `{"message":"duplicated"}`, message: "duplicated"},
		{name: "400 with empty detail falls through to message", status: 400, body: `{"detail":"","message":"dup"}`, message: "dup"},
		{name: "400 without body", status: 400, body: ``, message: "invalid or duplicate data"},
		{name: "404 with detail", status: 404, body: `{"detail":"Canción no encontrada"}`, message: "Canción no encontrada"},
		{name: "404 ignores message", status: 404, body: `{"message":"nope"}`, message: "resource not found"},
		{
			name:    "422 with validation list",
			status:  422,
			body:    `{"detail":[{"loc":["body","correo"],"msg":"value is not a valid email address"},{"loc":["body","nombre"],"msg":"field required"}]}`,
			message: "body → correo: value is not a valid email address, body → nombre: field required",
		},
		{name: "422 entry without loc", status: 422, body: `{"detail":[{"msg":"bad"}]}`, message: "field: bad"},
		{name: "422 with numeric loc", status: 422, body: `{"detail":[{"loc":["query","limit",0],"msg":"too big"}]}`, message: "query → limit → 0: too big"},
		{name: "422 with string detail", status: 422, body: `{"detail":"duracion must be positive"}`, message: "duracion must be positive"},
		{name: "422 without detail", status: 422, body: `{}`, message: "validation error"},
		{name: "500 ignores body", status: 500, body: `{"detail":"trace"}`, message: "internal server error"},
		{name: "no response", status: 0, body: ``, message: "could not connect to server"},
		{name: "other status", status: 503, body: `{"detail":"maintenance"}`, message: "server error, try again"},
		{name: "non-JSON body", status: 400, body: `<html>bad</html>`, message: "invalid or duplicate data"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize(tt.status, []byte(tt.body), nil)
			if err.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Message)
			}
			if err.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, err.Status)
			}
		})
	}

	t.Run("Data", func(t *testing.T) {
		if err := Normalize(400, nil, nil); err.Data != nil {
			t.Errorf("expected nil data for empty body, got %v", err.Data)
		}
		if err := Normalize(400, []byte("oops"), nil); err.Data != "oops" {
			t.Errorf("expected raw text data, got %v", err.Data)
		}
		err := Normalize(404, []byte(`{"detail":"x"}`), nil)
		if m, ok := err.Data.(map[string]any); !ok || m["detail"] != "x" {
			t.Errorf("expected decoded data, got %v", err.Data)
		}
	})

	t.Run("Sentinels", func(t *testing.T) {
		tc := map[int]error{
			400: shared.ErrBadRequest,
			404: shared.ErrNotFound,
			422: shared.ErrValidation,
			500: shared.ErrServer,
			0:   shared.ErrUnreachable,
		}

		for status, sentinel := range tc {
			err := error(Normalize(status, nil, nil))
			if !errors.Is(err, sentinel) {
				t.Errorf("status %d: expected match with %v", status, sentinel)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("status %d: expected match with ErrAPIRequest", status)
			}
			if status != 404 && errors.Is(err, shared.ErrNotFound) {
				t.Errorf("status %d: unexpected match with ErrNotFound", status)
			}
		}
	})
}

func TestListOptions(t *testing.T) {
	tc := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{name: "zero limit", in: ListOptions{}, want: ListOptions{Limit: 100}},
		{name: "limit in range", in: ListOptions{Skip: 20, Limit: 10}, want: ListOptions{Skip: 20, Limit: 10}},
		{name: "limit over cap", in: ListOptions{Limit: 500}, want: ListOptions{Limit: 100}},
		{name: "negative skip", in: ListOptions{Skip: -1, Limit: 5}, want: ListOptions{Limit: 5}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}

	t.Run("SongFilter query omits empty filters", func(t *testing.T) {
		q := SongFilter{ListOptions: ListOptions{Limit: 10}}.query()
		if q.Has("artista") || q.Has("genero") {
			t.Errorf("expected no filters, got %v", q)
		}
		if q.Get("skip") != "0" || q.Get("limit") != "10" {
			t.Errorf("expected skip and limit, got %v", q)
		}

		q = SongFilter{Artist: "Ana", Genre: "jazz"}.query()
		if q.Get("artista") != "Ana" || q.Get("genero") != "jazz" || q.Get("limit") != "100" {
			t.Errorf("expected filters and capped limit, got %v", q)
		}
	})
}
