package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/desertthunder/musicadm/internal/tasks"
	"github.com/urfave/cli/v3"
)

func songFilter(cmd *cli.Command) services.SongFilter {
	return services.SongFilter{
		ListOptions: services.ListOptions{Skip: cmd.Int("skip"), Limit: cmd.Int("limit")},
		Artist:      cmd.String("artist"),
		Genre:       cmd.String("genre"),
	}
}

// SongsList prints a page of songs, optionally filtered by artist or genre and sorted locally.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	field, err := formatter.ParseSortField(cmd.String("sort"))
	if err != nil {
		return err
	}

	songs, err := r.svc.Songs.List(ctx, songFilter(cmd))
	if err != nil {
		return err
	}
	formatter.SortSongs(songs, field, cmd.Bool("desc"))

	return r.writeResult(cmd, songs, func() error {
		if len(songs) == 0 {
			return r.writePlain("No songs found.\n")
		}
		r.writePlain("%s\n", formatter.SongsTable(songs))
		return r.writePlain("%d song(s)\n", len(songs))
	})
}

// SongsGet prints a single song.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	song, err := r.svc.Songs.Get(ctx, id)
	if err != nil {
		return err
	}

	return r.writeResult(cmd, song, func() error {
		return r.writePlain("%s\n", formatter.SongsTable([]models.Song{*song}))
	})
}

// durationFlag parses --duration as whole seconds or m:ss.
func durationFlag(cmd *cli.Command) (int, error) {
	d, err := formatter.ParseDuration(cmd.String("duration"))
	if err != nil {
		return 0, fmt.Errorf("%w: --duration: %v", shared.ErrInvalidFlag, err)
	}
	return d, nil
}

// SongsCreate validates the flags locally and creates a song.
func (r *Runner) SongsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	duration, err := durationFlag(cmd)
	if err != nil {
		return err
	}

	req := models.CreateSongRequest{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Album:    models.Ptr(cmd.String("album")),
		Duration: duration,
		Genre:    models.Ptr(cmd.String("genre")),
	}
	if cmd.IsSet("year") {
		req.Year = models.Ptr(cmd.Int("year"))
	}

	req = req.Clean()
	if err := req.Validate(); err != nil {
		return err
	}

	song, err := r.svc.Songs.Create(ctx, req)
	if err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "song created: %s (#%d)", song.Title, song.ID)
	return r.writeResult(cmd, song, func() error {
		return r.writePlain("%s\n", formatter.SongsTable([]models.Song{*song}))
	})
}

// SongsUpdate sends only the fields passed as flags.
func (r *Runner) SongsUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	var req models.UpdateSongRequest
	for name, dst := range map[string]**string{
		"title":  &req.Title,
		"artist": &req.Artist,
		"album":  &req.Album,
		"genre":  &req.Genre,
	} {
		if cmd.IsSet(name) {
			*dst = models.Ptr(cmd.String(name))
		}
	}
	if cmd.IsSet("duration") {
		duration, err := durationFlag(cmd)
		if err != nil {
			return err
		}
		req.Duration = &duration
	}
	if cmd.IsSet("year") {
		req.Year = models.Ptr(cmd.Int("year"))
	}
	if req.IsEmpty() {
		return fmt.Errorf("%w: pass at least one field to update", shared.ErrMissingArgument)
	}

	req = req.Clean()
	if err := req.Validate(); err != nil {
		return err
	}

	song, err := r.svc.Songs.Update(ctx, id, req)
	if err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "song updated: %s (#%d)", song.Title, song.ID)
	return r.writeResult(cmd, song, func() error {
		return r.writePlain("%s\n", formatter.SongsTable([]models.Song{*song}))
	})
}

// SongsDelete deletes a song.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}
	id, err := idArg(cmd, "id")
	if err != nil {
		return err
	}

	if err := r.svc.Songs.Delete(ctx, id); err != nil {
		return err
	}

	r.notify(ctx, services.LevelSuccess, "song #%d deleted", id)
	return nil
}

// SongsExport renders the song listing as CSV, Markdown or JSON to a file or stdout.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	field, err := formatter.ParseSortField(cmd.String("sort"))
	if err != nil {
		return err
	}

	songs, err := r.svc.Songs.List(ctx, songFilter(cmd))
	if err != nil {
		return err
	}
	formatter.SortSongs(songs, field, cmd.Bool("desc"))

	data, err := formatter.ExportSongs(songs, cmd.String("format"))
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		_, err := r.output.Write(data)
		return err
	}

	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}
	r.logger.Info("songs exported", "path", path, "count", len(songs), "format", cmd.String("format"))
	r.notify(ctx, services.LevelSuccess, "exported %d song(s) to %s", len(songs), path)
	return nil
}

// SongsImport creates songs from a CSV file using a rate-limited worker pool.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(); err != nil {
		return err
	}

	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: file", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	rows, err := formatter.ParseSongsCSV(f)
	if err != nil {
		return err
	}

	r.logger.Info("starting import", "file", path, "rows", len(rows), "dry_run", cmd.Bool("dry-run"))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ValidateRows:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.CreateSongs:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	summary, err := r.engine.ImportSongs(ctx, progressCh, rows, tasks.ImportOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
		DryRun:     cmd.Bool("dry-run"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(importReport(summary), !cmd.Bool("compact"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Rows: %d\n", summary.Total)
	r.writePlain("Created: %d\n", summary.Created)
	r.writePlain("Failed: %d\n", summary.Failed)
	r.writePlain("Skipped: %d\n", summary.Skipped)

	if summary.Failed+summary.Skipped > 0 {
		r.writePlain("\nProblems:\n")
		for _, res := range summary.Results {
			if res.Err != nil {
				r.writePlain("  line %d: %v\n", res.Line, res.Err)
			}
		}
	}

	level := services.LevelSuccess
	if summary.Failed > 0 {
		level = services.LevelWarn
	}
	r.notify(ctx, level, "import of %s: %d created, %d failed, %d skipped", path, summary.Created, summary.Failed, summary.Skipped)
	return nil
}

type importRow struct {
	Line    int          `json:"line"`
	Song    *models.Song `json:"song,omitempty"`
	Error   string       `json:"error,omitempty"`
	Skipped bool         `json:"skipped,omitempty"`
}

// importReport flattens a summary for JSON output, where errors would otherwise encode as {}.
func importReport(s *tasks.ImportSummary) map[string]any {
	rows := make([]importRow, len(s.Results))
	for i, res := range s.Results {
		rows[i] = importRow{Line: res.Line, Song: res.Song, Skipped: res.Skipped}
		if res.Err != nil {
			rows[i].Error = res.Err.Error()
		}
	}
	return map[string]any{
		"total":   s.Total,
		"created": s.Created,
		"failed":  s.Failed,
		"skipped": s.Skipped,
		"results": rows,
	}
}
