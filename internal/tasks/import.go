package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/musicadm/internal/formatter"
	"github.com/desertthunder/musicadm/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultImportWorkers = 4
	maxImportWorkers     = 10
	defaultImportRate    = 5.0
)

// ImportOpts configures [CatalogEngine.ImportSongs].
type ImportOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Create requests per second (default: 5)
	DryRun     bool    // Validate only, send nothing
}

// ImportResult is the outcome of one row.
type ImportResult struct {
	Line    int
	Request models.CreateSongRequest
	Song    *models.Song
	Err     error
	Skipped bool // rejected locally, never sent
}

// ImportSummary aggregates every [ImportResult] in input order.
type ImportSummary struct {
	Total   int
	Created int
	Failed  int
	Skipped int
	Results []ImportResult
}

type importJob struct {
	index int
	row   formatter.ImportRow
}

// ImportSongs validates rows locally, then creates the valid ones with a worker pool sharing one rate limiter.
//
// Rows that fail parsing or validation are skipped without a request. A failed create does not stop the
// import. Cancelling ctx stops dispatching; rows not yet sent are reported with the context error.
func (e *CatalogEngine) ImportSongs(ctx context.Context, progress chan<- ProgressUpdate, rows []formatter.ImportRow, opts ImportOpts) (*ImportSummary, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultImportWorkers
	}
	if opts.NumWorkers > maxImportWorkers {
		opts.NumWorkers = maxImportWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultImportRate
	}

	summary := &ImportSummary{Total: len(rows), Results: make([]ImportResult, len(rows))}

	var jobs []importJob
	for i, row := range rows {
		res := ImportResult{Line: row.Line, Request: row.Request.Clean()}
		err := row.Err
		if err == nil {
			err = res.Request.Validate()
		}
		if err != nil {
			res.Err = err
			res.Skipped = true
		} else {
			jobs = append(jobs, importJob{index: i, row: formatter.ImportRow{Line: row.Line, Request: res.Request}})
		}
		summary.Results[i] = res
	}
	sendProgress(progress, validateRowsUpdate(len(jobs), len(rows)))

	if !opts.DryRun && len(jobs) > 0 {
		e.createSongs(ctx, progress, jobs, summary.Results, opts)
	}

	for _, res := range summary.Results {
		switch {
		case res.Skipped:
			summary.Skipped++
		case res.Err != nil:
			summary.Failed++
		case res.Song != nil:
			summary.Created++
		}
	}
	return summary, nil
}

func (e *CatalogEngine) createSongs(ctx context.Context, progress chan<- ProgressUpdate, jobs []importJob, out []ImportResult, opts ImportOpts) {
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	queue := make(chan importJob)
	type done struct {
		index int
		res   ImportResult
	}
	results := make(chan done, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				res := ImportResult{Line: job.row.Line, Request: job.row.Request}
				song, err := e.songs.Create(ctx, job.row.Request)
				if err != nil {
					res.Err = fmt.Errorf("line %d: %w", job.row.Line, err)
				} else {
					res.Song = song
				}
				results <- done{index: job.index, res: res}
			}
		}()
	}

	finished := make(map[int]bool, len(jobs))
	go func() {
		defer close(queue)
		for _, job := range jobs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for d := range results {
		completed++
		finished[d.index] = true
		out[d.index] = d.res
		sendProgress(progress, songCreatedUpdate(completed, len(jobs), d.res))
	}

	if err := ctx.Err(); err != nil {
		for _, job := range jobs {
			if !finished[job.index] {
				out[job.index].Err = err
			}
		}
	}
}
