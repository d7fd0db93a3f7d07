package ingestion

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/contractsearch/core"
)

// Finder finds documents similar to a contract. *search.Searcher
// implements it.
type Finder interface {
	FindSimilar(ctx context.Context, contractText string) ([]core.RankedResult, error)
}

// Document is one contract submitted to a batch run.
type Document struct {
	Name string
	Text string
}

// Outcome is the result of searching for one Document.
type Outcome struct {
	Name    string
	Results []core.RankedResult
	Err     error
	Elapsed time.Duration
}

// Pipeline runs similarity searches for many contracts on a worker pool.
type Pipeline struct {
	finder         Finder
	pool           *ants.Pool
	progressOut    io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets how many contracts are searched at once.
// Default is 1. Sizes above 1 should be paired with shared pacers so the
// combined request rate stays polite.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "pipeline")
		return nil
	}
}

// WithProgress writes a status line to w every interval finished contracts.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progressOut = w
		p.reportInterval = interval
		return nil
	}
}

// NewPipeline creates a new batch pipeline.
func NewPipeline(finder Finder, opts ...Option) (*Pipeline, error) {
	if finder == nil {
		return nil, ErrFinderRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		finder: finder,
		pool:   pool,
		logger: slog.Default().With("component", "pipeline"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run searches for every document and returns one Outcome per document in
// input order. A failing document never stops the others. The returned
// error is ctx.Err() when the run was cancelled; documents not started by
// then carry that error in their Outcome.
func (p *Pipeline) Run(ctx context.Context, docs []Document) ([]Outcome, error) {
	if p.pool.IsClosed() {
		return nil, ErrPipelineReleased
	}

	var tracker *ProgressTracker
	if p.progressOut != nil {
		tracker = NewProgressTracker(p.progressOut, len(docs), p.reportInterval)
	}
	tracker.Start()

	outcomes := make([]Outcome, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		outcomes[i].Name = doc.Name

		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			tracker.Record(err)
			continue
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.process(ctx, doc)
			tracker.Record(outcomes[i].Err)
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Error("failed to schedule contract", "name", doc.Name, "err", submitErr)
			outcomes[i].Err = submitErr
			tracker.Record(submitErr)
		}
	}
	wg.Wait()
	tracker.Finish()

	return outcomes, ctx.Err()
}

func (p *Pipeline) process(ctx context.Context, doc Document) Outcome {
	start := time.Now()
	results, err := p.finder.FindSimilar(ctx, doc.Text)
	elapsed := time.Since(start)

	if err != nil {
		p.logger.Warn("contract search failed", "name", doc.Name, "err", err)
	} else {
		p.logger.Debug("contract searched", "name", doc.Name, "results", len(results), "elapsed", elapsed)
	}

	return Outcome{
		Name:    doc.Name,
		Results: results,
		Err:     err,
		Elapsed: elapsed,
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
