// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package contractsearch

import (
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/ai/openai"
	"github.com/poiesic/contractsearch/analysis"
	"github.com/poiesic/contractsearch/ingestion"
	"github.com/poiesic/contractsearch/pacing"
	"github.com/poiesic/contractsearch/ranking"
	"github.com/poiesic/contractsearch/search"
	"github.com/poiesic/contractsearch/storage"
	"github.com/poiesic/contractsearch/storage/badger"
	"github.com/poiesic/contractsearch/websearch"
)

// DefaultCacheTTL is how long web search hits stay cached when a database
// is configured.
const DefaultCacheTTL = 24 * time.Hour

// ErrDatabaseRequired is returned by Engine.Runs when no database was configured.
var ErrDatabaseRequired = errors.New("database required")

// Engine wires the analysis, web search and ranking stages together and
// owns the resources they share.
type Engine struct {
	backend  *badger.Backend
	runs     storage.RunRepository
	cache    storage.HitCache
	provider ai.AIProvider
	searcher *search.Searcher
	poolSize int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	aiConfig    *ai.Config
	dbPath      string
	inMemory    bool
	cacheTTL    time.Duration
	pacing      pacing.Policy
	pacingSet   bool
	backend     websearch.Backend
	region      string
	logger      *slog.Logger
	concurrency int
}

// WithAIConfig enables the model-backed analyzer and ranker. Without it,
// or with a nil config, the engine runs on heuristics alone.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithDatabase stores run history and cached search hits in a badger
// database at path.
func WithDatabase(path string) Option {
	return func(o *options) {
		o.dbPath = path
		o.inMemory = false
	}
}

// WithInMemoryDatabase keeps run history and cached hits in memory for the
// lifetime of the engine.
func WithInMemoryDatabase() Option {
	return func(o *options) {
		o.dbPath = ""
		o.inMemory = true
	}
}

// WithCacheTTL sets how long search hits are cached. Zero disables the
// cache. Default is DefaultCacheTTL. Ignored without a database.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = ttl
	}
}

// WithPacing overrides the pauses taken between external calls.
// Nil pacers fall back to pacing.Default().
func WithPacing(policy pacing.Policy) Option {
	return func(o *options) {
		o.pacing = policy
		o.pacingSet = true
	}
}

// WithBackend sets the web search backend. Default is DuckDuckGo.
func WithBackend(backend websearch.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithRegion sets the web search region code.
// Default is websearch.DefaultRegion.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConcurrency sets the default pool size of pipelines created by
// NewPipeline. Above 1 the default pacing becomes pacing.Shared() so the
// overall request rate is unchanged.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// New builds an Engine. Resources acquired before a failure are released.
func New(opts ...Option) (*Engine, error) {
	o := &options{
		cacheTTL:    DefaultCacheTTL,
		region:      websearch.DefaultRegion,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	policy := o.pacing
	if !o.pacingSet && o.concurrency > 1 {
		policy = pacing.Shared()
	}
	policy = policy.OrDefault()

	e := &Engine{
		poolSize: o.concurrency,
		logger:   o.logger,
	}

	var generator ai.Generator
	if o.aiConfig != nil {
		provider, err := openai.NewProvider(o.aiConfig)
		if err != nil {
			return nil, err
		}
		e.provider = provider
		generator = provider.Generator()
		e.logger.Debug("model configured", "host", o.aiConfig.Host, "model", o.aiConfig.Model)
	} else {
		e.logger.Debug("no model configured, using heuristics")
	}

	backend := o.backend
	if backend == nil {
		backend = websearch.NewDuckDuckGo()
	}

	if o.dbPath != "" || o.inMemory {
		if err := e.openStores(o); err != nil {
			e.Close()
			return nil, err
		}
		if e.cache != nil {
			cached, err := websearch.NewCachedBackend(backend, e.cache, e.logger)
			if err != nil {
				e.Close()
				return nil, err
			}
			backend = cached
		}
	}

	web, err := websearch.NewClient(backend,
		websearch.WithPacer(policy.Search),
		websearch.WithRegion(o.region),
		websearch.WithLogger(e.logger),
	)
	if err != nil {
		e.Close()
		return nil, err
	}

	analyzer := analysis.New(generator, analysis.WithLogger(e.logger))
	ranker := ranking.New(generator,
		ranking.WithLogger(e.logger),
		ranking.WithPacer(policy.Rank),
	)

	searchOpts := []search.Option{search.WithLogger(e.logger)}
	if e.runs != nil {
		searchOpts = append(searchOpts, search.WithRunRepository(e.runs))
	}
	e.searcher, err = search.NewSearcher(analyzer, web, ranker, searchOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

func (e *Engine) openStores(o *options) error {
	backend, err := badger.OpenBackend(o.dbPath, o.inMemory)
	if err != nil {
		return err
	}
	e.backend = backend

	runs, err := badger.NewRunRepository(backend)
	if err != nil {
		return err
	}
	e.runs = runs

	if o.cacheTTL > 0 {
		e.cache = badger.NewHitCache(backend, o.cacheTTL)
	}
	return nil
}

// Searcher returns the configured similarity searcher.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Runs returns the run history.
// Returns ErrDatabaseRequired when the engine has no database.
func (e *Engine) Runs() (storage.RunRepository, error) {
	if e.runs == nil {
		return nil, ErrDatabaseRequired
	}
	return e.runs, nil
}

// NewPipeline creates a batch pipeline over the engine's searcher. The
// pool size defaults to the engine's concurrency.
func (e *Engine) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	defaults := []ingestion.Option{
		ingestion.WithPoolSize(e.poolSize),
		ingestion.WithLogger(e.logger),
	}
	return ingestion.NewPipeline(e.searcher, append(defaults, opts...)...)
}

// Close releases the model provider and the database. The first error
// encountered is returned after every resource has been released. Calling
// Close more than once is safe.
func (e *Engine) Close() error {
	var errs []error

	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
		e.provider = nil
	}

	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			e.logger.Error("error closing hit cache", "err", err)
			errs = append(errs, err)
		}
		e.cache = nil
	}

	if e.runs != nil {
		if err := e.runs.Close(); err != nil {
			e.logger.Error("error closing run repository", "err", err)
			errs = append(errs, err)
		}
		e.runs = nil
	}

	if e.backend != nil && !e.backend.IsClosed() {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing backend storage", "err", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
