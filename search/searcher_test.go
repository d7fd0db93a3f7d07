package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/contractsearch/ai/mock"
	"github.com/poiesic/contractsearch/analysis"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/pacing"
	"github.com/poiesic/contractsearch/ranking"
	"github.com/poiesic/contractsearch/storage"
	"github.com/poiesic/contractsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ndaContract = "This Non-Disclosure Agreement protects confidential information exchanged between the parties."

// fakeWeb returns fixed hits and records the queries it was given.
type fakeWeb struct {
	hits    []core.SearchHit
	queries [][]string
}

func (f *fakeWeb) Search(ctx context.Context, queries []string) []core.SearchHit {
	f.queries = append(f.queries, queries)
	return f.hits
}

func sampleHits() []core.SearchHit {
	return []core.SearchHit{
		{
			Title:     "Generic template",
			URL:       "https://templates.example/nda",
			Snippet:   "free download",
			Source:    core.SourceLegalResource,
			QueryUsed: "NDA contract example",
		},
		{
			Title:     "Non-Disclosure Agreement",
			URL:       "https://www.sec.gov/Archives/nda.htm",
			Snippet:   "confidential information exchanged between the parties",
			Source:    core.SourceSECEdgar,
			QueryUsed: "NDA contract SEC filing",
		},
	}
}

// recordingMonitor captures the stage sequence.
type recordingMonitor struct {
	stages  []string
	profile core.ContractProfile
	hits    []core.SearchHit
	results []core.RankedResult
}

func (m *recordingMonitor) Start(string) { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterAnalysis(p core.ContractProfile) {
	m.stages = append(m.stages, "analysis")
	m.profile = p
}
func (m *recordingMonitor) AfterWebSearch(h []core.SearchHit) {
	m.stages = append(m.stages, "websearch")
	m.hits = h
}
func (m *recordingMonitor) AfterRanking([]core.RankedResult) {
	m.stages = append(m.stages, "ranking")
}
func (m *recordingMonitor) Finish(r []core.RankedResult) {
	m.stages = append(m.stages, "finish")
	m.results = r
}

// failingRuns fails every write.
type failingRuns struct {
	storage.RunRepository
}

func (failingRuns) AddRun(context.Context, *core.SearchRun) (*core.SearchRun, error) {
	return nil, errors.New("disk full")
}

func newHeuristicSearcher(t *testing.T, web WebSearcher, opts ...Option) *Searcher {
	t.Helper()
	s, err := NewSearcher(analysis.New(nil), web, ranking.New(nil), opts...)
	require.NoError(t, err)
	return s
}

func TestNewSearcher(t *testing.T) {
	analyzer := analysis.New(nil)
	ranker := ranking.New(nil)
	web := &fakeWeb{}

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(analyzer, web, ranker)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(analyzer, web, ranker, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil analyzer", func(t *testing.T) {
		_, err := NewSearcher(nil, web, ranker)
		assert.Equal(t, ErrAnalyzerRequired, err)
	})

	t.Run("nil web searcher", func(t *testing.T) {
		_, err := NewSearcher(analyzer, nil, ranker)
		assert.Equal(t, ErrWebSearcherRequired, err)
	})

	t.Run("nil ranker", func(t *testing.T) {
		_, err := NewSearcher(analyzer, web, nil)
		assert.Equal(t, ErrRankerRequired, err)
	})
}

func TestFindSimilar_NoInput(t *testing.T) {
	web := &fakeWeb{hits: sampleHits()}
	searcher := newHeuristicSearcher(t, web)

	for _, text := range []string{"", "   ", "\n\t"} {
		results, err := searcher.FindSimilar(context.Background(), text)
		assert.ErrorIs(t, err, core.ErrNoInput)
		assert.Nil(t, results)
	}
	assert.Empty(t, web.queries, "no stage runs without input")
}

func TestFindSimilar_HeuristicPipeline(t *testing.T) {
	web := &fakeWeb{hits: sampleHits()}
	searcher := newHeuristicSearcher(t, web)

	results, err := searcher.FindSimilar(context.Background(), ndaContract)
	require.NoError(t, err)

	require.Len(t, web.queries, 1)
	assert.Equal(t, analysis.QueriesFor("NDA"), web.queries[0])

	require.Len(t, results, 2)
	assert.Equal(t, "https://www.sec.gov/Archives/nda.htm", results[0].URL)
	assert.Greater(t, results[0].SimilarityScore, results[1].SimilarityScore)
	for _, r := range results {
		assert.NoError(t, core.ValidateRankedResult(&r))
	}
}

func TestFindSimilar_NoHits(t *testing.T) {
	searcher := newHeuristicSearcher(t, &fakeWeb{})

	results, err := searcher.FindSimilar(context.Background(), ndaContract)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_ModelFailuresDegrade(t *testing.T) {
	gen := mock.NewFailingGenerator(errors.New("quota exceeded"))
	web := &fakeWeb{hits: sampleHits()}
	searcher, err := NewSearcher(
		analysis.New(gen),
		web,
		ranking.New(gen, ranking.WithPacer(pacing.Noop)),
	)
	require.NoError(t, err)

	results, err := searcher.FindSimilar(context.Background(), ndaContract)
	require.NoError(t, err)

	// analysis fell back to the heuristic
	assert.Equal(t, analysis.QueriesFor("NDA"), web.queries[0])
	// ranking fell back to default scores
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, ranking.DefaultScore, r.SimilarityScore)
		assert.Equal(t, ranking.ExplanationUnavailable, r.Explanation)
	}
	assert.Equal(t, 2, gen.CallCount())
}

func TestFindSimilarWithMonitor(t *testing.T) {
	web := &fakeWeb{hits: sampleHits()}
	searcher := newHeuristicSearcher(t, web)
	monitor := &recordingMonitor{}

	results, err := searcher.FindSimilarWithMonitor(context.Background(), ndaContract, monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "analysis", "websearch", "ranking", "finish"}, monitor.stages)
	assert.Equal(t, "NDA", monitor.profile.ContractType)
	assert.Equal(t, sampleHits(), monitor.hits)
	assert.Equal(t, results, monitor.results)
}

func TestFindSimilar_CancelledContext(t *testing.T) {
	searcher := newHeuristicSearcher(t, &fakeWeb{hits: sampleHits()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := searcher.FindSimilar(ctx, ndaContract)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindSimilar_RecordsRuns(t *testing.T) {
	runs, _, backend, err := badger.NewMemoryStores(0)
	require.NoError(t, err)
	defer func() {
		runs.Close()
		backend.Close()
	}()

	searcher := newHeuristicSearcher(t, &fakeWeb{hits: sampleHits()}, WithRunRepository(runs))
	ctx := context.Background()

	results, err := searcher.FindSimilar(ctx, ndaContract)
	require.NoError(t, err)

	recorded, err := runs.GetRunsByFingerprint(ctx, core.IDFromContent(ndaContract))
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "NDA", recorded[0].Profile.ContractType)
	assert.Equal(t, results, recorded[0].Results)
}

func TestFindSimilar_RecordingFailureIsNotSurfaced(t *testing.T) {
	searcher := newHeuristicSearcher(t, &fakeWeb{hits: sampleHits()},
		WithRunRepository(failingRuns{}), WithLogger(slog.Default()))

	results, err := searcher.FindSimilar(context.Background(), ndaContract)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestAnalyze(t *testing.T) {
	searcher := newHeuristicSearcher(t, &fakeWeb{})

	profile, err := searcher.Analyze(context.Background(), ndaContract)
	require.NoError(t, err)
	assert.Equal(t, "NDA", profile.ContractType)
	assert.NotEmpty(t, profile.SearchQueries)

	_, err = searcher.Analyze(context.Background(), " ")
	assert.ErrorIs(t, err, core.ErrNoInput)
}
