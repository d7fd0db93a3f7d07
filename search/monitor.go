package search

import (
	"log/slog"
	"time"

	"github.com/poiesic/contractsearch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(contract string)
	AfterAnalysis(profile core.ContractProfile)
	AfterWebSearch(hits []core.SearchHit)
	AfterRanking(results []core.RankedResult)
	Finish(results []core.RankedResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterAnalysis(_ core.ContractProfile) {}
func (n *noopMonitor) AfterWebSearch(_ []core.SearchHit)    {}
func (n *noopMonitor) AfterRanking(_ []core.RankedResult)   {}
func (n *noopMonitor) Finish(_ []core.RankedResult)         {}

// LogMonitor reports stage transitions and their durations at info level.
type LogMonitor struct {
	logger *slog.Logger
	stage  time.Time
	start  time.Time
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a monitor writing to logger, or slog.Default() when nil.
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "search-monitor")}
}

func (m *LogMonitor) lap() time.Duration {
	now := time.Now()
	elapsed := now.Sub(m.stage)
	m.stage = now
	return elapsed
}

func (m *LogMonitor) Start(contract string) {
	m.start = time.Now()
	m.stage = m.start
	m.logger.Info("search started", "contractLength", len(contract))
}

func (m *LogMonitor) AfterAnalysis(profile core.ContractProfile) {
	m.logger.Info("contract analyzed",
		"contractType", profile.ContractType,
		"queries", len(profile.SearchQueries),
		"elapsed", m.lap())
}

func (m *LogMonitor) AfterWebSearch(hits []core.SearchHit) {
	m.logger.Info("web search finished", "hits", len(hits), "elapsed", m.lap())
}

func (m *LogMonitor) AfterRanking(results []core.RankedResult) {
	m.logger.Info("results ranked", "results", len(results), "elapsed", m.lap())
}

func (m *LogMonitor) Finish(results []core.RankedResult) {
	var top float64
	if len(results) > 0 {
		top = results[0].SimilarityScore
	}
	m.logger.Info("search finished", "results", len(results), "topScore", top, "total", time.Since(m.start))
}
