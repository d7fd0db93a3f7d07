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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/contractsearch"
	"github.com/poiesic/contractsearch/ai"
	"github.com/poiesic/contractsearch/core"
	"github.com/poiesic/contractsearch/ingestion"
	"github.com/poiesic/contractsearch/pacing"
	"github.com/poiesic/contractsearch/search"
	"github.com/poiesic/contractsearch/websearch"
	"github.com/urfave/cli/v2"
)

const noContractMessage = "No contract text provided"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "contractsearch",
		Usage: "Find publicly available documents similar to a legal contract",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for the model host; without it (or --host) only heuristics are used",
				EnvVars: []string{"GEMINI_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "OpenAI-compatible model host URL",
				Value: ai.GeminiHost,
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model name used for analysis and ranking",
				Value: "gemini-2.5-flash",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB directory for run history and the search cache",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "How long web search results stay cached (0 disables the cache)",
				Value: contractsearch.DefaultCacheTTL,
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "Web search region code",
				Value: websearch.DefaultRegion,
			},
			&cli.DurationFlag{
				Name:  "search-pause",
				Usage: "Pause after every web search query",
				Value: pacing.DefaultSearchPause,
			},
			&cli.DurationFlag{
				Name:  "rank-pause",
				Usage: "Pause after every batch ranked by the model",
				Value: pacing.DefaultRankPause,
			},
			&cli.StringFlag{
				Name:   "search-endpoint",
				Usage:  "DuckDuckGo HTML endpoint",
				Value:  websearch.DuckDuckGoEndpoint,
				Hidden: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "find",
				Usage:  "Print documents similar to a contract as JSON",
				Action: findCommand,
				Flags: []cli.Flag{
					inputFlag(),
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Log each stage of the search",
					},
				},
			},
			{
				Name:   "analyze",
				Usage:  "Print the contract profile and search queries as JSON",
				Action: analyzeCommand,
				Flags:  []cli.Flag{inputFlag()},
			},
			{
				Name:      "batch",
				Usage:     "Find similar documents for several contract files",
				ArgsUsage: "FILE...",
				Action:    batchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of contracts searched at once",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N contracts",
						Value: 1,
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recorded searches (requires --db)",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to list",
						Value: 10,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Only list runs of the contract in `FILE`",
					},
				},
			},
		},
	}
}

func inputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read the contract from `FILE` instead of stdin",
	}
}

// errorResponse is printed instead of results when a command fails.
type errorResponse struct {
	Error string `json:"error"`
}

type batchEntry struct {
	Name    string              `json:"name"`
	Results []core.RankedResult `json:"results"`
	Error   string              `json:"error,omitempty"`
}

type historyEntry struct {
	ID           core.ID   `json:"id"`
	Fingerprint  string    `json:"fingerprint"`
	ContractType string    `json:"contract_type"`
	Results      int       `json:"results"`
	TopScore     float64   `json:"top_score"`
	TopURL       string    `json:"top_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func findCommand(c *cli.Context) error {
	text, err := readContract(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = search.NewLogMonitor(nil)
	}

	results, err := engine.Searcher().FindSimilarWithMonitor(c.Context, text, monitor)
	if err != nil {
		return writeError(c.App.Writer, err)
	}
	return writeJSON(c.App.Writer, results)
}

func analyzeCommand(c *cli.Context) error {
	text, err := readContract(c)
	if err != nil {
		return err
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	profile, err := engine.Searcher().Analyze(c.Context, text)
	if err != nil {
		return writeError(c.App.Writer, err)
	}
	return writeJSON(c.App.Writer, profile)
}

func batchCommand(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("at least one contract file is required")
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	docs, err := ingestion.ReadDocuments(paths...)
	if err != nil {
		return err
	}

	engine, err := newEngine(c, contractsearch.WithConcurrency(c.Int("concurrency")))
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewPipeline(ingestion.WithProgress(c.App.ErrWriter, c.Int("report-interval")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	outcomes, runErr := pipeline.Run(c.Context, docs)

	entries := make([]batchEntry, len(outcomes))
	for i, o := range outcomes {
		entries[i] = batchEntry{Name: o.Name, Results: o.Results}
		if o.Err != nil {
			entries[i].Error = errorMessage(o.Err)
		}
		if entries[i].Results == nil {
			entries[i].Results = []core.RankedResult{}
		}
	}
	if err := writeJSON(c.App.Writer, entries); err != nil {
		return err
	}
	return runErr
}

func historyCommand(c *cli.Context) error {
	if c.Int("limit") <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	runs, err := engine.Runs()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	var found []*core.SearchRun
	if path := c.String("file"); path != "" {
		docs, err := ingestion.ReadDocuments(path)
		if err != nil {
			return err
		}
		found, err = runs.GetRunsByFingerprint(c.Context, core.IDFromContent(docs[0].Text))
		if err != nil {
			return err
		}
		if len(found) > c.Int("limit") {
			found = found[len(found)-c.Int("limit"):]
		}
		// Newest first, like the unfiltered listing
		slices.Reverse(found)
	} else {
		found, err = runs.GetRecentRuns(c.Context, c.Int("limit"))
		if err != nil {
			return err
		}
	}

	entries := make([]historyEntry, 0, len(found))
	for _, run := range found {
		entry := historyEntry{
			ID:           run.Id,
			Fingerprint:  fmt.Sprintf("%016x", uint64(run.Fingerprint)),
			ContractType: run.Profile.ContractType,
			Results:      len(run.Results),
			CreatedAt:    run.CreatedAt,
		}
		if len(run.Results) > 0 {
			entry.TopScore = run.Results[0].SimilarityScore
			entry.TopURL = run.Results[0].URL
		}
		entries = append(entries, entry)
	}
	return writeJSON(c.App.Writer, entries)
}

// readContract reads the contract from --file, or from stdin when unset.
func readContract(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		docs, err := ingestion.ReadDocuments(path)
		if err != nil {
			return "", err
		}
		return docs[0].Text, nil
	}
	doc, err := ingestion.ReadDocument("stdin", c.App.Reader)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// newEngine builds an Engine from the global flags.
func newEngine(c *cli.Context, extra ...contractsearch.Option) (*contractsearch.Engine, error) {
	opts := []contractsearch.Option{
		contractsearch.WithLogger(slog.Default()),
		contractsearch.WithRegion(c.String("region")),
		contractsearch.WithPacing(pacingPolicy(c)),
		contractsearch.WithBackend(websearch.NewDuckDuckGo(
			websearch.WithEndpoint(c.String("search-endpoint")),
		)),
	}

	if cfg := aiConfig(c); cfg != nil {
		opts = append(opts, contractsearch.WithAIConfig(cfg))
	}

	if dbPath := c.String("db"); dbPath != "" {
		opts = append(opts,
			contractsearch.WithDatabase(dbPath),
			contractsearch.WithCacheTTL(c.Duration("cache-ttl")),
		)
	}

	return contractsearch.New(append(opts, extra...)...)
}

// aiConfig returns nil when neither an API key nor a host was given, which
// selects the heuristic path.
func aiConfig(c *cli.Context) *ai.Config {
	key := c.String("api-key")
	if key == "" && !c.IsSet("host") {
		return nil
	}
	return ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(key),
	)
}

// pacingPolicy uses shared rate limiters when contracts are searched
// concurrently so the combined request rate stays the same.
func pacingPolicy(c *cli.Context) pacing.Policy {
	searchPause, rankPause := c.Duration("search-pause"), c.Duration("rank-pause")
	if c.Int("concurrency") > 1 {
		return pacing.Policy{Search: pacing.Limited(searchPause), Rank: pacing.Limited(rankPause)}
	}
	return pacing.Policy{Search: pacing.Every(searchPause), Rank: pacing.Every(rankPause)}
}

func errorMessage(err error) string {
	if errors.Is(err, core.ErrNoInput) {
		return noContractMessage
	}
	return err.Error()
}

// writeError prints err as a JSON error object and returns it so the
// process exits non-zero.
func writeError(w io.Writer, err error) error {
	if writeErr := writeJSON(w, errorResponse{Error: errorMessage(err)}); writeErr != nil {
		return writeErr
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Logs go to stderr so stdout carries only JSON
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
