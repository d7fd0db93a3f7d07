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

package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultSearchPause follows every web search query.
	DefaultSearchPause = 2 * time.Second

	// DefaultRankPause follows every model-ranked batch.
	DefaultRankPause = 1 * time.Second
)

// Pacer throttles calls to an external service. Pause is invoked after each
// call and blocks until the next call may proceed or ctx is done.
type Pacer interface {
	Pause(ctx context.Context) error
}

// Func adapts an ordinary function to a Pacer.
type Func func(ctx context.Context) error

// Pause calls f(ctx).
func (f Func) Pause(ctx context.Context) error {
	return f(ctx)
}

type noop struct{}

func (noop) Pause(ctx context.Context) error { return ctx.Err() }

// Noop never waits.
var Noop Pacer = noop{}

// fixed sleeps for a constant interval after every call.
type fixed struct {
	interval time.Duration
}

// Every returns a Pacer that sleeps for d after every call. A non-positive
// d yields Noop.
func Every(d time.Duration) Pacer {
	if d <= 0 {
		return Noop
	}
	return fixed{interval: d}
}

func (f fixed) Pause(ctx context.Context) error {
	timer := time.NewTimer(f.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// limited spaces calls from any number of goroutines at least interval apart.
type limited struct {
	limiter *rate.Limiter
}

// Limited returns a Pacer safe to share between concurrent pipelines. Calls
// across all sharers are admitted at most once per d.
func Limited(d time.Duration) Pacer {
	if d <= 0 {
		return Noop
	}
	limiter := rate.NewLimiter(rate.Every(d), 1)
	// Drain the initial token so the first Pause waits d as well.
	limiter.Allow()
	return limited{limiter: limiter}
}

func (l limited) Pause(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Policy holds the pacers for each class of external call.
type Policy struct {
	// Search runs after every web search query, successful or not.
	Search Pacer

	// Rank runs after every batch scored by the model. Heuristic ranking
	// never pauses.
	Rank Pacer
}

// Default returns the sequential policy: 2s after each search query and
// 1s after each ranking batch.
func Default() Policy {
	return Policy{
		Search: Every(DefaultSearchPause),
		Rank:   Every(DefaultRankPause),
	}
}

// Shared returns a policy whose pacers may be shared by concurrent
// pipelines while keeping the default call rates overall.
func Shared() Policy {
	return Policy{
		Search: Limited(DefaultSearchPause),
		Rank:   Limited(DefaultRankPause),
	}
}

// None returns a policy that never waits. Intended for tests.
func None() Policy {
	return Policy{Search: Noop, Rank: Noop}
}

// OrDefault fills nil pacers from Default.
func (p Policy) OrDefault() Policy {
	d := Default()
	if p.Search == nil {
		p.Search = d.Search
	}
	if p.Rank == nil {
		p.Rank = d.Rank
	}
	return p
}
