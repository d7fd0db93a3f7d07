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

package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DuckDuckGoEndpoint serves the JavaScript-free results page.
	DuckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	defaultHTTPTimeout = 15 * time.Second
)

// DuckDuckGo is a Backend that scrapes DuckDuckGo's HTML results page.
type DuckDuckGo struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    *slog.Logger
}

var _ Backend = (*DuckDuckGo)(nil)

// DuckDuckGoOption configures a DuckDuckGo backend.
type DuckDuckGoOption func(*DuckDuckGo)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.client = client
		}
	}
}

// WithEndpoint overrides the results page URL. Used by tests.
func WithEndpoint(endpoint string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		d.userAgent = userAgent
	}
}

// NewDuckDuckGo creates a DuckDuckGo backend.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		client:    &http.Client{Timeout: defaultHTTPTimeout},
		endpoint:  DuckDuckGoEndpoint,
		userAgent: defaultUserAgent,
		logger:    slog.Default().With("component", "duckduckgo"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements Backend.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Search implements Backend.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int, region string) ([]RawHit, error) {
	params := url.Values{}
	params.Set("q", query)
	if region != "" {
		params.Set("kl", region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	hits := parseResults(doc, maxResults)
	d.logger.Debug("search completed", "query", query, "hits", len(hits))
	return hits, nil
}

// parseResults extracts organic results, skipping ads. A non-positive
// maxResults means no limit.
func parseResults(doc *goquery.Document, maxResults int) []RawHit {
	var hits []RawHit
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find(".result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}
		target := unwrapRedirect(href)
		if target == "" {
			return true
		}
		hits = append(hits, RawHit{
			Title: collapseSpace(link.Text()),
			URL:   target,
			Body:  collapseSpace(s.Find(".result__snippet").First().Text()),
		})
		return maxResults <= 0 || len(hits) < maxResults
	})
	return hits
}

// unwrapRedirect turns DuckDuckGo's /l/?uddg=<target> tracking links into
// the target URL. Other links are returned with a scheme added when they
// are protocol-relative.
func unwrapRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") || u.Host == "" {
		if u.Path == "/l/" {
			if target := u.Query().Get("uddg"); target != "" {
				return target
			}
		}
	}
	return href
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
