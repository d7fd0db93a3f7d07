package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="results">
  <div class="result results_links result--ad">
    <h2 class="result__title"><a class="result__a" href="https://ads.example/buy">Buy contracts now</a></h2>
    <a class="result__snippet">Sponsored</a>
  </div>
  <div class="result results_links web-result">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.sec.gov%2FArchives%2Fnda.htm&amp;rut=abc">Mutual
        Non-Disclosure Agreement</a>
    </h2>
    <a class="result__snippet" href="#">Exhibit 10.1  <b>NDA</b> between the parties</a>
  </div>
  <div class="result results_links web-result">
    <h2 class="result__title"><a class="result__a" href="https://www.lawinsider.com/clause/nda">NDA clause</a></h2>
    <a class="result__snippet">Sample clauses</a>
  </div>
  <div class="result results_links web-result">
    <h2 class="result__title"><a class="result__a" href="https://third.example/doc">Third</a></h2>
    <a class="result__snippet">Third snippet</a>
  </div>
</div>
</body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	var gotQuery, gotRegion, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotRegion = r.URL.Query().Get("kl")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	ddg := NewDuckDuckGo(WithEndpoint(server.URL+"/html/"), WithUserAgent("contractsearch-test"))
	hits, err := ddg.Search(context.Background(), "nda legal document contract", 5, "us-en")
	require.NoError(t, err)

	assert.Equal(t, "nda legal document contract", gotQuery)
	assert.Equal(t, "us-en", gotRegion)
	assert.Equal(t, "contractsearch-test", gotAgent)

	require.Len(t, hits, 3)
	assert.Equal(t, RawHit{
		Title: "Mutual Non-Disclosure Agreement",
		URL:   "https://www.sec.gov/Archives/nda.htm",
		Body:  "Exhibit 10.1 NDA between the parties",
	}, hits[0])
	assert.Equal(t, "https://www.lawinsider.com/clause/nda", hits[1].URL)
	assert.Equal(t, "Third", hits[2].Title)
}

func TestDuckDuckGo_MaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	hits, err := NewDuckDuckGo(WithEndpoint(server.URL)).Search(context.Background(), "q", 2, "us-en")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestDuckDuckGo_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="no-results">No results.</div></body></html>`))
	}))
	defer server.Close()

	hits, err := NewDuckDuckGo(WithEndpoint(server.URL)).Search(context.Background(), "q", 5, "us-en")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDuckDuckGo_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewDuckDuckGo(WithEndpoint(server.URL)).Search(context.Background(), "q", 5, "us-en")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestDuckDuckGo_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDuckDuckGo(WithEndpoint(server.URL)).Search(ctx, "q", 5, "us-en")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"protocol relative redirect", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fa.example%2Fx&rut=1", "https://a.example/x"},
		{"relative redirect", "/l/?uddg=https%3A%2F%2Fb.example", "https://b.example"},
		{"direct link", "https://c.example/page", "https://c.example/page"},
		{"protocol relative direct", "//d.example/page", "https://d.example/page"},
		{"redirect without target", "//duckduckgo.com/l/?rut=1", "https://duckduckgo.com/l/?rut=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapRedirect(tt.href))
		})
	}
}
