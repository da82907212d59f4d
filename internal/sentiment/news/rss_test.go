package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>"AAPL stock" - Google News</title>
  <item>
    <title>Apple shares rally after iPhone launch - Reuters</title>
    <description>&lt;a href="https://example.com"&gt;Apple&lt;/a&gt; AAPL climbs</description>
    <pubDate>Fri, 10 Jan 2025 08:30:00 GMT</pubDate>
  </item>
  <item>
    <title>   </title>
  </item>
  <item>
    <title>Second headline</title>
  </item>
  <item>
    <title>Third headline</title>
  </item>
</channel>
</rss>`

func TestRSSFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	src := NewRSSSource(RSSConfig{URLTemplate: srv.URL + "/rss/search?q=%s", Timeout: time.Second}, logger.NewNop())
	res := src.Fetch(context.Background(), Query{Ticker: "AAPL", Limit: 2})

	require.False(t, res.Failed())
	assert.Equal(t, "AAPL stock", gotQuery)
	require.Len(t, res.Items, 2)

	first := res.Items[0]
	assert.Equal(t, "Apple shares rally after iPhone launch - Reuters", first.Headline)
	assert.Equal(t, common.SourceLabelGoogleNewsRSS, first.SourceLabel)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, 2025, first.PublishedAt.Year())
	assert.Contains(t, first.Text, "AAPL climbs")
	assert.Equal(t, "Second headline", res.Items[1].Headline)
}

func TestRSSFetchStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewRSSSource(RSSConfig{URLTemplate: srv.URL + "/rss?q=%s"}, logger.NewNop())
	res := src.Fetch(context.Background(), Query{Ticker: "AAPL"})
	assert.Equal(t, FailureStatus, res.Failure)
	assert.Empty(t, res.Items)
}

func TestRSSFetchDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	src := NewRSSSource(RSSConfig{URLTemplate: srv.URL + "/rss?q=%s"}, logger.NewNop())
	res := src.Fetch(context.Background(), Query{})
	assert.Equal(t, FailureDecode, res.Failure)
}
