package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// DefaultRSSURLTemplate is the Google News search feed; %s receives the escaped query.
const DefaultRSSURLTemplate = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

const defaultRSSQuery = "stock market"

// RSSConfig configures the RSS search source.
type RSSConfig struct {
	URLTemplate string
	Timeout     time.Duration
}

type rssSource struct {
	cfg    RSSConfig
	log    *logger.Logger
	parser *gofeed.Parser
}

// NewRSSSource creates an RSS source that searches the feed for the ticker.
func NewRSSSource(cfg RSSConfig, log *logger.Logger) Source {
	if cfg.URLTemplate == "" {
		cfg.URLTemplate = DefaultRSSURLTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: cfg.Timeout}
	parser.UserAgent = DefaultFMPUserAgent

	return &rssSource{cfg: cfg, log: log, parser: parser}
}

func (s *rssSource) Name() string {
	return common.SourceLabelGoogleNewsRSS
}

func (s *rssSource) Fetch(ctx context.Context, q Query) FetchResult {
	query := defaultRSSQuery
	if q.Ticker != "" {
		query = q.Ticker + " stock"
	}
	feedURL := fmt.Sprintf(s.cfg.URLTemplate, url.QueryEscape(query))

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		kind := classifyFeedError(err)
		s.log.ErrorContext(ctx, "Failed to parse RSS feed",
			logger.ErrorField(err),
			logger.StringField("url", feedURL),
			logger.StringField("failure", kind.String()))
		return failed(kind, err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		if q.Limit > 0 && len(items) >= q.Limit {
			break
		}
		if fi == nil {
			continue
		}
		if item, ok := newItem(fi.Title, common.SourceLabelGoogleNewsRSS, fi.PublishedParsed, htmlToText(fi.Description)); ok {
			items = append(items, item)
		}
	}

	s.log.DebugContext(ctx, "Fetched RSS items",
		logger.StringField("url", feedURL),
		logger.IntField("raw_count", len(feed.Items)),
		logger.IntField("usable_count", len(items)))

	return FetchResult{Items: items}
}

func classifyFeedError(err error) FailureKind {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return FailureStatus
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return FailureTransport
	}
	if strings.Contains(err.Error(), "http error") {
		return FailureStatus
	}
	return FailureDecode
}
