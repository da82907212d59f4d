package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	DefaultFMPBaseURL   = "https://financialmodelingprep.com/stable/fmp-articles"
	DefaultFMPUserAgent = "FinancialSentimentApp/1.0"
	DefaultFetchTimeout = 15 * time.Second

	maxErrorBodyPreview = 256
)

var errUnrecognizedShape = errors.New("response is neither an array nor an object with a content array")

// FMPConfig configures the Financial Modeling Prep articles source.
type FMPConfig struct {
	BaseURL             string
	APIKey              string
	UserAgent           string
	Timeout             time.Duration
	MaxRequestPerMinute int
}

type fmpSource struct {
	cfg            FMPConfig
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewFMPSource creates the FMP articles source. The client enforces cfg.Timeout on every
// request regardless of the caller's context.
func NewFMPSource(cfg FMPConfig, log *logger.Logger) Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultFMPBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultFMPUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}

	limit := rate.Inf
	if cfg.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.MaxRequestPerMinute))
	}

	return &fmpSource{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		requestLimiter: rate.NewLimiter(limit, 1),
	}
}

func (s *fmpSource) Name() string {
	return common.SourceLabelFMPArticles
}

// fmpArticle is the subset of the FMP article payload the adapter reads.
type fmpArticle struct {
	Title         string          `json:"title"`
	Headline      string          `json:"headline"`
	Date          string          `json:"date"`
	PublishedDate string          `json:"publishedDate"`
	Content       string          `json:"content"`
	Text          string          `json:"text"`
	Tickers       json.RawMessage `json:"tickers"`
}

func (s *fmpSource) Fetch(ctx context.Context, q Query) FetchResult {
	if s.cfg.APIKey == "" {
		s.log.ErrorContext(ctx, "FMP API key is not configured")
		return failed(FailureConfig, errors.New("fmp api key missing"))
	}

	if err := s.requestLimiter.Wait(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err))
		return failed(FailureTransport, err)
	}

	reqURL, err := s.buildURL(q)
	if err != nil {
		return failed(FailureConfig, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to create FMP request", logger.ErrorField(err))
		return failed(FailureConfig, err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.ErrorContext(ctx, "FMP request failed", logger.ErrorField(err))
		return failed(FailureTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to read FMP response", logger.ErrorField(err))
		return failed(FailureTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.ErrorContext(ctx, "Received non-2xx response from FMP",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", utils.TruncateRunes(string(body), maxErrorBodyPreview)))
		return failed(FailureStatus, fmt.Errorf("fmp returned status %d", resp.StatusCode))
	}

	raw, err := parseArticleList(body)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to decode FMP response",
			logger.ErrorField(err),
			logger.StringField("body", utils.TruncateRunes(string(body), maxErrorBodyPreview)))
		return failed(FailureDecode, err)
	}

	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		var article fmpArticle
		if err := json.Unmarshal(r, &article); err != nil {
			continue
		}
		if item, ok := article.toItem(); ok {
			items = append(items, item)
		}
	}

	s.log.DebugContext(ctx, "Fetched FMP articles",
		logger.IntField("raw_count", len(raw)),
		logger.IntField("usable_count", len(items)))

	return FetchResult{Items: items}
}

func (s *fmpSource) buildURL(q Query) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid fmp base url: %w", err)
	}
	params := u.Query()
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("apikey", s.cfg.APIKey)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// parseArticleList accepts a bare JSON array or an object holding the array under "content".
// Elements are returned undecoded so a malformed element can be dropped on its own.
func parseArticleList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errUnrecognizedShape
	}

	var list []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	content := bytes.TrimSpace(envelope.Content)
	if len(content) == 0 || content[0] != '[' {
		return nil, errUnrecognizedShape
	}
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a fmpArticle) toItem() (Item, bool) {
	headline := a.Headline
	if strings.TrimSpace(headline) == "" {
		headline = a.Title
	}

	published := utils.ParseDate(a.PublishedDate)
	if published == nil {
		published = utils.ParseDate(a.Date)
	}

	return newItem(headline, common.SourceLabelFMPArticles, published,
		a.Title, a.Text, htmlToText(a.Content), tickersText(a.Tickers))
}

// htmlToText strips markup from an HTML fragment.
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// tickersText flattens the "tickers" field, which is either a string or an array of strings.
func tickersText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, " ")
	}
	return ""
}
