package optimize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	fetchTimeout  = 5 * time.Second
	snippetMaxLen = 1000
)

// SnippetFetcher pulls a short plain-text excerpt of a product's detail
// page. It never fails: any error yields an empty snippet and the prompt is
// built without page context. No retries.
type SnippetFetcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewSnippetFetcher(logger *zap.Logger) *SnippetFetcher {
	return &SnippetFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

func (f *SnippetFetcher) Fetch(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}

	text, err := f.fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetching page failed", zap.String("url", url), zap.Error(err))
		return ""
	}

	f.logger.Debug("fetched page content", zap.String("url", url))
	return text
}

func (f *SnippetFetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("User-Agent", "Mozilla/5.0 (compatible; GoHttpClient/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status code error: [%d] %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	// Whitespace-joined visible text, capped at the first 1000 characters.
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if runes := []rune(text); len(runes) > snippetMaxLen {
		text = string(runes[:snippetMaxLen])
	}
	return text, nil
}
