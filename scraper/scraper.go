// Package scraper discovers Cyprus Avenue playlist articles on the station
// website and extracts their content for the archive datasets.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"spindex/config"
)

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
}

// DiscoveredArticle is one playlist article found on a tag page.
type DiscoveredArticle struct {
	Title string
	Date  string
	URL   string
}

var articleDatePattern = regexp.MustCompile(`/(\d{4}-\d{2}-\d{2})/`)

// DiscoverArticles fetches one tag page and returns every linked article
// whose URL carries a date, deduplicated by URL.
func DiscoverArticles(ctx context.Context, pageURL string) ([]DiscoveredArticle, error) {
	span := sentry.StartSpan(ctx, "scraper.discover_articles")
	span.Description = "Discover playlist articles via web scraping"
	span.SetTag("url", pageURL)
	defer span.Finish()

	doc, err := fetchDocument(ctx, pageURL)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	var discovered []DiscoveredArticle
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		match := articleDatePattern.FindStringSubmatch(href)
		if match == nil {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = config.Config.Scraper.BaseURL + href
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		title := strings.TrimSpace(s.Text())
		if title == "" {
			title = titleFromSlug(href)
		}
		discovered = append(discovered, DiscoveredArticle{
			Title: title,
			Date:  match[1],
			URL:   href,
		})
	})

	log.Debugf("Discovered %d articles on %s", len(discovered), pageURL)
	span.Status = sentry.SpanStatusOK
	span.SetData("articles_count", len(discovered))
	return discovered, nil
}

// FetchArticle fetches one playlist article page and extracts its title,
// description and raw body lines for track parsing.
func FetchArticle(ctx context.Context, article DiscoveredArticle) (*RawArticle, error) {
	span := sentry.StartSpan(ctx, "scraper.fetch_article")
	span.Description = "Fetch playlist article via web scraping"
	span.SetTag("date", article.Date)
	defer span.Finish()

	doc, err := fetchDocument(ctx, article.URL)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = article.Title
	}

	var lines []string
	doc.Find("article p, .RichTextBody p, .post-body p").Each(func(_ int, s *goquery.Selection) {
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})

	span.Status = sentry.SpanStatusOK
	return &RawArticle{
		Title: title,
		Date:  article.Date,
		URL:   article.URL,
		Lines: lines,
	}, nil
}

func fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.Config.Scraper.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	log.Tracef("Fetching page: %s", url)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// titleFromSlug turns ".../2019-06-18/soul-revue-classics" into
// "Soul Revue Classics".
func titleFromSlug(url string) string {
	slug := url
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		slug = slug[i+1:]
	}
	words := strings.Split(slug, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
