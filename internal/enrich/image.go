// Package enrich fills in listing fields the operator left blank, currently
// just a product-image lookup on the submitted affiliate URL.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nijamuddin66526-boop/offerzon/internal/util"
)

const userAgent = "Mozilla/5.0 (compatible; OfferZonBot/1.0)"

type ImageLookup struct {
	httpClient *http.Client
	maxRetries int
}

func New() *ImageLookup {
	return &ImageLookup{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
	}
}

// FindImage fetches the product page and extracts its og:image (falling back
// to twitter:image). A page without either returns ("", nil): best effort,
// the caller keeps going with an empty image field.
func (l *ImageLookup) FindImage(ctx context.Context, pageURL string) (string, error) {
	var imageURL string

	err := util.RetryWithBackoff(ctx, l.maxRetries, 500*time.Millisecond, func(attempt int) error {
		found, err := l.fetchImage(ctx, pageURL)
		if err != nil {
			return err
		}
		imageURL = found
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("image lookup for %s: %w", pageURL, err)
	}
	return imageURL, nil
}

func (l *ImageLookup) fetchImage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	for _, selector := range []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
	} {
		content, exists := doc.Find(selector).First().Attr("content")
		content = strings.TrimSpace(content)
		if exists && isAbsoluteURL(content) {
			return content, nil
		}
	}
	return "", nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
