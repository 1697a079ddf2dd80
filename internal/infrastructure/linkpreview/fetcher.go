package linkpreview

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Preview is the page metadata shown next to a profile's external link.
type Preview struct {
	Title       string
	Description string
}

type Fetcher interface {
	Fetch(ctx context.Context, link string) (Preview, error)
}

type CollyFetcher struct {
	logger *log.Logger
}

func NewCollyFetcher(logger *log.Logger) *CollyFetcher {
	return &CollyFetcher{logger: logger}
}

// Fetch loads the linked page and extracts its title and description.
// Callers treat failures as "no preview"; the profile update itself
// never depends on this succeeding.
func (f *CollyFetcher) Fetch(ctx context.Context, link string) (Preview, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return Preview{}, errors.New("empty link")
	}

	u, err := url.Parse(link)
	if err != nil {
		return Preview{}, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Preview{}, errors.New("unsupported link scheme")
	}
	if strings.TrimSpace(u.Host) == "" {
		return Preview{}, errors.New("link has no host")
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Host))
	c.SetRequestTimeout(8 * time.Second)

	var p Preview

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if p.Title == "" {
			p.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		if v := strings.TrimSpace(e.Attr("content")); v != "" {
			p.Title = v
		}
	})
	c.OnHTML(`meta[name="description"]`, func(e *colly.HTMLElement) {
		if p.Description == "" {
			p.Description = strings.TrimSpace(e.Attr("content"))
		}
	})
	c.OnHTML(`meta[property="og:description"]`, func(e *colly.HTMLElement) {
		if v := strings.TrimSpace(e.Attr("content")); v != "" {
			p.Description = v
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return Preview{}, ctx.Err()
	}
	if err := c.Visit(link); err != nil {
		return Preview{}, err
	}
	c.Wait()

	if reqErr != nil {
		return Preview{}, reqErr
	}
	if p.Title == "" && p.Description == "" {
		return Preview{}, errors.New("no preview metadata found")
	}

	if f != nil && f.logger != nil {
		f.logger.Printf("[LinkPreview] fetched | host=%s title=%q", u.Host, truncate(p.Title, 60))
	}
	return p, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
