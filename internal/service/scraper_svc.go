package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"amazon_intake_v1_202608/internal/api/dto"
	"amazon_intake_v1_202608/pkg/utils"
)

// ==================== ScraperService ====================

// ProductResult is what the scraper extracted for one product URL.
type ProductResult struct {
	Brand        string `json:"brand"`
	Country      string `json:"country"`
	ProductName  string `json:"productname"`
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	Availability string `json:"availability,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ScraperService fetches marketplace product pages and pulls the basic
// listing facts out of the markup.
type ScraperService struct {
	client    *resty.Client
	sleepTime time.Duration
}

func NewScraperService() *ScraperService {
	return &ScraperService{
		client:    utils.NewScraperClient(),
		sleepTime: 500 * time.Millisecond,
	}
}

// Run walks the payload in nesting order, scraping every product page.
// Per-product failures are recorded in the result row; only a cancelled
// context aborts the job.
func (s *ScraperService) Run(ctx context.Context, payload dto.SubmissionRequest) ([]ProductResult, error) {
	var results []ProductResult
	for _, brand := range payload.Brands {
		for _, country := range brand.Countries {
			for _, p := range country.Products {
				if err := ctx.Err(); err != nil {
					return results, err
				}

				res := ProductResult{
					Brand:       brand.Brand,
					Country:     country.Name,
					ProductName: p.ProductName,
					URL:         p.URL,
				}
				info, err := s.ScrapePage(ctx, p.URL)
				if err != nil {
					log.Printf("[Scraper] %s/%s %q: %v", brand.Brand, country.Name, p.ProductName, err)
					res.Error = err.Error()
				} else {
					res.Title = info.Title
					res.Availability = info.Availability
				}
				results = append(results, res)

				// Pace requests so the marketplace does not throttle us.
				select {
				case <-ctx.Done():
					return results, ctx.Err()
				case <-time.After(s.sleepTime):
				}
			}
		}
	}
	return results, nil
}

// PageInfo is the per-page extraction result.
type PageInfo struct {
	Title        string
	Availability string
}

// ScrapePage fetches one product page and extracts title and
// availability. Amazon listing pages carry the title in #productTitle;
// anything else falls back to the document title.
func (s *ScraperService) ScrapePage(ctx context.Context, url string) (*PageInfo, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	info := &PageInfo{}
	if title := strings.TrimSpace(doc.Find("#productTitle").First().Text()); title != "" {
		info.Title = title
	} else {
		info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	info.Availability = strings.TrimSpace(doc.Find("#availability span").First().Text())
	return info, nil
}
