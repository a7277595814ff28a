package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient builds the Resty client used for calls to the local
// intake backend. One place to adjust timeout and headers for the whole
// app.
func NewAPIClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second). // submissions carry CSV bytes, give them room
		SetHeader("User-Agent", "Amazon-Intake-App/1.0")
}

// NewScraperClient builds the Resty client the scraper uses against
// marketplace pages. Longer timeout, browser-like UA so product pages
// render the same markup a shopper would get.
func NewScraperClient() *resty.Client {
	return resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36").
		SetHeader("Accept-Language", "en-US,en;q=0.9")
}
