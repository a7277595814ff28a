package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pickerNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func makeRow(details, url, revenue, created, reviews string) Row {
	return Row{
		colProductDetails: details,
		colURL:            url,
		colParentRevenue:  revenue,
		colCreationDate:   created,
		colReviewCount:    reviews,
	}
}

func TestReadCSVRowsPadsShortRecords(t *testing.T) {
	input := "Product Details,URL,Revenue\n" +
		"Garlic Press,https://amazon.com/dp/B01\n"

	rows, err := ReadCSVRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Garlic Press", rows[0]["Product Details"])
	assert.Equal(t, "", rows[0]["Revenue"])
}

func TestReadCSVRowsEmpty(t *testing.T) {
	_, err := ReadCSVRows(strings.NewReader("Product Details,URL\n"))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestFindTopRecentProductPicksMaxRevenue(t *testing.T) {
	rows := []Row{
		makeRow("Garlic Press Deluxe", "u1", "$5,000.00", "2025-06-01", "500"),
		makeRow("Garlic Press Pro", "u2", "$12,345.67", "2025-01-15", "800"),
		makeRow("Garlic Press Mini", "u3", "$9,000.00", "2026-02-01", "100"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic press", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "u2", pick.URL)
	assert.Equal(t, "$12,345.67", pick.Revenue)
}

func TestFindTopRecentProductRevenueTieBrokenByDate(t *testing.T) {
	rows := []Row{
		makeRow("Garlic Press A", "older", "$100", "2025-01-01", "10"),
		makeRow("Garlic Press B", "newer", "$100", "2025-09-01", "10"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "newer", pick.URL)
}

func TestFindTopRecentProductExcludesHighReviews(t *testing.T) {
	rows := []Row{
		makeRow("Garlic Press Popular", "crowded", "$50,000", "2025-06-01", "4523"),
		makeRow("Garlic Press Niche", "niche", "$2,000", "2025-06-01", "120"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "niche", pick.URL)
}

func TestFindTopRecentProductFallsBackToLowestReviews(t *testing.T) {
	// Every keyword match exceeds the review cap, so the pick degrades
	// to the match with the fewest reviews.
	rows := []Row{
		makeRow("Garlic Press A", "a", "$1", "2025-06-01", "5000"),
		makeRow("Garlic Press B", "b", "$1", "2025-06-01", "1500"),
		makeRow("Unrelated Widget", "w", "$1", "2025-06-01", "10"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "b", pick.URL)
}

func TestFindTopRecentProductFallsBackToMostRecent(t *testing.T) {
	// Matches pass the review filter but all predate the 2-year window.
	rows := []Row{
		makeRow("Garlic Press Old", "old", "$900", "2020-01-01", "50"),
		makeRow("Garlic Press Older", "older", "$999", "2019-01-01", "50"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "old", pick.URL)
}

func TestFindTopRecentProductKeywordMissTakesFirstRow(t *testing.T) {
	rows := []Row{
		makeRow("Widget One", "first", "$1", "2025-06-01", "10"),
		makeRow("Widget Two", "second", "$2", "2025-06-01", "20"),
	}

	pick, err := FindTopRecentProduct(rows, "garlic", pickerNow)
	require.NoError(t, err)
	assert.Equal(t, "first", pick.URL)
}

func TestFindTopRecentProductEmptyRows(t *testing.T) {
	_, err := FindTopRecentProduct(nil, "garlic", pickerNow)
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestRowRevenueFallsBackToFlatColumn(t *testing.T) {
	row := Row{colParentRevenue: "", colRevenue: "$42"}
	assert.Equal(t, "$42", rowRevenue(row))

	row = Row{colParentRevenue: "$100", colRevenue: "$42"}
	assert.Equal(t, "$100", rowRevenue(row))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$12,345.67", 12345.67, true},
		{"1000", 1000, true},
		{"(123.45)", -123.45, true},
		{"$ 1,000", 1000, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.InDelta(t, tt.want, got, 0.001, tt.in)
		}
	}
}

func TestParseExportDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"06/15/2025", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"Jan 02, 2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"2025.6.1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseExportDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.True(t, got.Equal(tt.want), "%s -> %v", tt.in, got)
		}
	}
}
