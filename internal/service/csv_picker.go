package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Competitor selection over a Helium-style product research CSV export.
// Column names match the export format exactly.

const (
	colProductDetails = "Product Details"
	colURL            = "URL"
	colParentRevenue  = "Parent Level Revenue"
	colRevenue        = "Revenue"
	colCreationDate   = "Creation Date"
	colReviewCount    = "Review Count"

	maxCompetitorReviews = 1000
	recentWithinYears    = 2
)

// Date formats seen in exports, tried in order.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"02-Jan-2006",
	"Jan 02, 2006",
}

// Row is one CSV record keyed by header name.
type Row map[string]string

// CompetitorPick is the selected competitor row, values kept as the raw
// export strings so they can be written back to a sheet untouched.
type CompetitorPick struct {
	ProductDetails string `json:"product_details"`
	URL            string `json:"url"`
	Revenue        string `json:"parent_level_revenue"`
	CreationDate   string `json:"creation_date"`
}

// ErrEmptyCSV is returned for a CSV with no data rows.
var ErrEmptyCSV = errors.New("csv contains no data rows")

// ReadCSVRows parses r into header-keyed rows. Short records are padded
// so missing trailing columns read as empty.
func ReadCSVRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyCSV
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[strings.TrimSpace(name)] = rec[i]
			} else {
				row[strings.TrimSpace(name)] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FindTopRecentProduct picks the competitor for a keyword: among rows
// mentioning the keyword with at most 1000 reviews and created within
// the last two years, the one with the highest revenue (ties broken by
// the more recent creation date). Falls back through progressively
// looser picks rather than failing: lowest review count, most recent
// creation date, and finally the first row of the export.
func FindTopRecentProduct(rows []Row, keyword string, now time.Time) (*CompetitorPick, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}

	candidates, degraded := filterByReviewsAndKeyword(rows, keyword)
	if degraded {
		return pickFromRow(candidates[0]), nil
	}

	cutoff := now.AddDate(-recentWithinYears, 0, 0)
	var best Row
	bestRev := 0.0
	haveBest := false

	for _, row := range candidates {
		created, ok := parseExportDate(row[colCreationDate])
		if !ok || created.Before(cutoff) {
			continue
		}
		rev, ok := parseNumber(rowRevenue(row))
		if !ok {
			continue
		}
		switch {
		case !haveBest || rev > bestRev:
			best, bestRev, haveBest = row, rev, true
		case rev == bestRev:
			prev, prevOK := parseExportDate(best[colCreationDate])
			if prevOK && created.After(prev) {
				best = row
			}
		}
	}

	if !haveBest {
		return pickFromRow(nextBestProduct(rows, keyword, byMostRecent)), nil
	}
	return pickFromRow(best), nil
}

// filterByReviewsAndKeyword keeps keyword matches with a numeric review
// count of at most 1000. When nothing qualifies, it degrades to the
// single next-best row by lowest review count; the degraded flag tells
// the caller to take that row as-is, skipping the revenue pass.
func filterByReviewsAndKeyword(rows []Row, keyword string) ([]Row, bool) {
	var out []Row
	for _, row := range rows {
		if !containsFold(row[colProductDetails], keyword) {
			continue
		}
		n, ok := parseNumber(row[colReviewCount])
		if !ok || n > maxCompetitorReviews {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return []Row{nextBestProduct(rows, keyword, byLowestReviews)}, true
	}
	return out, false
}

type nextBestOrder int

const (
	byMostRecent nextBestOrder = iota
	byLowestReviews
)

// nextBestProduct relaxes the filters: keyword matches only, ordered by
// the requested tie-break. A keyword with no matches at all yields the
// first row of the export.
func nextBestProduct(rows []Row, keyword string, order nextBestOrder) Row {
	var matched []Row
	for _, row := range rows {
		if containsFold(row[colProductDetails], keyword) {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return rows[0]
	}
	if len(matched) == 1 {
		return matched[0]
	}

	switch order {
	case byMostRecent:
		sort.SliceStable(matched, func(i, j int) bool {
			di, iok := parseExportDate(matched[i][colCreationDate])
			dj, jok := parseExportDate(matched[j][colCreationDate])
			if iok != jok {
				return iok
			}
			return di.After(dj)
		})
	case byLowestReviews:
		var withReviews []Row
		for _, row := range matched {
			if _, ok := parseNumber(row[colReviewCount]); ok {
				withReviews = append(withReviews, row)
			}
		}
		if len(withReviews) > 0 {
			matched = withReviews
		}
		sort.SliceStable(matched, func(i, j int) bool {
			ri, _ := parseNumber(matched[i][colReviewCount])
			rj, _ := parseNumber(matched[j][colReviewCount])
			return ri < rj
		})
	}
	return matched[0]
}

func pickFromRow(row Row) *CompetitorPick {
	return &CompetitorPick{
		ProductDetails: strings.TrimSpace(row[colProductDetails]),
		URL:            strings.TrimSpace(row[colURL]),
		Revenue:        strings.TrimSpace(rowRevenue(row)),
		CreationDate:   strings.TrimSpace(row[colCreationDate]),
	}
}

// rowRevenue prefers the parent-level column, falling back to the flat
// one used by older exports.
func rowRevenue(row Row) string {
	if v, ok := row[colParentRevenue]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return row[colRevenue]
}

// ==================== Parsing helpers ====================

// parseNumber converts currency-formatted values like "$12,345.67" or
// "(123.45)" to a float.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// parseExportDate tries the known export formats, then a loose
// yyyy/mm/dd interpretation with . and - folded into /.
func parseExportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	parts := strings.Split(strings.NewReplacer(".", "/", "-", "/").Replace(s), "/")
	if len(parts) == 3 {
		y, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		d, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 == nil && err2 == nil && err3 == nil && m >= 1 && m <= 12 && d >= 1 && d <= 31 {
			if y < 100 {
				y += 2000
			}
			return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
