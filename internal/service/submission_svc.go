package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"

	"amazon_intake_v1_202608/internal/api/dto"
)

// ==================== SubmissionService ====================

var (
	// ErrNoBrands is returned for a payload with no brands at all.
	ErrNoBrands = errors.New("No brands provided")
	// ErrNoValidCountries is returned when filtering leaves nothing to
	// scrape.
	ErrNoValidCountries = errors.New("No valid countries found")
)

// validCountries is the set of marketplaces the scraper can work.
var validCountries = map[string]bool{
	"US": true, "UK": true, "CAN": true, "AUS": true, "DE": true, "UAE": true,
}

// SubmissionService normalizes incoming payloads into the exact shape
// the scraper consumes and stages uploaded CSV files to disk.
type SubmissionService struct{}

func NewSubmissionService() *SubmissionService {
	return &SubmissionService{}
}

// NormalizeCountry maps free-form country input to the canonical
// marketplace code: trimmed, upper-cased, with AU folded into AUS.
func NormalizeCountry(name string) string {
	country := strings.ToUpper(strings.TrimSpace(name))
	if country == "AU" {
		return "AUS"
	}
	return country
}

// BuildScraperPayload filters a request down to scrapeable content:
// country names are normalized, countries outside the supported set are
// dropped, and brands left without any valid country are dropped too.
// csvPaths maps an uploaded filename to its staged path; products whose
// CSVFile matches get CSVFilePath filled in.
func (s *SubmissionService) BuildScraperPayload(req dto.SubmissionRequest, csvPaths map[string]string) (dto.SubmissionRequest, error) {
	if len(req.Brands) == 0 {
		return dto.SubmissionRequest{}, ErrNoBrands
	}

	out := dto.SubmissionRequest{}
	for _, brand := range req.Brands {
		var countries []dto.CountryData
		for _, country := range brand.Countries {
			name := NormalizeCountry(country.Name)
			if !validCountries[name] {
				log.Printf("[Submission] dropping unsupported country %q for brand %q", country.Name, brand.Brand)
				continue
			}

			products := make([]dto.ProductData, 0, len(country.Products))
			for _, p := range country.Products {
				prod := dto.ProductData{
					ProductName: p.ProductName,
					URL:         p.URL,
					Keyword:     p.Keyword,
					CategoryURL: p.CategoryURL,
					CSVFile:     p.CSVFile,
				}
				if p.CSVFile != nil {
					if path, ok := csvPaths[*p.CSVFile]; ok {
						prod.CSVFilePath = path
					}
				}
				products = append(products, prod)
			}
			countries = append(countries, dto.CountryData{Name: name, Products: products})
		}

		if len(countries) > 0 {
			out.Brands = append(out.Brands, dto.BrandData{Brand: brand.Brand, Countries: countries})
		}
	}

	if len(out.Brands) == 0 {
		return dto.SubmissionRequest{}, ErrNoValidCountries
	}
	return out, nil
}

// CountFiles counts the staged CSV references in a payload.
func CountFiles(req dto.SubmissionRequest) int {
	n := 0
	for _, b := range req.Brands {
		for _, c := range b.Countries {
			for _, p := range c.Products {
				if p.CSVFilePath != "" {
					n++
				}
			}
		}
	}
	return n
}

// ==================== CSV staging ====================

// StageCSVFiles writes each uploaded part to a temporary .csv file and
// returns filename -> path plus the list of created paths. On error the
// already-created files are removed before returning.
func (s *SubmissionService) StageCSVFiles(files []*multipart.FileHeader) (map[string]string, []string, error) {
	paths := make(map[string]string, len(files))
	var created []string

	cleanup := func() {
		for _, p := range created {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				log.Printf("[Submission] failed to clean up %s: %v", p, err)
			}
		}
	}

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}

		tmp, err := os.CreateTemp("", "intake-upload-*.csv")
		if err != nil {
			src.Close()
			cleanup()
			return nil, nil, fmt.Errorf("create temp file: %w", err)
		}

		_, err = io.Copy(tmp, src)
		src.Close()
		tmp.Close()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("write temp file for %s: %w", fh.Filename, err)
		}

		paths[fh.Filename] = tmp.Name()
		created = append(created, tmp.Name())
	}

	return paths, created, nil
}

// RemoveStagedFiles deletes staged temp files, logging but not failing
// on paths that are already gone.
func RemoveStagedFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[Submission] failed to clean up %s: %v", p, err)
		}
	}
}
