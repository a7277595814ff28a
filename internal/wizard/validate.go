package wizard

import (
	"fmt"
	"net/url"
	"strings"
)

// Validation passes are pure: they walk the state in display order and
// accumulate human-readable messages without short-circuiting. An empty
// result means the step may advance (or the form may submit).

// ValidateStep1 checks the brand/country/count form. Positions in the
// messages are 1-indexed to match what the user sees.
func ValidateStep1(s State) []string {
	var errs []string
	for i, b := range s.Brands {
		if strings.TrimSpace(b.Name) == "" {
			errs = append(errs, fmt.Sprintf("Brand %d: Brand name is required", i+1))
		}
		if b.SellerType == "" {
			errs = append(errs, fmt.Sprintf("Brand %d: Seller type is required", i+1))
		}
		for j, c := range b.Countries {
			if strings.TrimSpace(c.Name) == "" {
				errs = append(errs, fmt.Sprintf("Brand %d, Country %d: Country is required", i+1, j+1))
			}
			if c.Count < minCount {
				errs = append(errs, fmt.Sprintf("Brand %d, Country %d: Product count must be at least 1", i+1, j+1))
			}
		}
	}
	return errs
}

// ValidateStep2 checks every product of the detail model. Messages use
// the brand and country display names rather than indices. A non-blank
// URL that fails the Amazon check reports only the format error, not the
// required-field one.
func ValidateStep2(d Detail) []string {
	var errs []string
	for _, b := range d.Brands {
		for _, c := range b.Countries {
			for k, p := range c.Products {
				at := fmt.Sprintf("Brand %s, Country %s, Product %d", b.Brand, c.Name, k+1)

				if strings.TrimSpace(p.ProductName) == "" {
					errs = append(errs, at+": Product name is required")
				}
				errs = appendURLErrors(errs, at, "Product URL", p.URL)
				if strings.TrimSpace(p.Keyword) == "" {
					errs = append(errs, at+": Keyword is required")
				}
				errs = appendURLErrors(errs, at, "Category URL", p.CategoryURL)

				switch {
				case p.CSVFile == nil:
					errs = append(errs, at+": CSV file is required")
				case !IsCSVFilename(p.CSVFile.Name):
					errs = append(errs, at+": CSV file must be a .csv file")
				}
			}
		}
	}
	return errs
}

func appendURLErrors(errs []string, at, label, raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return append(errs, fmt.Sprintf("%s: %s is required", at, label))
	}
	if !IsValidURL(raw) {
		return append(errs, fmt.Sprintf("%s: %s must be a valid Amazon URL", at, label))
	}
	return errs
}

// IsValidURL reports whether raw parses as a URL whose lower-cased host
// contains "amazon.". This is a deliberate substring match, not a domain
// suffix check: the backend accepts any host mentioning amazon. and the
// client mirrors that rather than rejecting input the backend would take.
func IsValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	return strings.Contains(strings.ToLower(host), "amazon.")
}

// IsCSVFilename reports whether name ends in ".csv", case-insensitively.
func IsCSVFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}
