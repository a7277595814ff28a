package wizard

import "fmt"

// Section is one (brand, country) pairing visited during step-2 data
// entry, in the order sections are flattened from the detail model.
type Section struct {
	BrandIndex   int    `json:"brandIndex"`
	CountryIndex int    `json:"countryIndex"`
	Label        string `json:"label"`
}

// Sections flattens the detail model into the step-2 traversal order:
// brands in stored order, then each brand's countries in stored order.
func Sections(d Detail) []Section {
	var out []Section
	for b, brand := range d.Brands {
		for c, country := range brand.Countries {
			out = append(out, Section{
				BrandIndex:   b,
				CountryIndex: c,
				Label:        fmt.Sprintf("%s - %s", brand.Brand, country.Name),
			})
		}
	}
	return out
}

// ClampSection bounds a section index to [0, n-1]. An empty section list
// is treated as length 1 so the index (and the progress math) stay
// well-defined.
func ClampSection(idx, n int) int {
	if n < 1 {
		n = 1
	}
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// NextSection advances one section, clamping at the end. No wraparound.
func NextSection(idx, n int) int {
	return ClampSection(idx+1, n)
}

// PrevSection steps back one section, clamping at the start.
func PrevSection(idx, n int) int {
	return ClampSection(idx-1, n)
}

// ProgressPct converts a section position into a whole percentage:
// round(100*idx/max(n,1)).
func ProgressPct(idx, n int) int {
	if n < 1 {
		n = 1
	}
	idx = ClampSection(idx, n)
	return int(float64(idx)/float64(n)*100 + 0.5)
}
