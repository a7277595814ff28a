package wizard

import (
	"strconv"
	"strings"
)

// Mutators over the form state. Every mutator copies the slices it
// touches and returns a new State, so previously handed-out snapshots
// never change underneath a renderer. Out-of-range indices are no-ops
// returning the input unchanged.

const (
	minCount = 1
	maxCount = 10
)

// ==================== Step-1 brand mutators ====================

// AddBrand appends a fresh default brand.
func AddBrand(s State) State {
	brands := copyBrands(s.Brands)
	brands = append(brands, defaultBrand())
	return State{Brands: brands}
}

// RemoveBrand deletes the brand at i. Removing the last remaining brand
// is a no-op: the form always shows at least one.
func RemoveBrand(s State, i int) State {
	if i < 0 || i >= len(s.Brands) || len(s.Brands) <= 1 {
		return s
	}
	brands := make([]Brand, 0, len(s.Brands)-1)
	brands = append(brands, copyBrands(s.Brands[:i])...)
	brands = append(brands, copyBrands(s.Brands[i+1:])...)
	return State{Brands: brands}
}

// RenameBrand sets the display name of brand i.
func RenameBrand(s State, i int, name string) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	brands := copyBrands(s.Brands)
	brands[i].Name = name
	return State{Brands: brands}
}

// SetSellerType changes the seller type of brand i and coerces any
// country selection that is no longer valid to the first option of the
// new set, preserving its count and position.
func SetSellerType(s State, i int, st SellerType) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	brands := copyBrands(s.Brands)
	brands[i].SellerType = st

	opts := CountryOptions(st)
	countries := brands[i].Countries
	for j := range countries {
		if countries[j].Name == "" {
			continue
		}
		if !countryAllowed(st, countries[j].Name) {
			countries[j].Name = opts[0]
		}
	}
	return State{Brands: brands}
}

// ==================== Step-1 country mutators ====================

// AddCountry appends a country slot to brand i, defaulting to the first
// allowed option with a count of 1.
func AddCountry(s State, i int) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	brands := copyBrands(s.Brands)
	opts := CountryOptions(brands[i].SellerType)
	brands[i].Countries = append(brands[i].Countries, CountryCount{
		Name:  opts[0],
		Count: minCount,
	})
	return State{Brands: brands}
}

// RemoveCountry deletes country j from brand i. The last remaining
// country of a brand cannot be removed.
func RemoveCountry(s State, i, j int) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	cs := s.Brands[i].Countries
	if j < 0 || j >= len(cs) || len(cs) <= 1 {
		return s
	}
	brands := copyBrands(s.Brands)
	countries := make([]CountryCount, 0, len(cs)-1)
	countries = append(countries, cs[:j]...)
	countries = append(countries, cs[j+1:]...)
	brands[i].Countries = countries
	return State{Brands: brands}
}

// SetCountryName selects the marketplace for country j of brand i.
func SetCountryName(s State, i, j int, name string) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	if j < 0 || j >= len(s.Brands[i].Countries) {
		return s
	}
	brands := copyBrands(s.Brands)
	brands[i].Countries[j].Name = name
	return State{Brands: brands}
}

// SetCountryCount updates the product-slot count for country j of brand
// i from raw field input. The value is parsed (defaulting to 1 on junk)
// and clamped to [1,10] on every call, so an invalid count is never
// observable, not even between keystrokes.
func SetCountryCount(s State, i, j int, raw string) State {
	if i < 0 || i >= len(s.Brands) {
		return s
	}
	if j < 0 || j >= len(s.Brands[i].Countries) {
		return s
	}
	brands := copyBrands(s.Brands)
	brands[i].Countries[j].Count = ParseCount(raw)
	return State{Brands: brands}
}

// ParseCount converts raw count input to a valid slot count:
// parse-or-1, then clamp to [1,10].
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < minCount {
		return minCount
	}
	if n > maxCount {
		return maxCount
	}
	return n
}

// ==================== Step-2 materialization ====================

// BuildDetail expands the step-1 state into the step-2 detail model:
// one blank product per unit of count, nested under its country and
// brand in stored order. Pure function; the input state is not touched
// and later detail edits never flow back into it.
func BuildDetail(s State) Detail {
	brands := make([]DetailBrand, 0, len(s.Brands))
	for _, b := range s.Brands {
		db := DetailBrand{
			Brand:     b.Name,
			Countries: make([]DetailCountry, 0, len(b.Countries)),
		}
		for _, c := range b.Countries {
			n := c.Count
			if n < minCount {
				n = minCount
			}
			dc := DetailCountry{
				Name:     c.Name,
				Products: make([]Product, 0, n),
			}
			for k := 0; k < n; k++ {
				dc.Products = append(dc.Products, blankProduct())
			}
			db.Countries = append(db.Countries, dc)
		}
		brands = append(brands, db)
	}
	return Detail{Brands: brands}
}

// ==================== Step-2 product mutators ====================

// Product field keys accepted by UpdateProductField.
const (
	FieldProductName = "productname"
	FieldURL         = "url"
	FieldKeyword     = "keyword"
	FieldCategoryURL = "categoryUrl"
)

// UpdateProductField sets a single text field of product p under
// (brand b, country c). Unknown field keys are ignored.
func UpdateProductField(d Detail, b, c, p int, field, value string) Detail {
	if !productIndexOK(d, b, c, p) {
		return d
	}
	brands := copyDetailBrands(d.Brands, b, c)
	prod := &brands[b].Countries[c].Products[p]
	switch field {
	case FieldProductName:
		prod.ProductName = value
	case FieldURL:
		prod.URL = value
	case FieldKeyword:
		prod.Keyword = value
	case FieldCategoryURL:
		prod.CategoryURL = value
	default:
		return d
	}
	return Detail{Brands: brands}
}

// AttachCSV sets (or clears, with nil) the CSV attachment of product p.
func AttachCSV(d Detail, b, c, p int, file *FilePayload) Detail {
	if !productIndexOK(d, b, c, p) {
		return d
	}
	brands := copyDetailBrands(d.Brands, b, c)
	brands[b].Countries[c].Products[p].CSVFile = file
	return Detail{Brands: brands}
}

// AddProduct appends a blank product to (brand b, country c); a section
// is capped at 10 products.
func AddProduct(d Detail, b, c int) Detail {
	if b < 0 || b >= len(d.Brands) {
		return d
	}
	if c < 0 || c >= len(d.Brands[b].Countries) {
		return d
	}
	if len(d.Brands[b].Countries[c].Products) >= maxCount {
		return d
	}
	brands := copyDetailBrands(d.Brands, b, c)
	brands[b].Countries[c].Products = append(brands[b].Countries[c].Products, blankProduct())
	return Detail{Brands: brands}
}

// RemoveProduct deletes product p from (brand b, country c); the last
// remaining product of a section cannot be removed.
func RemoveProduct(d Detail, b, c, p int) Detail {
	if !productIndexOK(d, b, c, p) {
		return d
	}
	if len(d.Brands[b].Countries[c].Products) <= 1 {
		return d
	}
	brands := copyDetailBrands(d.Brands, b, c)
	ps := brands[b].Countries[c].Products
	products := make([]Product, 0, len(ps)-1)
	products = append(products, ps[:p]...)
	products = append(products, ps[p+1:]...)
	brands[b].Countries[c].Products = products
	return Detail{Brands: brands}
}

// ==================== Copy helpers ====================

// copyBrands clones the brand slice one level deep, including each
// brand's country slice, which is enough for step-1 mutators to write
// freely without touching the source snapshot.
func copyBrands(in []Brand) []Brand {
	out := make([]Brand, len(in))
	copy(out, in)
	for i := range out {
		cs := make([]CountryCount, len(out[i].Countries))
		copy(cs, out[i].Countries)
		out[i].Countries = cs
	}
	return out
}

// copyDetailBrands clones the detail tree along the path that is about
// to be mutated (brand b, country c) and shares everything else.
// FilePayload pointers are shared; attachments are treated as immutable.
func copyDetailBrands(in []DetailBrand, b, c int) []DetailBrand {
	out := make([]DetailBrand, len(in))
	copy(out, in)

	cs := make([]DetailCountry, len(out[b].Countries))
	copy(cs, out[b].Countries)
	out[b].Countries = cs

	if c >= 0 && c < len(cs) {
		ps := make([]Product, len(cs[c].Products))
		copy(ps, cs[c].Products)
		cs[c].Products = ps
	}
	return out
}

func productIndexOK(d Detail, b, c, p int) bool {
	if b < 0 || b >= len(d.Brands) {
		return false
	}
	if c < 0 || c >= len(d.Brands[b].Countries) {
		return false
	}
	return p >= 0 && p < len(d.Brands[b].Countries[c].Products)
}
