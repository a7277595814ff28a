package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryOptionsTable(t *testing.T) {
	assert.Equal(t, []string{"US", "UK", "CAN", "DE"}, CountryOptions(SellerTypeVendor))
	assert.Equal(t, []string{"US", "UK", "CAN", "AUS", "DE", "UAE"}, CountryOptions(SellerTypeExisting))
	assert.Equal(t, []string{"US", "UK", "CAN", "AUS", "DE", "UAE"}, CountryOptions(SellerTypeNew))
	assert.Equal(t, []string{"US", "UK", "CAN", "DE", "AUS", "UAE"}, CountryOptions(""))
	assert.Equal(t, []string{"US", "UK", "CAN", "DE", "AUS", "UAE"}, CountryOptions("something_else"))
}

func TestValidateStep1ErrorOrder(t *testing.T) {
	s := State{Brands: []Brand{{
		Name:       "",
		SellerType: "",
		Countries:  []CountryCount{{Name: "", Count: 0}},
	}}}

	errs := ValidateStep1(s)
	assert.Equal(t, []string{
		"Brand 1: Brand name is required",
		"Brand 1: Seller type is required",
		"Brand 1, Country 1: Country is required",
		"Brand 1, Country 1: Product count must be at least 1",
	}, errs)
}

func TestValidateStep1Valid(t *testing.T) {
	s := State{Brands: []Brand{{
		Name:       "Acme",
		SellerType: SellerTypeExisting,
		Countries:  []CountryCount{{Name: "US", Count: 3}},
	}}}
	assert.Empty(t, ValidateStep1(s))
}

func TestValidateStep1WhitespaceName(t *testing.T) {
	s := State{Brands: []Brand{{
		Name:       "   ",
		SellerType: SellerTypeVendor,
		Countries:  []CountryCount{{Name: "US", Count: 1}},
	}}}
	errs := ValidateStep1(s)
	assert.Equal(t, []string{"Brand 1: Brand name is required"}, errs)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://www.amazon.com/dp/123"))
	assert.True(t, IsValidURL("https://amazon.co.uk/gp/bestsellers"))
	assert.False(t, IsValidURL("https://example.com"))
	assert.False(t, IsValidURL("not a url"))
	assert.False(t, IsValidURL(""))

	// Known-loose acceptance: any host that mentions "amazon." passes.
	// Kept in sync with what the backend actually accepts.
	assert.True(t, IsValidURL("https://amazon.evil.com"))
}

func TestValidateStep2(t *testing.T) {
	csv := &FilePayload{Name: "Report.CSV", Type: "text/csv", Data: []byte("x")}

	d := Detail{Brands: []DetailBrand{{
		Brand: "Acme",
		Countries: []DetailCountry{{
			Name: "US",
			Products: []Product{
				{
					ProductName: "Widget",
					URL:         "https://www.amazon.com/dp/B000",
					Keyword:     "widget",
					CategoryURL: "https://www.amazon.com/b?node=1",
					CSVFile:     csv,
				},
				{
					ProductName: "",
					URL:         "https://example.com/p/1",
					Keyword:     "",
					CategoryURL: "",
					CSVFile:     &FilePayload{Name: "notes.txt"},
				},
			},
		}},
	}}}

	errs := ValidateStep2(d)
	assert.Equal(t, []string{
		"Brand Acme, Country US, Product 2: Product name is required",
		"Brand Acme, Country US, Product 2: Product URL must be a valid Amazon URL",
		"Brand Acme, Country US, Product 2: Keyword is required",
		"Brand Acme, Country US, Product 2: Category URL is required",
		"Brand Acme, Country US, Product 2: CSV file must be a .csv file",
	}, errs)
}

func TestValidateStep2MissingCSV(t *testing.T) {
	d := Detail{Brands: []DetailBrand{{
		Brand: "Acme",
		Countries: []DetailCountry{{
			Name: "DE",
			Products: []Product{{
				ProductName: "Widget",
				URL:         "https://www.amazon.de/dp/B000",
				Keyword:     "widget",
				CategoryURL: "https://www.amazon.de/b?node=9",
			}},
		}},
	}}}
	errs := ValidateStep2(d)
	assert.Equal(t, []string{"Brand Acme, Country DE, Product 1: CSV file is required"}, errs)
}
