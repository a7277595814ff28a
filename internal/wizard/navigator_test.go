package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeSectionDetail() Detail {
	return Detail{Brands: []DetailBrand{
		{Brand: "Acme", Countries: []DetailCountry{
			{Name: "US", Products: []Product{{}}},
			{Name: "UK", Products: []Product{{}}},
		}},
		{Brand: "Globex", Countries: []DetailCountry{
			{Name: "DE", Products: []Product{{}}},
		}},
	}}
}

func TestSectionsOrder(t *testing.T) {
	secs := Sections(threeSectionDetail())
	assert.Len(t, secs, 3)
	assert.Equal(t, Section{BrandIndex: 0, CountryIndex: 0, Label: "Acme - US"}, secs[0])
	assert.Equal(t, Section{BrandIndex: 0, CountryIndex: 1, Label: "Acme - UK"}, secs[1])
	assert.Equal(t, Section{BrandIndex: 1, CountryIndex: 0, Label: "Globex - DE"}, secs[2])
}

func TestNavigationClamps(t *testing.T) {
	n := len(Sections(threeSectionDetail()))

	idx := 0
	idx = NextSection(idx, n)
	idx = NextSection(idx, n)
	idx = NextSection(idx, n) // clamps at the end
	assert.Equal(t, 2, idx)

	idx = PrevSection(idx, n)
	idx = PrevSection(idx, n)
	idx = PrevSection(idx, n) // clamps at the start
	assert.Equal(t, 0, idx)
}

func TestProgressPct(t *testing.T) {
	assert.Equal(t, 0, ProgressPct(0, 3))
	assert.Equal(t, 33, ProgressPct(1, 3))
	assert.Equal(t, 67, ProgressPct(2, 3))

	// Empty section lists behave as length 1: no division by zero.
	assert.Equal(t, 0, ProgressPct(0, 0))

	assert.Equal(t, 50, ProgressPct(1, 2))
}
