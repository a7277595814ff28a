package wizard

// ==================== Form data model ====================

// SellerType classifies a brand and restricts which marketplaces are
// selectable for it.
type SellerType string

const (
	SellerTypeExisting SellerType = "existing_seller"
	SellerTypeNew      SellerType = "new_seller"
	SellerTypeVendor   SellerType = "vendor"
)

// CountryCount is one marketplace slot request on a step-1 brand.
// Count is the number of product slots materialized for step 2 and is
// kept inside [1,10] by every mutator.
type CountryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Brand is the top-level grouping entered in step 1.
type Brand struct {
	Name       string         `json:"name"`
	SellerType SellerType     `json:"sellerType"`
	Countries  []CountryCount `json:"countries"`
}

// State is the step-1 form state. Mutators never modify a State in
// place; they return a fresh copy so a snapshot handed to a renderer
// stays stable.
type State struct {
	Brands []Brand `json:"brands"`
}

// FilePayload is a file attachment serialized for transport across the
// desktop bridge: name, MIME type and raw bytes.
type FilePayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// Product is one step-2 data-entry row.
type Product struct {
	ProductName string       `json:"productname"`
	URL         string       `json:"url"`
	Keyword     string       `json:"keyword"`
	CategoryURL string       `json:"categoryUrl"`
	CSVFile     *FilePayload `json:"csvFile,omitempty"`
}

// DetailCountry groups the products entered for one (brand, country)
// section.
type DetailCountry struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// DetailBrand mirrors a step-1 brand in the step-2 detail model.
type DetailBrand struct {
	Brand     string          `json:"brand"`
	Countries []DetailCountry `json:"countries"`
}

// Detail is the step-2 expanded model, derived from step-1 counts at the
// moment the user advances. Editing it never writes back to step 1.
type Detail struct {
	Brands []DetailBrand `json:"brands"`
}

// Step identifies which wizard page is active.
type Step int

const (
	StepBrands  Step = 1
	StepDetails Step = 2
)

// Backend connectivity status values surfaced in the UI banner.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)

// AppState is the view-level state owned by the presentation layer:
// current step, current section index, in-flight submission guard and
// backend connectivity. It is passed around explicitly, never ambient.
type AppState struct {
	Step          Step   `json:"step"`
	SectionIndex  int    `json:"sectionIndex"`
	Submitting    bool   `json:"submitting"`
	BackendStatus string `json:"backendStatus"`
}

// NewState returns the initial form state: a single empty brand with one
// empty country slot.
func NewState() State {
	return State{Brands: []Brand{defaultBrand()}}
}

// NewAppState returns the initial view state on step 1 with the backend
// assumed disconnected until the first probe lands.
func NewAppState() AppState {
	return AppState{
		Step:          StepBrands,
		SectionIndex:  0,
		BackendStatus: StatusDisconnected,
	}
}

func defaultBrand() Brand {
	return Brand{
		Countries: []CountryCount{{Count: 1}},
	}
}

func blankProduct() Product {
	return Product{}
}
