package gateway

import (
	"context"

	"amazon_intake_v1_202608/internal/wizard"
)

// ==================== Result shapes ====================

// Result is the uniform outcome of a backend call. A transport failure
// and an application-level rejection look the same to callers: Success
// false with the message in Error.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Status is the outcome of a connectivity probe.
type Status struct {
	Status string `json:"status"` // "connected" or "disconnected"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ==================== Wire payload ====================

// ProductPayload is the product record as the backend expects it; the
// CSV attachment travels as a separate multipart part and is referenced
// here by filename only.
type ProductPayload struct {
	ProductName string  `json:"productname"`
	URL         string  `json:"url"`
	Keyword     string  `json:"keyword"`
	CategoryURL string  `json:"categoryUrl"`
	CSVFile     *string `json:"csvFile,omitempty"`
}

type CountryPayload struct {
	Name     string           `json:"name"`
	Products []ProductPayload `json:"products"`
}

type BrandPayload struct {
	Brand     string           `json:"brand"`
	Countries []CountryPayload `json:"countries"`
}

// SubmissionPayload is the JSON structure posted to the backend. Nesting
// order mirrors the detail model exactly.
type SubmissionPayload struct {
	Brands []BrandPayload `json:"brands"`
}

// ManualCSVForm is the form posted to the manual CSV endpoint: one CSV
// plus the sheet coordinates the backend should fill in.
type ManualCSVForm struct {
	File          wizard.FilePayload `json:"file"`
	RowNumber     int                `json:"rowNumber"`
	Country       string             `json:"country"`
	KeywordPhrase string             `json:"keywordPhrase"`
	SellerType    string             `json:"sellerType"`
}

// Gateway abstracts the backend the wizard talks to. Implementations
// perform exactly one attempt per call; retries and timeouts belong to
// the transport underneath.
type Gateway interface {
	CheckHealth(ctx context.Context) Status
	Submit(ctx context.Context, payload SubmissionPayload) Result
	SubmitWithFiles(ctx context.Context, payload SubmissionPayload, files []wizard.FilePayload) Result
	SubmitManualCSV(ctx context.Context, form ManualCSVForm) Result
}

// PayloadFromDetail serializes the step-2 detail model into the wire
// payload and collects the CSV attachments in traversal order. Products
// without an attachment keep a nil CSVFile reference.
func PayloadFromDetail(d wizard.Detail) (SubmissionPayload, []wizard.FilePayload) {
	payload := SubmissionPayload{Brands: make([]BrandPayload, 0, len(d.Brands))}
	var files []wizard.FilePayload

	for _, b := range d.Brands {
		bp := BrandPayload{Brand: b.Brand, Countries: make([]CountryPayload, 0, len(b.Countries))}
		for _, c := range b.Countries {
			cp := CountryPayload{Name: c.Name, Products: make([]ProductPayload, 0, len(c.Products))}
			for _, p := range c.Products {
				pp := ProductPayload{
					ProductName: p.ProductName,
					URL:         p.URL,
					Keyword:     p.Keyword,
					CategoryURL: p.CategoryURL,
				}
				if p.CSVFile != nil {
					name := p.CSVFile.Name
					pp.CSVFile = &name
					files = append(files, *p.CSVFile)
				}
				cp.Products = append(cp.Products, pp)
			}
			bp.Countries = append(bp.Countries, cp)
		}
		payload.Brands = append(payload.Brands, bp)
	}
	return payload, files
}
