package dto

// ==================== Requests ====================

// ProductData is one product entry inside a submission. CSVFile carries
// the original upload filename; CSVFilePath is filled in server-side
// once the upload has been staged to disk.
type ProductData struct {
	ProductName string  `json:"productname"`
	URL         string  `json:"url"`
	Keyword     string  `json:"keyword"`
	CategoryURL string  `json:"categoryUrl"`
	CSVFile     *string `json:"csvFile,omitempty"`
	CSVFilePath string  `json:"csvFilePath,omitempty"`
}

// CountryData groups products under one marketplace.
type CountryData struct {
	Name     string        `json:"name"`
	Products []ProductData `json:"products"`
}

// BrandData is one brand with its marketplaces.
type BrandData struct {
	Brand     string        `json:"brand"`
	Countries []CountryData `json:"countries"`
}

// SubmissionRequest is the intake payload posted by the wizard, either
// as a JSON body or as the brands_data multipart field.
type SubmissionRequest struct {
	Brands []BrandData `json:"brands"`
}

// ==================== Responses ====================

// SubmissionResponse mirrors what the wizard expects back: ok flag, a
// human-readable message and the payload as the scraper will see it.
type SubmissionResponse struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message"`
	Payload SubmissionRequest `json:"payload"`
}

// ScraperStatusResponse reports the runner state for the status poll.
type ScraperStatusResponse struct {
	Running   bool `json:"running"`
	QueueSize int  `json:"queue_size"`
}

// ManualCSVResponse reports the outcome of a manual CSV run, including
// the competitor row the picker selected.
type ManualCSVResponse struct {
	OK             bool   `json:"ok"`
	Message        string `json:"message"`
	ProductDetails string `json:"product_details,omitempty"`
	CompetitorURL  string `json:"competitor_url,omitempty"`
	Revenue        string `json:"parent_level_revenue,omitempty"`
	CreationDate   string `json:"creation_date,omitempty"`
}
