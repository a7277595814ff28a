package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"amazon_intake_v1_202608/internal/wizard"
	"amazon_intake_v1_202608/pkg/utils"
)

// DefaultBaseURL is where the local backend listens.
const DefaultBaseURL = "http://127.0.0.1:4000"

// HTTPGateway talks to the backend directly over HTTP. It is the
// implementation used both by the desktop shell and by anything running
// without the bridge; callers only ever see the Gateway interface.
type HTTPGateway struct {
	client *resty.Client
}

// NewHTTPGateway builds a gateway against baseURL (DefaultBaseURL when
// empty).
func NewHTTPGateway(baseURL string) *HTTPGateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPGateway{client: utils.NewAPIClient(baseURL)}
}

// CheckHealth probes GET /health. Any transport error or non-2xx status
// reports disconnected.
func (g *HTTPGateway) CheckHealth(ctx context.Context) Status {
	resp, err := g.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return Status{Status: wizard.StatusDisconnected, Error: err.Error()}
	}
	if !resp.IsSuccess() {
		return Status{
			Status: wizard.StatusDisconnected,
			Error:  fmt.Sprintf("health check returned status %d", resp.StatusCode()),
		}
	}
	return Status{Status: wizard.StatusConnected, Data: decodeBody(resp.Body())}
}

// Submit posts the JSON-only payload to /api/submissions.
func (g *HTTPGateway) Submit(ctx context.Context, payload SubmissionPayload) Result {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/submissions")
	return toResult(resp, err)
}

// SubmitWithFiles posts the payload and its CSV attachments as one
// multipart request: a brands_data JSON string field plus a repeated
// csv_files part per attachment, reassembled from the serialized
// {name, type, data} form the bridge uses.
func (g *HTTPGateway) SubmitWithFiles(ctx context.Context, payload SubmissionPayload, files []wizard.FilePayload) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	req := g.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"brands_data": string(body)})
	for _, f := range files {
		contentType := f.Type
		if contentType == "" {
			contentType = "text/csv"
		}
		req.SetMultipartField("csv_files", f.Name, contentType, bytes.NewReader(f.Data))
	}

	resp, err := req.Post("/api/submissions-with-files")
	return toResult(resp, err)
}

// SubmitManualCSV posts a single CSV plus its sheet coordinates to
// /api/handle_manual_csv.
func (g *HTTPGateway) SubmitManualCSV(ctx context.Context, form ManualCSVForm) Result {
	contentType := form.File.Type
	if contentType == "" {
		contentType = "text/csv"
	}
	resp, err := g.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"row_number":     strconv.Itoa(form.RowNumber),
			"country":        form.Country,
			"keyword_phrase": form.KeywordPhrase,
			"seller_type":    form.SellerType,
		}).
		SetMultipartField("csv_file", form.File.Name, contentType, bytes.NewReader(form.File.Data)).
		Post("/api/handle_manual_csv")
	return toResult(resp, err)
}

// ==================== Response mapping ====================

// toResult folds transport errors and application rejections into the
// uniform result shape. The backend reports failures in a "detail" or
// "error" JSON field; that message is surfaced verbatim.
func toResult(resp *resty.Response, err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	data := decodeBody(resp.Body())
	if resp.IsSuccess() {
		return Result{Success: true, Data: data}
	}
	return Result{Success: false, Data: data, Error: errorMessage(data, resp.StatusCode())}
}

func decodeBody(body []byte) any {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}
	return data
}

func errorMessage(data any, statusCode int) string {
	if m, ok := data.(map[string]any); ok {
		for _, key := range []string{"detail", "error"} {
			if v, ok := m[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
