// Package session owns the wizard's live state on behalf of the desktop
// shell: the step-1 form, the step-2 detail model, the view state and
// the gateway to the backend. Every mutation swaps in a fresh snapshot
// under a single lock, so a snapshot handed to the renderer is never
// mutated afterwards.
package session

import (
	"context"
	"strings"
	"sync"

	"amazon_intake_v1_202608/internal/gateway"
	"amazon_intake_v1_202608/internal/wizard"
)

// Alert mirrors the blocking dialogs the shell shows for validation,
// connectivity and submission outcomes.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Snapshot is everything the presentation layer needs to render one
// frame of the wizard deterministically.
type Snapshot struct {
	App      wizard.AppState  `json:"app"`
	State    wizard.State     `json:"state"`
	Detail   wizard.Detail    `json:"detail"`
	Sections []wizard.Section `json:"sections"`
	Progress int              `json:"progress"`
}

// Session is safe for use from the bridge's callback goroutines; all
// reads and writes go through one mutex.
type Session struct {
	mu     sync.Mutex
	state  wizard.State
	detail wizard.Detail
	app    wizard.AppState
	gw     gateway.Gateway
}

// New builds a session over the given gateway with a single empty brand.
func New(gw gateway.Gateway) *Session {
	return &Session{
		state: wizard.NewState(),
		app:   wizard.NewAppState(),
		gw:    gw,
	}
}

// Snapshot returns the current render state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	secs := wizard.Sections(s.detail)
	return Snapshot{
		App:      s.app,
		State:    s.state,
		Detail:   s.detail,
		Sections: secs,
		Progress: wizard.ProgressPct(s.app.SectionIndex, len(secs)),
	}
}

// ==================== Connectivity ====================

// SetBackendStatus records the outcome of a health probe; the monitor
// calls this from its own goroutine.
func (s *Session) SetBackendStatus(status gateway.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.BackendStatus = status.Status
}

// CheckBackend performs one on-demand probe and records the result.
func (s *Session) CheckBackend(ctx context.Context) gateway.Status {
	status := s.gw.CheckHealth(ctx)
	s.SetBackendStatus(status)
	return status
}

// ==================== Step-1 mutators ====================

func (s *Session) mutate(f func(wizard.State) wizard.State) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = f(s.state)
	return s.snapshotLocked()
}

func (s *Session) AddBrand() Snapshot { return s.mutate(wizard.AddBrand) }

func (s *Session) RemoveBrand(i int) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.RemoveBrand(st, i) })
}

func (s *Session) RenameBrand(i int, name string) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.RenameBrand(st, i, name) })
}

func (s *Session) SetSellerType(i int, sellerType string) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State {
		return wizard.SetSellerType(st, i, wizard.SellerType(sellerType))
	})
}

func (s *Session) AddCountry(i int) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.AddCountry(st, i) })
}

func (s *Session) RemoveCountry(i, j int) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.RemoveCountry(st, i, j) })
}

func (s *Session) SetCountryName(i, j int, name string) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.SetCountryName(st, i, j, name) })
}

func (s *Session) SetCountryCount(i, j int, raw string) Snapshot {
	return s.mutate(func(st wizard.State) wizard.State { return wizard.SetCountryCount(st, i, j, raw) })
}

// CountryOptions exposes the seller-type-dependent marketplace list to
// the renderer.
func (s *Session) CountryOptions(sellerType string) []string {
	return wizard.CountryOptions(wizard.SellerType(sellerType))
}

// ==================== Step transitions ====================

// AdvanceToDetails validates step 1 and, when clean, materializes the
// detail model and moves to step 2. Returns the validation errors
// otherwise; state is untouched on failure.
func (s *Session) AdvanceToDetails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := wizard.ValidateStep1(s.state); len(errs) > 0 {
		return errs
	}
	s.detail = wizard.BuildDetail(s.state)
	s.app.Step = wizard.StepDetails
	s.app.SectionIndex = 0
	return nil
}

// BackToBrands returns to step 1. The detail model is discarded; it is
// rebuilt from scratch on the next advance.
func (s *Session) BackToBrands() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = wizard.Detail{}
	s.app.Step = wizard.StepBrands
	s.app.SectionIndex = 0
	return s.snapshotLocked()
}

// ==================== Step-2 mutators ====================

func (s *Session) mutateDetail(f func(wizard.Detail) wizard.Detail) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = f(s.detail)
	return s.snapshotLocked()
}

func (s *Session) UpdateProductField(b, c, p int, field, value string) Snapshot {
	return s.mutateDetail(func(d wizard.Detail) wizard.Detail {
		return wizard.UpdateProductField(d, b, c, p, field, value)
	})
}

func (s *Session) AttachCSV(b, c, p int, file wizard.FilePayload) Snapshot {
	return s.mutateDetail(func(d wizard.Detail) wizard.Detail {
		return wizard.AttachCSV(d, b, c, p, &file)
	})
}

func (s *Session) ClearCSV(b, c, p int) Snapshot {
	return s.mutateDetail(func(d wizard.Detail) wizard.Detail {
		return wizard.AttachCSV(d, b, c, p, nil)
	})
}

func (s *Session) AddProduct(b, c int) Snapshot {
	return s.mutateDetail(func(d wizard.Detail) wizard.Detail { return wizard.AddProduct(d, b, c) })
}

func (s *Session) RemoveProduct(b, c, p int) Snapshot {
	return s.mutateDetail(func(d wizard.Detail) wizard.Detail { return wizard.RemoveProduct(d, b, c, p) })
}

// ==================== Section navigation ====================

func (s *Session) NextSection() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(wizard.Sections(s.detail))
	s.app.SectionIndex = wizard.NextSection(s.app.SectionIndex, n)
	return s.snapshotLocked()
}

func (s *Session) PrevSection() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(wizard.Sections(s.detail))
	s.app.SectionIndex = wizard.PrevSection(s.app.SectionIndex, n)
	return s.snapshotLocked()
}

// ==================== Submission ====================

// Submit runs the full submission flow: connectivity gate, step-2
// validation, file serialization, one gateway call. On success the whole
// form resets to a single empty brand back on step 1, strictly after
// the call resolves, never speculatively. On any failure the entered
// data is kept so the user can retry. The returned Alert is what the
// shell should display; the in-flight guard is cleared on every path.
func (s *Session) Submit(ctx context.Context) (gateway.Result, Alert) {
	s.mu.Lock()
	if s.app.Submitting {
		s.mu.Unlock()
		return gateway.Result{Success: false, Error: "submission already in progress"},
			Alert{Title: "Please wait", Message: "A submission is already in progress."}
	}
	if s.app.BackendStatus != wizard.StatusConnected {
		s.mu.Unlock()
		return gateway.Result{Success: false, Error: "backend disconnected"},
			Alert{Title: "Backend not connected", Message: "The backend is not reachable. Start it and try again."}
	}
	if errs := wizard.ValidateStep2(s.detail); len(errs) > 0 {
		s.mu.Unlock()
		return gateway.Result{Success: false, Error: "validation failed"},
			Alert{Title: "Please fix the following", Message: strings.Join(errs, "\n")}
	}

	s.app.Submitting = true
	payload, files := gateway.PayloadFromDetail(s.detail)
	s.mu.Unlock()

	// Single attempt; no retry, no cancellation of an in-flight call.
	res := s.gw.SubmitWithFiles(ctx, payload, files)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.app.Submitting = false

	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "submission failed"
		}
		return res, Alert{Title: "Submission failed", Message: msg}
	}

	// Success: reset to a single empty brand on step 1.
	s.state = wizard.NewState()
	s.detail = wizard.Detail{}
	status := s.app.BackendStatus
	s.app = wizard.NewAppState()
	s.app.BackendStatus = status

	msg := "Submission received."
	if m, ok := res.Data.(map[string]any); ok {
		if v, ok := m["message"].(string); ok && v != "" {
			msg = v
		}
	}
	return res, Alert{Title: "Submitted", Message: msg}
}

// SubmitManualCSV forwards a manual CSV run to the backend. The same
// connectivity gate applies; no form state is involved.
func (s *Session) SubmitManualCSV(ctx context.Context, form gateway.ManualCSVForm) (gateway.Result, Alert) {
	s.mu.Lock()
	connected := s.app.BackendStatus == wizard.StatusConnected
	s.mu.Unlock()

	if !connected {
		return gateway.Result{Success: false, Error: "backend disconnected"},
			Alert{Title: "Backend not connected", Message: "The backend is not reachable. Start it and try again."}
	}

	res := s.gw.SubmitManualCSV(ctx, form)
	if !res.Success {
		return res, Alert{Title: "Upload failed", Message: res.Error}
	}
	return res, Alert{Title: "Uploaded", Message: "Manual CSV accepted."}
}
