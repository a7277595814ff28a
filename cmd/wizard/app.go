package main

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"amazon_intake_v1_202608/internal/gateway"
	"amazon_intake_v1_202608/internal/session"
	"amazon_intake_v1_202608/internal/wizard"
)

// App is the desktop bridge: it exposes the intake session to the
// frontend and shows native dialogs for alerts.
type App struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *session.Session
	gw      gateway.Gateway
}

func NewApp(gw gateway.Gateway) *App {
	return &App{
		session: session.New(gw),
		gw:      gw,
	}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	monitorCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	monitor := &gateway.Monitor{
		Gateway: a.gw,
		OnStatus: func(st gateway.Status) {
			a.session.SetBackendStatus(st)
			runtime.EventsEmit(a.ctx, "backend:status", st)
		},
	}
	go monitor.Run(monitorCtx)
}

func (a *App) shutdown(_ context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
}

// ==================== State ====================

func (a *App) GetSnapshot() session.Snapshot {
	return a.session.Snapshot()
}

// CheckBackendStatus runs one immediate health probe, outside the
// monitor's schedule.
func (a *App) CheckBackendStatus() gateway.Status {
	st := a.session.CheckBackend(a.ctx)
	runtime.EventsEmit(a.ctx, "backend:status", st)
	return st
}

// ==================== Step 1: brands ====================

func (a *App) AddBrand() session.Snapshot        { return a.session.AddBrand() }
func (a *App) RemoveBrand(i int) session.Snapshot { return a.session.RemoveBrand(i) }
func (a *App) RenameBrand(i int, name string) session.Snapshot {
	return a.session.RenameBrand(i, name)
}
func (a *App) SetSellerType(i int, sellerType string) session.Snapshot {
	return a.session.SetSellerType(i, sellerType)
}
func (a *App) AddCountry(i int) session.Snapshot { return a.session.AddCountry(i) }
func (a *App) RemoveCountry(i, j int) session.Snapshot {
	return a.session.RemoveCountry(i, j)
}
func (a *App) SetCountryName(i, j int, name string) session.Snapshot {
	return a.session.SetCountryName(i, j, name)
}
func (a *App) SetCountryCount(i, j int, raw string) session.Snapshot {
	return a.session.SetCountryCount(i, j, raw)
}
func (a *App) CountryOptions(sellerType string) []string {
	return a.session.CountryOptions(sellerType)
}

// ==================== Navigation ====================

// AdvanceToDetails validates step 1; on failure the errors are shown in
// a dialog and the wizard stays on step 1.
func (a *App) AdvanceToDetails() session.Snapshot {
	if errs := a.session.AdvanceToDetails(); len(errs) > 0 {
		a.showError("Please fix the following", strings.Join(errs, "\n"))
	}
	return a.session.Snapshot()
}

func (a *App) BackToBrands() session.Snapshot { return a.session.BackToBrands() }
func (a *App) NextSection() session.Snapshot  { return a.session.NextSection() }
func (a *App) PrevSection() session.Snapshot  { return a.session.PrevSection() }

// ==================== Step 2: products ====================

func (a *App) UpdateProductField(b, c, p int, field, value string) session.Snapshot {
	return a.session.UpdateProductField(b, c, p, field, value)
}

func (a *App) AddProduct(b, c int) session.Snapshot { return a.session.AddProduct(b, c) }
func (a *App) RemoveProduct(b, c, p int) session.Snapshot {
	return a.session.RemoveProduct(b, c, p)
}

// PickCSV opens a native file dialog and attaches the chosen CSV to the
// given product.
func (a *App) PickCSV(b, c, p int) session.Snapshot {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Choose CSV file",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV files (*.csv)", Pattern: "*.csv"},
		},
	})
	if err != nil || path == "" {
		return a.session.Snapshot()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.showError("File error", "Could not read "+path)
		return a.session.Snapshot()
	}
	return a.session.AttachCSV(b, c, p, wizard.FilePayload{
		Name: filepath.Base(path),
		Type: "text/csv",
		Data: data,
	})
}

// AttachCSVData attaches a CSV delivered by the frontend as base64, for
// drag-and-drop uploads that never touch a dialog.
func (a *App) AttachCSVData(b, c, p int, name, encoded string) session.Snapshot {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		a.showError("File error", "Could not decode "+name)
		return a.session.Snapshot()
	}
	return a.session.AttachCSV(b, c, p, wizard.FilePayload{
		Name: name,
		Type: "text/csv",
		Data: data,
	})
}

func (a *App) ClearCSV(b, c, p int) session.Snapshot { return a.session.ClearCSV(b, c, p) }

// ==================== Submission ====================

// SubmitFormWithFiles runs the gated single-attempt submission and
// surfaces the outcome in a dialog.
func (a *App) SubmitFormWithFiles() session.Snapshot {
	res, alert := a.session.Submit(a.ctx)
	if res.Success {
		a.showInfo(alert.Title, alert.Message)
	} else {
		a.showError(alert.Title, alert.Message)
	}
	return a.session.Snapshot()
}

// SubmitCsvUpload sends one CSV through the manual competitor picker.
func (a *App) SubmitCsvUpload(rowNumber int, country, keywordPhrase, sellerType string) session.Snapshot {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Choose CSV file",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV files (*.csv)", Pattern: "*.csv"},
		},
	})
	if err != nil || path == "" {
		return a.session.Snapshot()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.showError("File error", "Could not read "+path)
		return a.session.Snapshot()
	}

	res, alert := a.session.SubmitManualCSV(a.ctx, gateway.ManualCSVForm{
		File:          wizard.FilePayload{Name: filepath.Base(path), Type: "text/csv", Data: data},
		RowNumber:     rowNumber,
		Country:       country,
		KeywordPhrase: keywordPhrase,
		SellerType:    sellerType,
	})
	if res.Success {
		a.showInfo(alert.Title, alert.Message)
	} else {
		a.showError(alert.Title, alert.Message)
	}
	return a.session.Snapshot()
}

// ==================== Dialogs ====================

// ShowErrorDialog and ShowInfoDialog are also bound directly so the
// frontend can raise its own alerts through native dialogs.
func (a *App) ShowErrorDialog(title, message string) { a.showError(title, message) }
func (a *App) ShowInfoDialog(title, message string)  { a.showInfo(title, message) }

func (a *App) showError(title, message string) {
	_, _ = runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:    runtime.ErrorDialog,
		Title:   title,
		Message: message,
	})
}

func (a *App) showInfo(title, message string) {
	_, _ = runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:    runtime.InfoDialog,
		Title:   title,
		Message: message,
	})
}

// ShowConfirmationDialog asks a yes/no question and reports the choice.
func (a *App) ShowConfirmationDialog(title, message string) bool {
	choice, err := runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:          runtime.QuestionDialog,
		Title:         title,
		Message:       message,
		Buttons:       []string{"Yes", "No"},
		DefaultButton: "No",
	})
	if err != nil {
		return false
	}
	return choice == "Yes"
}
