package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/akvideo/technikliste-backend/internal/latex"
	"github.com/akvideo/technikliste-backend/internal/logger"
	"github.com/akvideo/technikliste-backend/internal/reportid"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/reports"
)

// ErrInvalidCode rejects verification input that is not syntactically a
// report code. The store is never consulted for these.
var ErrInvalidCode = errors.New("verification code has invalid syntax")

// WarnVerificationUnavailable is the user facing downgrade message when a
// report had to be issued without a verification code.
const WarnVerificationUnavailable = "Datenbankverbindung konnte nicht hergestellt werden. Verifizierung wird für dieses Dokument nicht möglich sein."

type BuildParams struct {
	Filter  DeviceFilter
	SortBy  string
	SortBy2 string
	Order   string
}

type BuildResult struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	Devices      int      `json:"devices"`
	PDFBase64    string   `json:"pdf_base64"`
	DownloadLink string   `json:"download_link"`
	Warnings     []string `json:"warnings"`
}

type VerifyResult struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generated_at"`
	Devices      int       `json:"devices"`
	Query        string    `json:"query"`
	Message      string    `json:"message"`
	Filename     string    `json:"filename"`
	PDFBase64    string    `json:"pdf_base64"`
	DownloadLink string    `json:"download_link"`
}

type ReportService interface {
	// Build renders the current selection as a PDF report. A failing store
	// degrades to a report without verification code, a failing compile is
	// an error.
	Build(ctx context.Context, params BuildParams) (*BuildResult, error)
	// Verify reproduces the original PDF for a report code.
	Verify(ctx context.Context, id string) (*VerifyResult, error)
}

type reportService struct {
	deviceRepo repos.DeviceRepo
	verifyRepo repos.VerificationRepo
	filler     *reports.Filler
	compiler   latex.Compiler
	log        *logger.Logger
}

func NewReportService(
	deviceRepo repos.DeviceRepo,
	verifyRepo repos.VerificationRepo,
	filler *reports.Filler,
	compiler latex.Compiler,
	baseLog *logger.Logger,
) ReportService {
	return &reportService{
		deviceRepo: deviceRepo,
		verifyRepo: verifyRepo,
		filler:     filler,
		compiler:   compiler,
		log:        baseLog.With("service", "ReportService"),
	}
}

func (rs *reportService) Build(ctx context.Context, params BuildParams) (*BuildResult, error) {
	all, err := rs.deviceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	selected := SelectDevices(all, params.Filter)
	selected = SortDevices(selected, params.SortBy, params.SortBy2, params.Order)
	filtersActive := len(selected) != len(all)

	document, uniqueID, err := rs.filler.Fill(ctx, filtersActive, params.SortBy, params.SortBy2, params.Order, selected)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if uniqueID == "" {
		warnings = append(warnings, WarnVerificationUnavailable)
	}

	pdf, err := rs.compiler.Compile(ctx, document)
	if err != nil {
		return nil, err
	}

	if uniqueID != "" {
		if err := rs.verifyRepo.Save(ctx, document, uniqueID, len(selected), FilterQueryString(params.Filter)); err != nil {
			rs.log.Warn("Report saved without verification record", "id", uniqueID, "error", err)
			warnings = append(warnings, WarnVerificationUnavailable)
		}
	}

	filename := reportFilename(time.Now())
	pdfBase64 := base64.StdEncoding.EncodeToString(pdf)
	return &BuildResult{
		ID:           uniqueID,
		Filename:     filename,
		Devices:      len(selected),
		PDFBase64:    pdfBase64,
		DownloadLink: downloadLink(pdfBase64, filename, "PDF Datei Herunterladen"),
		Warnings:     warnings,
	}, nil
}

func (rs *reportService) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	if !reportid.Valid(id) {
		return nil, ErrInvalidCode
	}

	record, err := rs.verifyRepo.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf, err := rs.compiler.Compile(ctx, record.Tex)
	if err != nil {
		return nil, err
	}

	filename := reportFilename(record.Timestamp)
	pdfBase64 := base64.StdEncoding.EncodeToString(pdf)
	return &VerifyResult{
		ID:          record.ID,
		GeneratedAt: record.Timestamp,
		Devices:     record.Devices,
		Query:       record.Query,
		Message: fmt.Sprintf("Das Dokument wurde am %s generiert und enthält %d Geräte.",
			record.Timestamp.Format("02.01.2006 um 15:04"), record.Devices),
		Filename:     filename,
		PDFBase64:    pdfBase64,
		DownloadLink: downloadLink(pdfBase64, filename, "Orginal Herunterladen"),
	}, nil
}

func reportFilename(t time.Time) string {
	return "technikliste_" + t.Format("2006-01-02") + ".pdf"
}

func downloadLink(pdfBase64, filename, label string) string {
	return fmt.Sprintf(`<a href="data:file/pdf;base64,%s" download="%s">%s</a>`, pdfBase64, filename, label)
}
