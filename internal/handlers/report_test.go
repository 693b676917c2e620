package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/akvideo/technikliste-backend/internal/latex"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/reports"
	"github.com/akvideo/technikliste-backend/internal/services"
)

type fakeReportService struct {
	buildResult  *services.BuildResult
	buildErr     error
	verifyResult *services.VerifyResult
	verifyErr    error
}

func (f *fakeReportService) Build(context.Context, services.BuildParams) (*services.BuildResult, error) {
	return f.buildResult, f.buildErr
}

func (f *fakeReportService) Verify(_ context.Context, id string) (*services.VerifyResult, error) {
	if !strings.HasPrefix(id, "GR") {
		// the real service validates first; mirror that here
		return nil, services.ErrInvalidCode
	}
	return f.verifyResult, f.verifyErr
}

func newReportRouter(svc services.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewReportHandler(svc)
	router.POST("/api/reports", handler.Build)
	router.GET("/api/reports/verify/:id", handler.Verify)
	return router
}

func TestBuildRespondsWithResult(t *testing.T) {
	svc := &fakeReportService{buildResult: &services.BuildResult{ID: "GRABCDEF", Filename: "technikliste_2021-04-03.pdf"}}
	router := newReportRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"sort_by":"Index"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "GRABCDEF") {
		t.Fatalf("body missing id: %s", w.Body.String())
	}
}

func TestBuildRejectsUnknownSortColumn(t *testing.T) {
	router := newReportRouter(&fakeReportService{})

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"sort_by":"DROP TABLE"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
}

func TestBuildMapsCompileFailureToRetryMessage(t *testing.T) {
	svc := &fakeReportService{buildErr: &latex.BuildError{Log: "boom"}}
	router := newReportRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status: got=%d want=502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Bitte versuche es in 2 Minuten erneut") {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestBuildMapsMissingAssetsToAdminMessage(t *testing.T) {
	svc := &fakeReportService{buildErr: fmt.Errorf("%w: read template: no such file", reports.ErrAssets)}
	router := newReportRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d want=500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Berichtsvorlage") {
		t.Fatalf("body: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "Datenbank") {
		t.Fatalf("asset failure reported as store failure: %s", w.Body.String())
	}
}

func TestVerifyMapsInvalidCode(t *testing.T) {
	svc := &fakeReportService{}
	router := newReportRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/verify/lowercase", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "genau 8 Großbuchstaben") {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestVerifyMapsNotFoundAndUnavailable(t *testing.T) {
	svc := &fakeReportService{verifyErr: repos.ErrNotFound}
	router := newReportRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/verify/GR234567", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("not found status: got=%d", w.Code)
	}

	svc.verifyErr = &latex.BuildError{Log: "boom"}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/verify/GR234567", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("compile failure status: got=%d", w.Code)
	}
}
