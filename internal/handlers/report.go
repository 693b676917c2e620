package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akvideo/technikliste-backend/internal/latex"
	"github.com/akvideo/technikliste-backend/internal/repos"
	"github.com/akvideo/technikliste-backend/internal/reports"
	"github.com/akvideo/technikliste-backend/internal/services"
)

const (
	msgCompileFailed = "PDF konnte leider nicht generiert werden. Bitte versuche es in 2 Minuten erneut."
	msgDBUnavailable = "Leider konnte keine Verbindung zur Datenbank hergestellt werden."
	msgNoDocument    = "Leider konnte kein passendes Dokument gefunden werden."
	msgAssetsBroken  = "Die Berichtsvorlage konnte nicht geladen werden. Bitte kontaktiere den Administrator."
	msgInvalidCode   = "Die ID muss aus einer Kombination von genau 8 Großbuchstaben (A-Z) und/oder Ziffern (2-9) bestehen."
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type buildRequest struct {
	searchRequest
}

func (rh *ReportHandler) Build(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	result, err := rh.reportService.Build(c.Request.Context(), services.BuildParams{
		Filter:  req.DeviceFilter,
		SortBy:  req.SortBy,
		SortBy2: req.SortBy2,
		Order:   req.Order,
	})
	if err != nil {
		var buildErr *latex.BuildError
		switch {
		case errors.As(err, &buildErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": msgCompileFailed})
		case errors.Is(err, reports.ErrAssets):
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgAssetsBroken})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgDBUnavailable})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (rh *ReportHandler) Verify(c *gin.Context) {
	result, err := rh.reportService.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCode})
		case errors.Is(err, repos.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgNoDocument})
		default:
			var buildErr *latex.BuildError
			if errors.As(err, &buildErr) {
				c.JSON(http.StatusBadGateway, gin.H{"error": msgCompileFailed})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgDBUnavailable})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
