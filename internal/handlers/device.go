package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akvideo/technikliste-backend/internal/services"
)

type DeviceHandler struct {
	deviceService services.DeviceService
}

func NewDeviceHandler(deviceService services.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

func (dh *DeviceHandler) List(c *gin.Context) {
	devices, err := dh.deviceService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Leider konnte keine Verbindung zur Datenbank hergestellt werden."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

type searchRequest struct {
	services.DeviceFilter
	SortBy  string `json:"sort_by"`
	SortBy2 string `json:"sort_by2"`
	Order   string `json:"order"`
}

func (r *searchRequest) applyDefaults() {
	if r.SortBy == "" {
		r.SortBy = "Index"
	}
	if r.SortBy2 == "" {
		r.SortBy2 = r.SortBy
	}
	if r.Order == "" {
		r.Order = services.OrderAscending
	}
}

func (r *searchRequest) validate() string {
	if !services.ValidSortColumn(r.SortBy) || !services.ValidSortColumn(r.SortBy2) {
		return "Unbekannte Sortierspalte."
	}
	if r.Order != services.OrderAscending && r.Order != services.OrderDescending {
		return "Unbekannte Sortierreihenfolge."
	}
	return ""
}

func (dh *DeviceHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.applyDefaults()
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	devices, err := dh.deviceService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Leider konnte keine Verbindung zur Datenbank hergestellt werden."})
		return
	}
	selected := services.SelectDevices(devices, req.DeviceFilter)
	selected = services.SortDevices(selected, req.SortBy, req.SortBy2, req.Order)
	c.JSON(http.StatusOK, gin.H{"devices": selected, "total": len(devices)})
}

func (dh *DeviceHandler) Overview(c *gin.Context) {
	overview, err := dh.deviceService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Leider konnte keine Verbindung zur Datenbank hergestellt werden."})
		return
	}
	c.JSON(http.StatusOK, overview)
}
