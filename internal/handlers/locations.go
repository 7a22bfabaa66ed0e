package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboard/spares-kiosk/internal/models"
)

type locationRequest struct {
	PartNumber  string `json:"part_number"`
	NewLocation string `json:"new_location"`
	Note        string `json:"note"`
}

// GetLocations lists location overrides, newest first
// (GET /locations?q=&limit=)
func (h *Handler) GetLocations(c *gin.Context) {
	rows, err := h.locationSrv.List(c.Request.Context(), c.Query("q"), c.Query("limit"))
	if err != nil {
		respondError(c, "location_handler", err)
		return
	}
	if rows == nil {
		rows = []models.LocationRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// SetLocation upserts the manual location override for a part
// (POST /locations/set)
func (h *Handler) SetLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	override, err := h.locationSrv.Set(c.Request.Context(), req.PartNumber, req.NewLocation, req.Note)
	if err != nil {
		respondError(c, "location_handler", err)
		return
	}
	c.JSON(http.StatusOK, override)
}

// ExportLocations writes the overrides to a spreadsheet; overrides persist
// unless clearing is enabled in configuration
// (POST /locations/export)
func (h *Handler) ExportLocations(c *gin.Context) {
	result, err := h.exportSrv.ExportLocations(c.Request.Context())
	if err != nil {
		respondError(c, "location_handler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exported_file":     result.ExportedFile,
		"export_dir":        result.ExportDir,
		"usb_detected":      result.USBDetected,
		"rows_exported":     result.RowsExported,
		"locations_cleared": result.Cleared,
	})
}
