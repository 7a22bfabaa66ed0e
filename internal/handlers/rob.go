package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboard/spares-kiosk/internal/models"
)

type robRequest struct {
	Rob *float64 `json:"rob" binding:"required"`
}

// GetRob lists all ROB records with part metadata
// (GET /rob)
func (h *Handler) GetRob(c *gin.Context) {
	rows, err := h.robSrv.List(c.Request.Context())
	if err != nil {
		respondError(c, "rob_handler", err)
		return
	}
	if rows == nil {
		rows = []models.RobListRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// SetRob stores or adjusts the remaining-on-board quantity of a part. A
// non-negative value is absolute, a negative one is a delta; the result
// never drops below zero
// (POST /rob/{part_number})
func (h *Handler) SetRob(c *gin.Context) {
	var req robRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rob value is required"})
		return
	}

	record, err := h.robSrv.Set(c.Request.Context(), c.Param("part_number"), *req.Rob)
	if err != nil {
		respondError(c, "rob_handler", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ExportRob writes the ROB records to a spreadsheet and clears them
// (POST /rob/export)
func (h *Handler) ExportRob(c *gin.Context) {
	result, err := h.exportSrv.ExportRob(c.Request.Context())
	if err != nil {
		respondError(c, "rob_handler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exported_file": result.ExportedFile,
		"export_dir":    result.ExportDir,
		"usb_detected":  result.USBDetected,
		"rows_exported": result.RowsExported,
		"rob_cleared":   result.Cleared,
	})
}
