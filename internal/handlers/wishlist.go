package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roboard/spares-kiosk/internal/models"
)

// GetWishlist lists wishlisted parts with their metadata
// (GET /wishlist)
func (h *Handler) GetWishlist(c *gin.Context) {
	rows, err := h.wishlistSrv.List(c.Request.Context())
	if err != nil {
		respondError(c, "wishlist_handler", err)
		return
	}
	if rows == nil {
		rows = []models.WishlistRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// ToggleWishlist flips the wishlist membership of a part
// (POST /wishlist/toggle/{part_number})
func (h *Handler) ToggleWishlist(c *gin.Context) {
	status, err := h.wishlistSrv.Toggle(c.Request.Context(), c.Param("part_number"))
	if err != nil {
		respondError(c, "wishlist_handler", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ExportWishlist writes the wishlist to a spreadsheet and clears it
// (POST /wishlist/export)
func (h *Handler) ExportWishlist(c *gin.Context) {
	result, err := h.exportSrv.ExportWishlist(c.Request.Context())
	if err != nil {
		respondError(c, "wishlist_handler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exported_file":    result.ExportedFile,
		"export_dir":       result.ExportDir,
		"usb_detected":     result.USBDetected,
		"rows_exported":    result.RowsExported,
		"wishlist_cleared": result.Cleared,
	})
}
