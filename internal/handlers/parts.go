package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roboard/spares-kiosk/internal/models"
	"github.com/roboard/spares-kiosk/internal/services"
)

// SearchParts runs the tokenized multi-field search
// (GET /parts?q=&field=&limit=)
func (h *Handler) SearchParts(c *gin.Context) {
	rows, err := h.partSrv.Search(c.Request.Context(), services.SearchParams{
		Query: c.Query("q"),
		Field: c.DefaultQuery("field", "all"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		respondError(c, "parts_handler", err)
		return
	}
	if rows == nil {
		rows = []models.PartSearchRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// SearchSimpleParts runs the reduced single-substring search
// (GET /simple_parts?q=&field=&limit=)
func (h *Handler) SearchSimpleParts(c *gin.Context) {
	rows, err := h.partSrv.SimpleSearch(c.Request.Context(), services.SearchParams{
		Query: c.Query("q"),
		Field: c.DefaultQuery("field", "all"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		respondError(c, "parts_handler", err)
		return
	}
	if rows == nil {
		rows = []models.PartSearchRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// ImportParts replaces the parts table from an uploaded workbook
// (POST /import/parts)
func (h *Handler) ImportParts(c *gin.Context) {
	path, cleanup, ok := saveUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.importSrv.ImportParts(c.Request.Context(), path)
	if err != nil {
		respondError(c, "import_handler", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportOrders replaces the orders table from an uploaded workbook
// (POST /import/orders)
func (h *Handler) ImportOrders(c *gin.Context) {
	path, cleanup, ok := saveUpload(c)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.importSrv.ImportOrders(c.Request.Context(), path)
	if err != nil {
		respondError(c, "import_handler", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// saveUpload validates the multipart "file" field and writes it to a temp
// file. On failure the HTTP response is already written and ok is false.
func saveUpload(c *gin.Context) (path string, cleanup func(), ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return "", nil, false
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload an .xlsx file"})
		return "", nil, false
	}

	tmp, err := os.CreateTemp("", "spares-upload-*.xlsx")
	if err != nil {
		respondError(c, "import_handler", err)
		return "", nil, false
	}
	tmp.Close()

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		respondError(c, "import_handler", err)
		return "", nil, false
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, true
}
