package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboard/spares-kiosk/internal/services"
	srvErrors "github.com/roboard/spares-kiosk/pkg/errors"
)

type Handler struct {
	partSrv     *services.PartService
	robSrv      *services.RobService
	wishlistSrv *services.WishlistService
	locationSrv *services.LocationService
	exportSrv   *services.ExportService
	importSrv   *services.ImportService
}

func New(
	partSrv *services.PartService,
	robSrv *services.RobService,
	wishlistSrv *services.WishlistService,
	locationSrv *services.LocationService,
	exportSrv *services.ExportService,
	importSrv *services.ImportService,
) *Handler {
	return &Handler{
		partSrv:     partSrv,
		robSrv:      robSrv,
		wishlistSrv: wishlistSrv,
		locationSrv: locationSrv,
		exportSrv:   exportSrv,
		importSrv:   importSrv,
	}
}

// Routes registers all kiosk API routes on the given group.
func (h *Handler) Routes(r *gin.RouterGroup) {
	r.POST("/import/parts", h.ImportParts)
	r.POST("/import/orders", h.ImportOrders)

	r.GET("/parts", h.SearchParts)
	r.GET("/simple_parts", h.SearchSimpleParts)

	r.GET("/wishlist", h.GetWishlist)
	r.POST("/wishlist/toggle/:part_number", h.ToggleWishlist)
	r.POST("/wishlist/export", h.ExportWishlist)

	r.GET("/rob", h.GetRob)
	r.POST("/rob/export", h.ExportRob)
	r.POST("/rob/:part_number", h.SetRob)

	r.GET("/locations", h.GetLocations)
	r.POST("/locations/set", h.SetLocation)
	r.POST("/locations/export", h.ExportLocations)
}

// respondError maps service errors onto HTTP statuses. Validation problems
// are the client's fault, unknown part numbers are 404, everything else is
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, logName string, err error) {
	switch {
	case srvErrors.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		zap.S().Named(logName).Errorw("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
