package insights

import (
	"errors"
	"net/http"
	"time"

	"smartshopper/internal/grocery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, grocery.APIResponse{
		Data:      data,
		Success:   status < http.StatusBadRequest,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// GET /api/insights/categories
func (h *Handler) Categories(c *gin.Context) {
	snapshots, err := h.service.CategorySnapshots(c.Request.Context())
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, err.Error())
		return
	}

	respond(c, http.StatusOK, snapshots, "")
}

// GET /api/insights/categories/:category
func (h *Handler) Category(c *gin.Context) {
	category := c.Param("category")

	snapshot, err := h.service.CategorySnapshot(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			respond(c, http.StatusNotFound, nil, "no data available for "+category)
			return
		}
		respond(c, http.StatusInternalServerError, nil, err.Error())
		return
	}

	respond(c, http.StatusOK, snapshot, "")
}

// GET /api/insights/stores
func (h *Handler) Stores(c *gin.Context) {
	standings, err := h.service.StoreStandings(c.Request.Context())
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, err.Error())
		return
	}

	respond(c, http.StatusOK, standings, "")
}
