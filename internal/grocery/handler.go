package grocery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every grocery endpoint answers with
type APIResponse struct {
	Data      any       `json:"data"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{
		Data:      data,
		Success:   true,
		Timestamp: time.Now().UTC(),
	})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// GET /api/groceries/search?query=&category=&limit=
func (h *Handler) Search(c *gin.Context) {
	params := SearchParams{
		Query:    c.Query("query"),
		Category: c.Query("category"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			fail(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		params.Limit = limit
	}

	result, err := h.service.SearchGroceries(c.Request.Context(), params)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, result)
}

// GET /api/groceries/suggestions?query=
func (h *Handler) Suggestions(c *gin.Context) {
	names, err := h.service.GetSuggestions(c.Request.Context(), c.Query("query"))
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, names)
}

// GET /api/groceries/compare?item=
func (h *Handler) Compare(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		fail(c, http.StatusBadRequest, "item is required")
		return
	}

	result, err := h.service.GetPriceComparison(c.Request.Context(), item)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			fail(c, http.StatusNotFound, "no price data for "+item)
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, result)
}

// GET /api/stores
func (h *Handler) Stores(c *gin.Context) {
	stores, err := h.service.GetStores(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, stores)
}

// POST /api/lists/estimate
func (h *Handler) EstimateList(c *gin.Context) {
	var req struct {
		Name  string     `json:"name"`
		Items []ListLine `json:"items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		fail(c, http.StatusBadRequest, "items are required")
		return
	}

	list, err := h.service.EstimateList(c.Request.Context(), req.Name, req.Items)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, list)
}
