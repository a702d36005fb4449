package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildco/catalog/internal/domain"
	"github.com/buildco/catalog/internal/usecase"
)

const (
	serviceName    = "catalog-backend"
	serviceVersion = "1.0.0"

	notFoundMessage = "not found"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search *usecase.CatalogSearch
	relay  domain.ContactRelay
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler. relay may be nil when the contact
// form is not configured.
func NewHandler(search *usecase.CatalogSearch, relay domain.ContactRelay, logger *zap.Logger) *Handler {
	if search == nil {
		search = usecase.NewCatalogSearch(nil, nil, usecase.CatalogSearchConfig{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{search: search, relay: relay, logger: logger}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  serviceName,
		"version":  serviceVersion,
		"products": h.search.Index().Len(),
	})
}

// GetCatalog returns the loaded catalog document
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.Catalog())
}

// ListBrands returns the selectable brand buckets, all-products first
func (h *Handler) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"brands": h.search.Brands(),
		"empty":  h.search.Index().Empty(),
	})
}

// ListProducts returns a brand bucket narrowed by the q query parameter
func (h *Handler) ListProducts(c *gin.Context) {
	brand := c.Param("brand")
	query := c.Query("q")

	group, err := h.search.Products(c.Request.Context(), brand, query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{
		"brand":    group.Brand,
		"query":    query,
		"products": group.Products,
	}
	if len(group.Products) == 0 {
		resp["message"] = notFoundMessage
	}
	c.JSON(http.StatusOK, resp)
}

// Suggest returns ranked autocomplete hits across the whole catalog
func (h *Handler) Suggest(c *gin.Context) {
	query := c.Query("q")

	hits, err := h.search.Suggest(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"hits":  hits,
		"panel": usecase.PanelStateFor(query, hits).String(),
	})
}

// SubmitContact relays a contact form submission
func (h *Handler) SubmitContact(c *gin.Context) {
	if h.relay == nil {
		h.respondError(c, domain.ErrRelayNotConfigured)
		return
	}

	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.relay.Submit(c.Request.Context(), &msg); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// respondError maps domain errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrBrandNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrRelayNotConfigured):
		status = http.StatusNotImplemented
	case errors.Is(err, domain.ErrRelayFailure):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
