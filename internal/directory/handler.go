package directory

import (
	"errors"
	"net/http"

	"github.com/binhbb2204/Business-Directory-Group13/internal/location"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/gin-gonic/gin"
)

// Handler serves the directory over HTTP.
type Handler struct {
	repo    Repository
	overlay *mapview.Overlay
	log     *logger.Logger
}

func NewHandler(repo Repository, overlay *mapview.Overlay) *Handler {
	if overlay == nil {
		overlay = mapview.NewOverlay(0, "", "")
	}
	return &Handler{
		repo:    repo,
		overlay: overlay,
		log:     logger.WithContext("component", "directory_handler"),
	}
}

// Register mounts the directory routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Page)
	r.GET("/businesses", h.ListBusinesses)
	r.GET("/businesses/:id", h.GetBusiness)
	r.GET("/filters", h.Filters)
	r.GET("/location", h.Location)
	r.GET("/map", h.Map)
	r.GET("/map.geojson", h.MapGeoJSON)
}

// visible parses the filter query and returns the filtered list. On failure
// it has already written the error response.
func (h *Handler) visible(c *gin.Context) (models.Filters, []models.Business, bool) {
	var req models.FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Filters{}, nil, false
	}

	filters, err := ParseFilters(req.Category, req.MaxRating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Filters{}, nil, false
	}

	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.log.Error("list_businesses_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return models.Filters{}, nil, false
	}

	metrics.IncrementFilterEvaluations()
	return filters, Filter(all, filters.Category, filters.MaxRating), true
}

// ListBusinesses returns the businesses matching the category and max_rating
// query parameters.
func (h *Handler) ListBusinesses(c *gin.Context) {
	filters, list, ok := h.visible(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.BusinessListResponse{
		Businesses: list,
		Count:      len(list),
		Filters:    filters,
	})
}

func (h *Handler) GetBusiness(c *gin.Context) {
	b, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		h.log.Error("get_business_failed", "id", c.Param("id"), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) Filters(c *gin.Context) {
	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.log.Error("list_businesses_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}
	c.JSON(http.StatusOK, Summarize(all))
}

// Location resolves the coordinates a browser reported, substituting the
// fallback coordinate when the report carries an error or no position.
func (h *Handler) Location(c *gin.Context) {
	report := location.ParseReport(c.Query("lat"), c.Query("lng"), c.Query("error"))
	c.JSON(http.StatusOK, location.Resolve(c.Request.Context(), report).Response())
}

// center picks the map centre from the request. A request without any
// location parameters has not been located yet and uses the fallback quietly.
func (h *Handler) center(c *gin.Context) (models.Coordinate, bool) {
	if c.Query("lat") == "" && c.Query("lng") == "" && c.Query("error") == "" {
		return models.FallbackCoordinate, false
	}
	r := location.Resolve(c.Request.Context(), location.ParseReport(c.Query("lat"), c.Query("lng"), c.Query("error")))
	return r.Coordinate, !r.Fallback
}

// inViewport narrows list to the optional bbox parameter.
func (h *Handler) inViewport(c *gin.Context, list []models.Business) ([]models.Business, bool) {
	raw := c.Query("bbox")
	if raw == "" {
		return list, true
	}
	bounds, err := mapview.ParseBBox(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return mapview.NewIndex(list).Within(bounds), true
}

// Map returns the Leaflet scene for the filtered list.
func (h *Handler) Map(c *gin.Context) {
	filters, list, ok := h.visible(c)
	if !ok {
		return
	}
	list, ok = h.inViewport(c, list)
	if !ok {
		return
	}
	center, located := h.center(c)

	p := mapview.NewLeafletProvider()
	if err := h.overlay.Render(p, list, center); err != nil {
		h.log.Error("map_render_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render map"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scene":   p.Scene(),
		"count":   len(list),
		"filters": filters,
		"located": located,
	})
}

func (h *Handler) MapGeoJSON(c *gin.Context) {
	_, list, ok := h.visible(c)
	if !ok {
		return
	}
	list, ok = h.inViewport(c, list)
	if !ok {
		return
	}
	center, _ := h.center(c)

	p := mapview.NewGeoJSONProvider()
	if err := h.overlay.Render(p, list, center); err != nil {
		h.log.Error("geojson_render_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render map"})
		return
	}
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, p.Collection())
}
