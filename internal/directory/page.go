package directory

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "page.tmpl"

// PageTemplate parses the embedded page templates for gin's HTML renderer.
func PageTemplate() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"rating": mapview.FormatRating,
		"icon":   mapview.IconFor,
		"stars":  stars,
	}).ParseFS(templateFS, "templates/*.tmpl"))
}

type pageData struct {
	Filters     models.Filters
	Categories  []CategoryOption
	RatingSteps []float64
	Businesses  []models.Business
	Count       int
	Total       int
	ShowMap     bool
	Scene       mapview.Scene
	Report      reportParams
}

// reportParams carries the last location report through filter submissions
// so the page is only located once until the viewer asks again.
type reportParams struct {
	Lat   string
	Lng   string
	Error string
}

func (r reportParams) Empty() bool {
	return r.Lat == "" && r.Lng == "" && r.Error == ""
}

// ratingOptions returns the selector steps plus current when it is not one of
// them, so the selector always shows the threshold the grid was filtered by.
func ratingOptions(current float64) []float64 {
	steps := RatingSteps()
	if models.IsRatingStep(current) {
		return steps
	}
	out := make([]float64, 0, len(steps)+1)
	inserted := false
	for _, s := range steps {
		if !inserted && current < s {
			out = append(out, current)
			inserted = true
		}
		out = append(out, s)
	}
	if !inserted {
		out = append(out, current)
	}
	return out
}

// Page renders the directory as HTML. The map overlay is included when the
// map query parameter is set.
func (h *Handler) Page(c *gin.Context) {
	filters, list, ok := h.visible(c)
	if !ok {
		return
	}
	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}

	data := pageData{
		Filters:     filters,
		Categories:  Categories(),
		RatingSteps: ratingOptions(filters.MaxRating),
		Businesses:  list,
		Count:       len(list),
		Total:       len(all),
		ShowMap:     c.Query("map") == "1" || c.Query("map") == "true",
		Report:      reportParams{Lat: c.Query("lat"), Lng: c.Query("lng"), Error: c.Query("error")},
	}

	if data.ShowMap {
		center, _ := h.center(c)
		p := mapview.NewLeafletProvider()
		if err := h.overlay.Render(p, list, center); err != nil {
			h.log.Error("map_render_failed", "error", err.Error())
			data.ShowMap = false
		} else {
			data.Scene = p.Scene()
		}
	}

	c.HTML(http.StatusOK, pageTemplate, data)
}

// stars renders a rating as five filled or empty glyphs, rounding to the
// nearest whole star.
func stars(r float64) string {
	full := int(r + 0.5)
	out := make([]rune, 0, 5)
	for i := 0; i < 5; i++ {
		if i < full {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
