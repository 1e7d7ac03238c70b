package mapview

import (
	"fmt"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

type Icon struct {
	Category models.Category `json:"category"`
	Color    string          `json:"color"`
	Glyph    string          `json:"glyph"`
	SVG      string          `json:"svg"`
	Size     [2]int          `json:"size"`
	Anchor   [2]int          `json:"anchor"`
}

var iconStyles = map[models.Category]struct {
	color string
	glyph string
}{
	models.CategoryRestaurant:    {"#e4572e", "R"},
	models.CategoryCafe:          {"#8c5e3c", "C"},
	models.CategoryRetail:        {"#3f88c5", "S"},
	models.CategoryService:       {"#44bba4", "W"},
	models.CategoryEntertainment: {"#9b5de5", "E"},
}

const pinSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="28" height="40" viewBox="0 0 28 40">` +
	`<path d="M14 0C6.3 0 0 6.3 0 14c0 10.5 14 26 14 26s14-15.5 14-26C28 6.3 21.7 0 14 0z" fill="%s"/>` +
	`<circle cx="14" cy="14" r="8" fill="#fff"/>` +
	`<text x="14" y="18" font-size="11" font-family="sans-serif" text-anchor="middle" fill="%s">%s</text>` +
	`</svg>`

// IconFor returns the pin for a category. Unknown categories get a grey pin.
func IconFor(c models.Category) Icon {
	style, ok := iconStyles[c]
	if !ok {
		style.color, style.glyph = "#6c757d", "?"
	}
	return Icon{
		Category: c,
		Color:    style.color,
		Glyph:    style.glyph,
		SVG:      fmt.Sprintf(pinSVG, style.color, style.color, style.glyph),
		Size:     [2]int{28, 40},
		Anchor:   [2]int{14, 40},
	}
}

const userSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">` +
	`<circle cx="12" cy="12" r="8" fill="#3b82f6"/>` +
	`<circle cx="12" cy="12" r="3" fill="#fff"/>` +
	`</svg>`

// IconForUser is the dot drawn at the viewer's position, anchored at its centre.
func IconForUser() Icon {
	return Icon{
		Color:  "#3b82f6",
		SVG:    userSVG,
		Size:   [2]int{24, 24},
		Anchor: [2]int{12, 12},
	}
}
