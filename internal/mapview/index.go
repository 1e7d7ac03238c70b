package mapview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asim/quadtree"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

// Bounds is a viewport rectangle. Viewports crossing the antimeridian are not
// supported.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

func (b Bounds) Contains(c models.Coordinate) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lng >= b.West && c.Lng <= b.East
}

// ParseBBox parses "west,south,east,north".
func ParseBBox(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("bbox must be west,south,east,north")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("bbox value %q: %w", p, err)
		}
		v[i] = f
	}
	b := Bounds{West: v[0], South: v[1], East: v[2], North: v[3]}
	if b.South > b.North || b.West > b.East {
		return Bounds{}, fmt.Errorf("bbox is inverted")
	}
	if !(models.Coordinate{Lat: b.South, Lng: b.West}).Valid() || !(models.Coordinate{Lat: b.North, Lng: b.East}).Valid() {
		return Bounds{}, fmt.Errorf("bbox out of range")
	}
	return b, nil
}

// Index is a spatial index over one filtered list. It is rebuilt whenever the
// list changes, never updated in place.
type Index struct {
	tree *quadtree.QuadTree
	size int
}

type indexed struct {
	pos      int
	business models.Business
}

func NewIndex(businesses []models.Business) *Index {
	center := quadtree.NewPoint(0, 0, nil)
	half := quadtree.NewPoint(90, 180, nil)
	tree := quadtree.New(quadtree.NewAABB(center, half), 0, nil)

	for i, b := range businesses {
		tree.Insert(quadtree.NewPoint(b.Lat, b.Lng, indexed{pos: i, business: b}))
	}
	return &Index{tree: tree, size: len(businesses)}
}

func (idx *Index) Len() int { return idx.size }

// Within returns the indexed businesses inside b, in original list order.
func (idx *Index) Within(b Bounds) []models.Business {
	center := quadtree.NewPoint((b.South+b.North)/2, (b.West+b.East)/2, nil)
	half := quadtree.NewPoint((b.North-b.South)/2, (b.East-b.West)/2, nil)

	points := idx.tree.Search(quadtree.NewAABB(center, half))

	slots := make([]*models.Business, idx.size)
	for _, pt := range points {
		item, ok := pt.Data().(indexed)
		if !ok || !b.Contains(item.business.Position()) {
			continue
		}
		biz := item.business
		slots[item.pos] = &biz
	}

	out := make([]models.Business, 0, len(points))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
