package mapview

import (
	"errors"
	"fmt"
	"testing"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/google/go-cmp/cmp"
)

// recordingProvider logs every call so tests can assert on the exact
// sequence the overlay issues.
type recordingProvider struct {
	calls   []string
	failOn  string
	options MapOptions
	markers []Marker
	infos   map[string]InfoWindow
}

func (r *recordingProvider) CreateMap(opts MapOptions) error {
	r.calls = append(r.calls, "create")
	r.options = opts
	r.infos = map[string]InfoWindow{}
	if r.failOn == "create" {
		return errors.New("boom")
	}
	return nil
}

func (r *recordingProvider) AddMarker(m Marker) error {
	r.calls = append(r.calls, "marker:"+m.ID)
	if r.failOn == "marker:"+m.ID {
		return errors.New("boom")
	}
	r.markers = append(r.markers, m)
	return nil
}

func (r *recordingProvider) ShowInfo(id string, info InfoWindow) error {
	r.calls = append(r.calls, "info:"+id)
	r.infos[id] = info
	return nil
}

var sample = []models.Business{
	{ID: "a", Name: "Cafe A", Type: models.CategoryCafe, Rating: 2.04, ReviewCount: 3, Address: "1 A St", Lat: 37.77, Lng: -122.41},
	{ID: "b", Name: "Diner B", Type: models.CategoryRestaurant, Rating: 4.05, ReviewCount: 40, Address: "2 B St", Lat: 37.78, Lng: -122.42},
}

func TestRenderCallSequence(t *testing.T) {
	p := &recordingProvider{}
	o := NewOverlay(0, "", "")
	center := models.Coordinate{Lat: 1, Lng: 2}

	if err := o.Render(p, sample, center); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"create", "marker:" + UserMarkerID, "marker:a", "info:a", "marker:b", "info:b"}
	if diff := cmp.Diff(want, p.calls); diff != "" {
		t.Fatalf("call sequence (-want +got):\n%s", diff)
	}
	if p.options.Center != center || p.options.Zoom != DefaultZoom || p.options.TileURL != DefaultTileURL {
		t.Fatalf("unexpected map options: %+v", p.options)
	}
	if p.markers[2].Icon.Category != models.CategoryRestaurant || p.markers[2].Position.Lat != 37.78 {
		t.Fatalf("unexpected marker: %+v", p.markers[2])
	}

	info := p.infos["a"]
	if info.Rating != "2.0" || info.Category != "Cafe" || info.ReviewCount != 3 || info.Address != "1 A St" {
		t.Fatalf("unexpected info window: %+v", info)
	}
}

func TestRenderMarksUserLocation(t *testing.T) {
	p := &recordingProvider{}
	here := models.Coordinate{Lat: 40.7128, Lng: -74.006}
	if err := NewOverlay(0, "", "").Render(p, sample, here); err != nil {
		t.Fatalf("render: %v", err)
	}

	user := p.markers[0]
	if user.ID != UserMarkerID || user.Kind != MarkerUser || user.Title != "Your Location" {
		t.Fatalf("unexpected user marker: %+v", user)
	}
	if user.Position != here || user.Icon.Anchor != [2]int{12, 12} || user.Icon.SVG == "" {
		t.Fatalf("user marker not at centre: %+v", user)
	}
	if _, ok := p.infos[UserMarkerID]; ok {
		t.Fatal("user marker must not get an info window")
	}
	for _, m := range p.markers[1:] {
		if m.Kind != MarkerBusiness {
			t.Fatalf("business marker %s has kind %q", m.ID, m.Kind)
		}
	}
}

func TestRenderEmptyListOnlyMarksUser(t *testing.T) {
	p := &recordingProvider{}
	if err := NewOverlay(10, "", "").Render(p, nil, models.FallbackCoordinate); err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"create", "marker:" + UserMarkerID}, p.calls); diff != "" {
		t.Fatalf("calls (-want +got):\n%s", diff)
	}
}

func TestRenderStopsOnProviderError(t *testing.T) {
	p := &recordingProvider{failOn: "marker:a"}
	err := NewOverlay(0, "", "").Render(p, sample, models.FallbackCoordinate)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(p.calls) != 3 {
		t.Fatalf("expected rendering to stop after failing marker, calls=%v", p.calls)
	}

	p = &recordingProvider{failOn: "create"}
	if err := NewOverlay(0, "", "").Render(p, sample, models.FallbackCoordinate); err == nil {
		t.Fatal("expected create error")
	}
}

func TestFormatRating(t *testing.T) {
	cases := map[float64]string{0: "0.0", 4.25: "4.2", 4.26: "4.3", 5: "5.0", 3.96: "4.0"}
	for in, want := range cases {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestLeafletProviderScene(t *testing.T) {
	p := NewLeafletProvider()
	if err := p.AddMarker(Marker{ID: "x"}); !errors.Is(err, ErrMapNotCreated) {
		t.Fatalf("expected ErrMapNotCreated, got %v", err)
	}

	list := fixture.MustBusinesses()
	if err := NewOverlay(0, "", "").Render(p, list, models.FallbackCoordinate); err != nil {
		t.Fatalf("render: %v", err)
	}

	scene := p.Scene()
	if len(scene.Markers) != len(list)+1 || len(scene.Info) != len(list) {
		t.Fatalf("expected %d markers and %d infos, got %d/%d", len(list)+1, len(list), len(scene.Markers), len(scene.Info))
	}
	if scene.Markers[0].ID != UserMarkerID || scene.Markers[0].Position != models.FallbackCoordinate {
		t.Fatalf("first marker should be the user: %+v", scene.Markers[0])
	}
	for i, m := range scene.Markers[1:] {
		if m.ID != list[i].ID {
			t.Fatalf("marker %d is %s, want %s", i, m.ID, list[i].ID)
		}
	}

	if err := p.ShowInfo("nope", InfoWindow{}); !errors.Is(err, ErrUnknownMarker) {
		t.Fatalf("expected ErrUnknownMarker, got %v", err)
	}
	if err := p.AddMarker(Marker{ID: list[0].ID}); err == nil {
		t.Fatal("expected duplicate marker error")
	}

	if err := p.CreateMap(MapOptions{Center: models.Coordinate{Lat: 100}}); err == nil {
		t.Fatal("expected invalid center error")
	}
}

func TestLeafletCreateMapResetsScene(t *testing.T) {
	p := NewLeafletProvider()
	o := NewOverlay(0, "", "")
	o.Render(p, sample, models.FallbackCoordinate)
	o.Render(p, sample[:1], models.FallbackCoordinate)

	if n := len(p.Scene().Markers); n != 2 {
		t.Fatalf("expected scene reset to user plus 1 marker, got %d", n)
	}
}

func TestGeoJSONProvider(t *testing.T) {
	p := NewGeoJSONProvider()
	if err := NewOverlay(0, "", "").Render(p, sample, models.FallbackCoordinate); err != nil {
		t.Fatalf("render: %v", err)
	}

	fc := p.Collection()
	if fc.Type != "FeatureCollection" || len(fc.Features) != 3 {
		t.Fatalf("unexpected collection: %+v", fc)
	}
	if fc.Features[0].Properties["kind"] != "user" {
		t.Fatalf("expected user feature first: %+v", fc.Features[0])
	}
	f := fc.Features[2]
	if f.Geometry.Coordinates != [2]float64{-122.42, 37.78} {
		t.Fatalf("coordinates must be lng,lat: %v", f.Geometry.Coordinates)
	}
	if f.Properties["rating"] != "4.0" && f.Properties["rating"] != "4.1" {
		t.Fatalf("unexpected rating property: %v", f.Properties["rating"])
	}
	if p.Options().Zoom != DefaultZoom {
		t.Fatalf("unexpected options: %+v", p.Options())
	}
}

func TestIconForEveryCategory(t *testing.T) {
	colors := map[string]bool{}
	for _, c := range models.Categories {
		icon := IconFor(c)
		if icon.SVG == "" || icon.Color == "" {
			t.Fatalf("empty icon for %s", c)
		}
		colors[icon.Color] = true
	}
	if len(colors) != len(models.Categories) {
		t.Fatalf("expected distinct colors per category, got %d", len(colors))
	}
	if IconFor("bakery").Glyph != "?" {
		t.Fatal("expected fallback glyph for unknown category")
	}
}

func ExampleFormatRating() {
	fmt.Println(FormatRating(4.25), FormatRating(3))
	// Output: 4.2 3.0
}
