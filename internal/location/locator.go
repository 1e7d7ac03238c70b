package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

var (
	ErrUnavailable      = errors.New("location unavailable")
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("location request timed out")
	ErrUnsupported      = errors.New("location capability not supported")
	ErrInvalid          = errors.New("invalid coordinate")
)

// Locator asks the host environment for the device position.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

type LocatorFunc func(ctx context.Context) (models.Coordinate, error)

func (f LocatorFunc) Locate(ctx context.Context) (models.Coordinate, error) {
	if f == nil {
		return models.Coordinate{}, ErrUnsupported
	}
	return f(ctx)
}

// Result is the outcome of a single acquisition.
type Result struct {
	Coordinate models.Coordinate
	Fallback   bool
	Err        error
}

func (r Result) Response() models.LocationResponse {
	resp := models.LocationResponse{Coordinate: r.Coordinate, Fallback: r.Fallback}
	if r.Err != nil {
		resp.Reason = r.Err.Error()
	}
	return resp
}

// Resolve issues exactly one Locate call. Any failure, a nil locator, or an
// out-of-range coordinate yields models.FallbackCoordinate. Failures are
// logged and counted but never returned. The locators in this package treat
// a nil receiver as ErrUnsupported, so typed nils fall back as well.
func Resolve(ctx context.Context, l Locator) Result {
	if l == nil {
		return fallback(ErrUnsupported)
	}

	c, err := l.Locate(ctx)
	if err == nil && !c.Valid() {
		err = fmt.Errorf("%w: (%f, %f)", ErrInvalid, c.Lat, c.Lng)
	}
	if err != nil {
		return fallback(err)
	}

	metrics.IncrementLocationResolved()
	return Result{Coordinate: c}
}

// Acquire is Resolve without the diagnostics.
func Acquire(ctx context.Context, l Locator) models.Coordinate {
	return Resolve(ctx, l).Coordinate
}

func fallback(err error) Result {
	metrics.IncrementLocationFallbacks()
	logger.Warn("location_fallback",
		"reason", err.Error(),
		"lat", models.FallbackCoordinate.Lat,
		"lng", models.FallbackCoordinate.Lng,
	)
	return Result{Coordinate: models.FallbackCoordinate, Fallback: true, Err: err}
}

// StaticLocator always reports the same position.
type StaticLocator struct {
	Coordinate models.Coordinate
}

func NewStaticLocator(lat, lng float64) *StaticLocator {
	return &StaticLocator{Coordinate: models.Coordinate{Lat: lat, Lng: lng}}
}

func (s *StaticLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	if s == nil {
		return models.Coordinate{}, ErrUnsupported
	}
	return s.Coordinate, nil
}

// FailingLocator reports a fixed error, standing in for a host without a
// usable location capability.
type FailingLocator struct {
	Err error
}

func (f FailingLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	if f.Err == nil {
		return models.Coordinate{}, ErrUnavailable
	}
	return models.Coordinate{}, f.Err
}

// Report is what a browser sends back after calling its geolocation API:
// either a position or one of the error codes below.
type Report struct {
	Lat   *float64 `json:"lat,omitempty" form:"lat"`
	Lng   *float64 `json:"lng,omitempty" form:"lng"`
	Error string   `json:"error,omitempty" form:"error"`
}

const (
	CodePermissionDenied    = "permission_denied"
	CodePositionUnavailable = "position_unavailable"
	CodeTimeout             = "timeout"
	CodeUnsupported         = "unsupported"
)

// ParseReport builds a Report from raw string values such as query
// parameters. Unparseable numbers are treated as absent.
func ParseReport(lat, lng, code string) Report {
	r := Report{Error: strings.TrimSpace(code)}
	if v, err := strconv.ParseFloat(strings.TrimSpace(lat), 64); err == nil {
		r.Lat = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(lng), 64); err == nil {
		r.Lng = &v
	}
	return r
}

// Locate implements Locator over a browser report.
func (r Report) Locate(ctx context.Context) (models.Coordinate, error) {
	switch strings.ToLower(r.Error) {
	case "":
	case CodePermissionDenied, "1":
		return models.Coordinate{}, ErrPermissionDenied
	case CodePositionUnavailable, "2":
		return models.Coordinate{}, ErrUnavailable
	case CodeTimeout, "3":
		return models.Coordinate{}, ErrTimeout
	case CodeUnsupported:
		return models.Coordinate{}, ErrUnsupported
	default:
		return models.Coordinate{}, fmt.Errorf("%w: %s", ErrUnavailable, r.Error)
	}

	if r.Lat == nil || r.Lng == nil {
		return models.Coordinate{}, ErrUnsupported
	}
	return models.Coordinate{Lat: *r.Lat, Lng: *r.Lng}, nil
}

// Once forwards only the first Locate call to the wrapped locator; later calls
// return the memoized result until Refresh is called.
type Once struct {
	mu     sync.Mutex
	inner  Locator
	done   bool
	result Result
}

func NewOnce(inner Locator) *Once {
	return &Once{inner: inner}
}

func (o *Once) Locate(ctx context.Context) (models.Coordinate, error) {
	if o == nil {
		return models.Coordinate{}, ErrUnsupported
	}
	r := o.Resolve(ctx)
	return r.Coordinate, nil
}

// Resolve returns the memoized result, acquiring it on first use.
func (o *Once) Resolve(ctx context.Context) Result {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.done {
		o.result = Resolve(ctx, o.inner)
		o.done = true
	}
	return o.result
}

// Refresh re-arms the wrapper, optionally swapping the inner locator.
func (o *Once) Refresh(inner Locator) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if inner != nil {
		o.inner = inner
	}
	o.done = false
	o.result = Result{}
}

func (o *Once) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}
