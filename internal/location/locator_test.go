package location

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

func init() {
	logger.Init(logger.INFO, false, nil)
}

var fallbackCoord = models.Coordinate{Lat: 37.7749, Lng: -122.4194}

func TestAcquireFallsBackOnFailure(t *testing.T) {
	failures := map[string]Locator{
		"nil locator":       nil,
		"nil static":        (*StaticLocator)(nil),
		"nil func":          LocatorFunc(nil),
		"nil once":          (*Once)(nil),
		"permission denied": FailingLocator{Err: ErrPermissionDenied},
		"default failure":   FailingLocator{},
		"out of range":      NewStaticLocator(120, 0),
		"nan":               NewStaticLocator(math.NaN(), 0),
		"browser error":     ParseReport("", "", CodeTimeout),
		"no coordinates":    Report{},
	}

	for name, l := range failures {
		t.Run(name, func(t *testing.T) {
			got := Acquire(context.Background(), l)
			if got != fallbackCoord {
				t.Fatalf("expected fallback %v, got %v", fallbackCoord, got)
			}
		})
	}
}

func TestResolveSuccess(t *testing.T) {
	metrics.Reset()
	r := Resolve(context.Background(), NewStaticLocator(51.5072, -0.1276))

	if r.Fallback || r.Err != nil {
		t.Fatalf("unexpected fallback: %+v", r)
	}
	if r.Coordinate != (models.Coordinate{Lat: 51.5072, Lng: -0.1276}) {
		t.Fatalf("unexpected coordinate: %v", r.Coordinate)
	}
	if metrics.GetLocationResolved() != 1 || metrics.GetLocationFallbacks() != 0 {
		t.Fatal("metrics not recorded")
	}
}

func TestResolveTypedNilIsUnsupported(t *testing.T) {
	var s *StaticLocator
	r := Resolve(context.Background(), s)

	if !r.Fallback || !errors.Is(r.Err, ErrUnsupported) {
		t.Fatalf("expected unsupported fallback, got %+v", r)
	}
	if r.Coordinate != fallbackCoord {
		t.Fatalf("expected fallback %v, got %v", fallbackCoord, r.Coordinate)
	}
}

func TestResolveReportsReason(t *testing.T) {
	metrics.Reset()
	r := Resolve(context.Background(), FailingLocator{Err: ErrPermissionDenied})

	if !r.Fallback || !errors.Is(r.Err, ErrPermissionDenied) {
		t.Fatalf("unexpected result: %+v", r)
	}
	resp := r.Response()
	if !resp.Fallback || resp.Reason == "" || resp.Coordinate != fallbackCoord {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if metrics.GetLocationFallbacks() != 1 {
		t.Fatal("fallback not counted")
	}
}

func TestReportErrorCodes(t *testing.T) {
	cases := map[string]error{
		CodePermissionDenied:    ErrPermissionDenied,
		"1":                     ErrPermissionDenied,
		CodePositionUnavailable: ErrUnavailable,
		CodeTimeout:             ErrTimeout,
		CodeUnsupported:         ErrUnsupported,
		"weird":                 ErrUnavailable,
	}
	for code, want := range cases {
		_, err := ParseReport("1", "2", code).Locate(context.Background())
		if !errors.Is(err, want) {
			t.Errorf("code %q: expected %v, got %v", code, want, err)
		}
	}
}

func TestParseReportCoordinates(t *testing.T) {
	c, err := ParseReport(" 40.7128", "-74.0060 ", "").Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if c.Lat != 40.7128 || c.Lng != -74.006 {
		t.Fatalf("unexpected coordinate: %v", c)
	}

	if _, err := ParseReport("abc", "1", "").Locate(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for unparseable lat, got %v", err)
	}
}

func TestOnceCallsInnerOnlyOnce(t *testing.T) {
	calls := 0
	inner := LocatorFunc(func(ctx context.Context) (models.Coordinate, error) {
		calls++
		return models.Coordinate{Lat: 1, Lng: 2}, nil
	})

	o := NewOnce(inner)
	for i := 0; i < 3; i++ {
		c, err := o.Locate(context.Background())
		if err != nil || c != (models.Coordinate{Lat: 1, Lng: 2}) {
			t.Fatalf("call %d: %v, %v", i, c, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", calls)
	}

	o.Refresh(nil)
	if o.Done() {
		t.Fatal("expected Refresh to re-arm")
	}
	o.Locate(context.Background())
	if calls != 2 {
		t.Fatalf("expected 2 inner calls after refresh, got %d", calls)
	}
}

func TestOnceMemoizesFallback(t *testing.T) {
	o := NewOnce(FailingLocator{})
	r := o.Resolve(context.Background())
	if !r.Fallback || r.Coordinate != fallbackCoord {
		t.Fatalf("unexpected result: %+v", r)
	}

	o.Refresh(NewStaticLocator(48.8566, 2.3522))
	r = o.Resolve(context.Background())
	if r.Fallback || r.Coordinate.Lat != 48.8566 {
		t.Fatalf("refresh did not use new locator: %+v", r)
	}
}
