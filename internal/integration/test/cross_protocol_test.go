package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	dirgrpc "github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/google/go-cmp/cmp"
	ws "github.com/gorilla/websocket"
)

func ids(list []models.Business) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func httpList(t *testing.T, env *TestEnvironment, category string, maxRating float64) []string {
	t.Helper()
	q := url.Values{"category": {category}, "max_rating": {fmt.Sprint(maxRating)}}
	resp, err := http.Get(env.HTTP.URL + "/businesses?" + q.Encode())
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	defer resp.Body.Close()
	var body models.BusinessListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return ids(body.Businesses)
}

func grpcList(t *testing.T, env *TestEnvironment, category string, maxRating float64) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := env.GRPC.Filter(ctx, &dirgrpc.FilterRequest{Category: category, MaxRating: &maxRating})
	if err != nil {
		t.Fatalf("grpc: %v", err)
	}
	return ids(resp.Businesses)
}

type snapshot struct {
	Type       string            `json:"type"`
	Businesses []models.Business `json:"businesses"`
}

func readSnapshot(t *testing.T, conn *ws.Conn) []string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var s snapshot
	if err := conn.ReadJSON(&s); err != nil || s.Type != "snapshot" {
		t.Fatalf("ws: %v %+v", err, s)
	}
	return ids(s.Businesses)
}

func TestSurfacesAgree(t *testing.T) {
	env := SetupTestEnvironment(t)

	for _, category := range []string{"all", "restaurant", "cafe", "retail", "service", "entertainment"} {
		conn, _, err := ws.DefaultDialer.Dial(env.WSURL, nil)
		if err != nil {
			t.Fatalf("ws dial: %v", err)
		}
		readSnapshot(t, conn)
		conn.WriteJSON(map[string]interface{}{"type": "set_category", "category": category})
		readSnapshot(t, conn)

		for _, maxRating := range models.RatingSteps {
			h := httpList(t, env, category, maxRating)
			g := grpcList(t, env, category, maxRating)
			conn.WriteJSON(map[string]interface{}{"type": "set_max_rating", "max_rating": maxRating})
			w := readSnapshot(t, conn)

			if diff := cmp.Diff(h, g); diff != "" {
				t.Fatalf("%s/%.1f http vs grpc (-http +grpc):\n%s", category, maxRating, diff)
			}
			if diff := cmp.Diff(h, w); diff != "" {
				t.Fatalf("%s/%.1f http vs ws (-http +ws):\n%s", category, maxRating, diff)
			}
		}
		conn.Close()
	}
}

func TestLocationFallbackEverywhere(t *testing.T) {
	env := SetupTestEnvironment(t)

	resp, err := http.Get(env.HTTP.URL + "/location?error=permission_denied")
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	var loc models.LocationResponse
	json.NewDecoder(resp.Body).Decode(&loc)
	resp.Body.Close()
	if loc.Coordinate != models.FallbackCoordinate {
		t.Fatalf("http: unexpected centre %+v", loc)
	}

	g, err := env.GRPC.Locate(context.Background(), &dirgrpc.LocateRequest{Error: "timeout"})
	if err != nil || g.Coordinate != models.FallbackCoordinate {
		t.Fatalf("grpc: unexpected centre %+v %v", g, err)
	}
}
