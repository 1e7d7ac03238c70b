package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// getJSON fetches endpoint and decodes the body into out. Non-200 responses
// are returned as errors carrying the server's error message.
func getJSON(endpoint string, out interface{}) error {
	resp, err := httpClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("server connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]string
		json.Unmarshal(body, &errResp)
		if msg := errResp["error"]; msg != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func filterQuery(category string, maxRating *float64) url.Values {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if maxRating != nil {
		q.Set("max_rating", strconv.FormatFloat(*maxRating, 'f', -1, 64))
	}
	return q
}

func fetchList(base, category string, maxRating *float64) (*models.BusinessListResponse, error) {
	var out models.BusinessListResponse
	if err := getJSON(base+"/businesses?"+filterQuery(category, maxRating).Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// offlineList filters the embedded data set without a server.
func offlineList(category string, maxRating *float64) (*models.BusinessListResponse, error) {
	filters, err := directory.ParseFilters(category, maxRating)
	if err != nil {
		return nil, err
	}
	all, err := fixture.Businesses()
	if err != nil {
		return nil, err
	}
	list := directory.Filter(all, filters.Category, filters.MaxRating)
	return &models.BusinessListResponse{Businesses: list, Count: len(list), Filters: filters}, nil
}

func loadList(offline bool, category string, maxRating *float64) (*models.BusinessListResponse, error) {
	if offline {
		return offlineList(category, maxRating)
	}
	return fetchList(serverURL(), category, maxRating)
}

func fetchOptions(base string) (*directory.Options, error) {
	var out directory.Options
	if err := getJSON(base+"/filters", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
