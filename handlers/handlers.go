package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"filut/models"
	"filut/page"
)

// RestaurantAPI is the remote source of restaurants and menus.
type RestaurantAPI interface {
	FetchRestaurants(ctx context.Context) ([]models.Restaurant, error)
	FetchDailyMenu(ctx context.Context, id, locale string) (models.DailyMenu, error)
	FetchMenu(ctx context.Context, id, locale string, date time.Time) (models.DailyMenu, error)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

// lookupSession resolves the session query parameter, answering 404 when
// the page is unknown or has expired.
func lookupSession(w http.ResponseWriter, r *http.Request, store *page.Store) (*page.Session, bool) {
	s, ok := store.Get(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "Page session not found, reload the page", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

// parsePosition reads the lat and lon query parameters.
func parsePosition(r *http.Request) (models.Position, error) {
	latStr, lonStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return models.Position{}, fmt.Errorf("lat and lon are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.Position{}, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return models.Position{}, fmt.Errorf("invalid lon %q", lonStr)
	}
	return models.Position{Lat: lat, Lon: lon}, nil
}
