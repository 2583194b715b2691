package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrz1836/go-sanitize"

	"filut/models"
)

// DateLayout is the format of the date query parameter of the menu endpoint.
const DateLayout = "2006-01-02"

// Client talks to the remote restaurant API. It performs plain GET requests
// and decodes the JSON bodies without further validation. There is no
// retry, caching or client-side timeout; callers bound requests through ctx.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// FetchRestaurants retrieves every restaurant known to the API.
func (c *Client) FetchRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := c.get(ctx, "/restaurants", &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// FetchDailyMenu retrieves today's menu of a restaurant in the given locale.
func (c *Client) FetchDailyMenu(ctx context.Context, id, locale string) (models.DailyMenu, error) {
	var menu models.DailyMenu
	path := fmt.Sprintf("/restaurants/daily/%s/%s", cleanSegment(id), cleanSegment(locale))
	if err := c.get(ctx, path, &menu); err != nil {
		return models.DailyMenu{}, err
	}
	return menu, nil
}

// FetchMenu retrieves the menu of a restaurant for an arbitrary date.
func (c *Client) FetchMenu(ctx context.Context, id, locale string, date time.Time) (models.DailyMenu, error) {
	var menu models.DailyMenu
	path := fmt.Sprintf("/restaurants/menu/%s/%s?date=%s",
		cleanSegment(id), cleanSegment(locale), url.QueryEscape(date.Format(DateLayout)))
	if err := c.get(ctx, path, &menu); err != nil {
		return models.DailyMenu{}, err
	}
	return menu, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	apiURL := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("restaurant api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("restaurant api returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// cleanSegment keeps path segments to letters and digits so identifiers
// coming from the browser cannot change the request path.
func cleanSegment(s string) string {
	return sanitize.AlphaNumeric(s, false)
}
