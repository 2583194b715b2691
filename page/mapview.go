package page

import (
	"fmt"
	"html"

	"filut/models"
)

const (
	TileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	Attribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

	// UserLabel is the popup shown on the user's own position.
	UserLabel = "Olet tässä"
)

// Helsinki is where the map starts before anything is located.
var Helsinki = models.Position{Lat: 60.17, Lon: 24.94}

const DefaultZoom = 12

// MarkerKind tells the browser how to draw a marker.
type MarkerKind string

const (
	KindRestaurant MarkerKind = "restaurant"
	KindNearest    MarkerKind = "nearest"
	KindUser       MarkerKind = "user"
)

// Marker is a pin on the map. Position is [lat, lon]; Popup is HTML.
type Marker struct {
	Kind         MarkerKind `json:"kind"`
	RestaurantID string     `json:"restaurantId,omitempty"`
	Position     [2]float64 `json:"position"`
	Popup        string     `json:"popup"`
}

// Map is the state of the map widget for one page.
type Map struct {
	Center      [2]float64 `json:"center"`
	Zoom        int        `json:"zoom"`
	TileURL     string     `json:"tileUrl"`
	Attribution string     `json:"attribution"`
	Markers     []Marker   `json:"markers"`
	Nearest     *Marker    `json:"nearest,omitempty"`
	User        *Marker    `json:"user,omitempty"`
}

func newMap() Map {
	return Map{
		Center:      Helsinki.LatLng(),
		Zoom:        DefaultZoom,
		TileURL:     TileURL,
		Attribution: Attribution,
		Markers:     []Marker{},
	}
}

// PlaceMarkers returns one marker per restaurant. The API stores
// coordinates as [lon, lat]; markers take [lat, lon].
func PlaceMarkers(restaurants []models.Restaurant) []Marker {
	markers := make([]Marker, 0, len(restaurants))
	for _, r := range restaurants {
		markers = append(markers, Marker{
			Kind:         KindRestaurant,
			RestaurantID: r.ID,
			Position:     r.Location.Position().LatLng(),
			Popup:        restaurantPopup(r),
		})
	}
	return markers
}

// NearestMarker is the highlighted marker for the restaurant closest to the user.
func NearestMarker(r models.Restaurant, distance float64) Marker {
	return Marker{
		Kind:         KindNearest,
		RestaurantID: r.ID,
		Position:     r.Location.Position().LatLng(),
		Popup:        fmt.Sprintf("<b>Lähin ravintola</b><br>%s<br>%.1f km", restaurantPopup(r), distance/1000),
	}
}

// UserMarker marks the user's own position.
func UserMarker(p models.Position) Marker {
	return Marker{
		Kind:     KindUser,
		Position: p.LatLng(),
		Popup:    UserLabel,
	}
}

func restaurantPopup(r models.Restaurant) string {
	return "<b>" + html.EscapeString(r.Name) + "</b><br>" + html.EscapeString(r.Address)
}
