package models

import (
	"encoding/json"
	"strings"
)

// NoPhone is the value the restaurant API uses when a restaurant has no phone number.
const NoPhone = "-"

// Restaurant represents a dining venue as returned by the restaurant API.
// Records are treated as immutable once fetched.
type Restaurant struct {
	ID         string   `json:"_id"`
	CompanyID  int64    `json:"companyId,omitempty"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	PostalCode string   `json:"postalCode"`
	City       string   `json:"city"`
	Company    string   `json:"company"`
	Phone      string   `json:"phone"`
	Location   Location `json:"location"`
}

// HasPhone reports whether the restaurant carries a real phone number.
func (r Restaurant) HasPhone() bool {
	return r.Phone != "" && r.Phone != NoPhone
}

// Location is a GeoJSON point. Coordinates are stored as [longitude, latitude].
type Location struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Lon returns the stored longitude.
func (l Location) Lon() float64 { return l.Coordinates[0] }

// Lat returns the stored latitude.
func (l Location) Lat() float64 { return l.Coordinates[1] }

// Position returns the location as a latitude/longitude position.
func (l Location) Position() Position {
	return Position{Lat: l.Lat(), Lon: l.Lon()}
}

// Position is a geographic point in the order map widgets expect.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LatLng returns the position as a [lat, lon] pair.
func (p Position) LatLng() [2]float64 {
	return [2]float64{p.Lat, p.Lon}
}

// DailyMenu is the list of courses a restaurant serves on one day.
type DailyMenu struct {
	Courses []Course `json:"courses"`
}

// Course is a single menu entry. Price is display text, not a number.
type Course struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Diets Diets  `json:"diets"`
}

// Diets lists the dietary tags of a course. The API sends either an array
// of tags or a single comma-separated string.
type Diets []string

// UnmarshalJSON accepts a JSON array of tags, a comma-separated string or null.
func (d *Diets) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*d = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	*d = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*d = append(*d, part)
		}
	}
	return nil
}
