// Package finder holds the pure restaurant list operations behind the
// page: ordering, city filtering and proximity.
package finder

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"filut/models"
)

// AllCities is the filter value that matches every restaurant.
const AllCities = "all"

// EarthRadius is the sphere radius, in metres, used for great-circle distances.
const EarthRadius = 6371000

// Locale is the collation language used when ordering restaurant names.
var Locale = language.Finnish

// SortByName orders restaurants in place by name, ignoring case and
// surrounding whitespace, using locale-aware collation.
func SortByName(restaurants []models.Restaurant) {
	// A Collator keeps internal buffers and must not be shared between goroutines.
	c := collate.New(Locale)
	slices.SortStableFunc(restaurants, func(a, b models.Restaurant) int {
		return c.CompareString(sortKey(a.Name), sortKey(b.Name))
	})
}

// CompareNames compares two names the way SortByName orders them.
func CompareNames(a, b string) int {
	return collate.New(Locale).CompareString(sortKey(a), sortKey(b))
}

func sortKey(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// Cities returns the distinct city values in order of first appearance.
func Cities(restaurants []models.Restaurant) []string {
	seen := make(map[string]bool)
	cities := []string{}
	for _, r := range restaurants {
		if seen[r.City] {
			continue
		}
		seen[r.City] = true
		cities = append(cities, r.City)
	}
	return cities
}

// FilterByCity returns pointers to the restaurants whose city exactly
// matches city. An empty city or AllCities selects every restaurant.
func FilterByCity(restaurants []models.Restaurant, city string) []*models.Restaurant {
	out := make([]*models.Restaurant, 0, len(restaurants))
	for i := range restaurants {
		if city == "" || city == AllCities || restaurants[i].City == city {
			out = append(out, &restaurants[i])
		}
	}
	return out
}

// Distance returns the great-circle distance in metres between two positions.
func Distance(a, b models.Position) float64 {
	φ1 := a.Lat * math.Pi / 180
	φ2 := b.Lat * math.Pi / 180
	Δφ := (b.Lat - a.Lat) * math.Pi / 180
	Δλ := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Nearest returns the restaurant closest to from and its distance in metres.
// On exact ties the first restaurant wins. ok is false for an empty list.
func Nearest(restaurants []models.Restaurant, from models.Position) (nearest *models.Restaurant, distance float64, ok bool) {
	for i := range restaurants {
		d := Distance(from, restaurants[i].Location.Position())
		if !ok || d < distance {
			nearest, distance, ok = &restaurants[i], d, true
		}
	}
	return nearest, distance, ok
}
