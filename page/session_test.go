package page

import (
	"errors"
	"math"
	"testing"

	"filut/finder"
	"filut/models"
)

func fixture() []models.Restaurant {
	mk := func(id, name, city string, lon, lat float64) models.Restaurant {
		return models.Restaurant{
			ID: id, Name: name, Address: name + "katu 1", City: city,
			Location: models.Location{Type: "Point", Coordinates: [2]float64{lon, lat}},
		}
	}
	return []models.Restaurant{
		mk("c", "Cafe Carelia", "Helsinki", 24.94, 60.17),
		mk("a", "Aalto Bistro", "Espoo", 24.83, 60.18),
		mk("b", "Bistro Bar", "Helsinki", 24.95, 60.16),
		mk("d", "Dragon Wok", "Vantaa", 25.04, 60.29),
	}
}

func loaded(t *testing.T) *Session {
	t.Helper()
	s := NewSession("test")
	if _, err := s.Dispatch(Loaded{Restaurants: fixture()}); err != nil {
		t.Fatalf("Loaded: %v", err)
	}
	return s
}

func TestLoadedSortsAndAppends(t *testing.T) {
	s := loaded(t)
	v := s.View()

	if len(v.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(v.Rows))
	}
	want := []string{"a", "b", "c", "d"}
	for i, id := range want {
		if v.Rows[i].Restaurant.ID != id {
			t.Errorf("row %d = %s, want %s", i, v.Rows[i].Restaurant.ID, id)
		}
	}
	if len(v.Map.Markers) != 4 {
		t.Errorf("expected 4 markers, got %d", len(v.Map.Markers))
	}
	if got := v.Cities; len(got) != 3 || got[0] != "Espoo" {
		t.Errorf("unexpected cities %v", got)
	}
	if v.Filter != finder.AllCities {
		t.Errorf("filter = %q, want %q", v.Filter, finder.AllCities)
	}
}

func TestLoadedAppendsToExistingRows(t *testing.T) {
	s := loaded(t)
	if _, err := s.Dispatch(Loaded{Restaurants: fixture()[:1]}); err != nil {
		t.Fatal(err)
	}
	if got := len(s.View().Rows); got != 5 {
		t.Errorf("expected initial load path to append, got %d rows", got)
	}
}

func TestFilterChangedRebuildsTable(t *testing.T) {
	s := loaded(t)
	before := s.View().Map

	if _, err := s.Dispatch(FilterChanged{City: "Helsinki"}); err != nil {
		t.Fatal(err)
	}
	v := s.View()
	if len(v.Rows) != 2 {
		t.Fatalf("expected 2 Helsinki rows, got %d", len(v.Rows))
	}
	for _, row := range v.Rows {
		if row.Restaurant.City != "Helsinki" {
			t.Errorf("row for %s in %s after filter", row.Restaurant.ID, row.Restaurant.City)
		}
	}
	if len(v.Map.Markers) != len(before.Markers) {
		t.Error("filter must not touch map markers")
	}

	s.Dispatch(FilterChanged{City: "helsinki"})
	if got := len(s.View().Rows); got != 0 {
		t.Errorf("filter should be case-sensitive, got %d rows", got)
	}

	s.Dispatch(FilterChanged{City: finder.AllCities})
	if got := len(s.View().Rows); got != 4 {
		t.Errorf("expected all rows back, got %d", got)
	}
}

func TestRowSelectedMovesHighlight(t *testing.T) {
	s := loaded(t)

	s.Dispatch(RowSelected{RestaurantID: "b"})
	s.Dispatch(RowSelected{RestaurantID: "d"})

	highlighted := 0
	for _, row := range s.View().Rows {
		if row.Highlighted {
			highlighted++
			if row.Restaurant.ID != "d" {
				t.Errorf("wrong row highlighted: %s", row.Restaurant.ID)
			}
		}
	}
	if highlighted != 1 {
		t.Errorf("expected exactly one highlighted row, got %d", highlighted)
	}
}

func TestRowSelectedUnknown(t *testing.T) {
	s := loaded(t)
	_, err := s.Dispatch(RowSelected{RestaurantID: "nope"})
	if !errors.Is(err, ErrUnknownRestaurant) {
		t.Errorf("expected ErrUnknownRestaurant, got %v", err)
	}
}

func TestRowSelectionSurvivesFiltering(t *testing.T) {
	s := loaded(t)
	s.Dispatch(FilterChanged{City: "Vantaa"})

	token, err := s.Dispatch(RowSelected{RestaurantID: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch(MenuLoaded{Token: token}); err != nil {
		t.Fatal(err)
	}
	if got := s.View().Dialog.Restaurant.Name; got != "Dragon Wok" {
		t.Errorf("dialog restaurant = %q, want Dragon Wok", got)
	}
}

func TestMenuLoadedReplacesDialog(t *testing.T) {
	s := loaded(t)

	token, _ := s.Dispatch(RowSelected{RestaurantID: "a"})
	s.Dispatch(MenuLoaded{Token: token, Menu: models.DailyMenu{Courses: []models.Course{
		{Name: "Soup", Price: "3 €"}, {Name: "Salad", Price: "4 €"},
	}}})

	token, _ = s.Dispatch(RowSelected{RestaurantID: "c"})
	s.Dispatch(MenuLoaded{Token: token, Menu: models.DailyMenu{Courses: []models.Course{
		{Name: "Pasta", Price: "6 €"},
	}}})

	d := s.View().Dialog
	if !d.Open {
		t.Fatal("expected dialog open")
	}
	if d.Restaurant.ID != "c" {
		t.Errorf("dialog restaurant = %s, want c", d.Restaurant.ID)
	}
	if len(d.Menu.Courses) != 1 || d.Menu.Courses[0].Name != "Pasta" {
		t.Errorf("dialog kept stale courses: %+v", d.Menu.Courses)
	}
}

func TestStaleMenuIsDiscarded(t *testing.T) {
	s := loaded(t)

	first, _ := s.Dispatch(RowSelected{RestaurantID: "a"})
	second, _ := s.Dispatch(RowSelected{RestaurantID: "b"})

	if _, err := s.Dispatch(MenuLoaded{Token: second, Menu: models.DailyMenu{Courses: []models.Course{{Name: "New"}}}}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Dispatch(MenuLoaded{Token: first, Menu: models.DailyMenu{Courses: []models.Course{{Name: "Old"}}}})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale, got %v", err)
	}

	d := s.View().Dialog
	if d.Restaurant.ID != "b" || d.Menu.Courses[0].Name != "New" {
		t.Errorf("stale response overwrote dialog: %+v", d)
	}
}

func TestPlaceMarkersInvertsCoordinates(t *testing.T) {
	rs := []models.Restaurant{{
		ID: "x", Name: "Kappeli", Address: "Eteläesplanadi 1",
		Location: models.Location{Coordinates: [2]float64{24.94, 60.17}},
	}}

	m := PlaceMarkers(rs)[0]
	if m.Position != [2]float64{60.17, 24.94} {
		t.Errorf("marker position = %v, want [60.17 24.94]", m.Position)
	}
	if m.Popup != "<b>Kappeli</b><br>Eteläesplanadi 1" {
		t.Errorf("unexpected popup %q", m.Popup)
	}
}

func TestMarkerPopupEscapes(t *testing.T) {
	m := PlaceMarkers([]models.Restaurant{{Name: "<script>", Address: "A & B"}})[0]
	if m.Popup != "<b>&lt;script&gt;</b><br>A &amp; B" {
		t.Errorf("popup not escaped: %q", m.Popup)
	}
}

func TestLocationResolvedNearest(t *testing.T) {
	north := func(metres float64) float64 { return 60.00 + metres/finder.EarthRadius*180/math.Pi }
	s := NewSession("geo")
	s.Dispatch(Loaded{Restaurants: []models.Restaurant{
		{ID: "five", Name: "Five", Location: models.Location{Coordinates: [2]float64{25.00, north(5000)}}},
		{ID: "two", Name: "Two", Location: models.Location{Coordinates: [2]float64{25.00, north(2000)}}},
	}})

	s.Dispatch(LocationResolved{Position: models.Position{Lat: 60.00, Lon: 25.00}, Target: TargetNearest})

	m := s.View().Map
	if m.Nearest == nil || m.Nearest.RestaurantID != "two" {
		t.Fatalf("expected nearest marker on 'two', got %+v", m.Nearest)
	}
	if m.Center != m.Nearest.Position {
		t.Errorf("map center %v, want recentred on %v", m.Center, m.Nearest.Position)
	}
	if m.User != nil {
		t.Error("nearest lookup must not place the user marker")
	}
}

func TestLocationResolvedNearestWithoutRestaurants(t *testing.T) {
	s := NewSession("empty")
	s.Dispatch(LocationResolved{Position: models.Position{Lat: 60, Lon: 25}, Target: TargetNearest})

	m := s.View().Map
	if m.Nearest != nil {
		t.Error("expected no nearest marker")
	}
	if m.Center != Helsinki.LatLng() {
		t.Errorf("center moved to %v", m.Center)
	}
	if m.Markers == nil {
		t.Error("expected an empty, non-nil marker list")
	}
}

func TestLocationResolvedUser(t *testing.T) {
	s := loaded(t)
	s.Dispatch(LocationResolved{Position: models.Position{Lat: 60.2, Lon: 24.9}, Target: TargetUser})

	m := s.View().Map
	if m.User == nil {
		t.Fatal("expected user marker")
	}
	if m.User.Position != [2]float64{60.2, 24.9} || m.User.Popup != UserLabel || m.User.Kind != KindUser {
		t.Errorf("unexpected user marker %+v", m.User)
	}
	if m.Center != Helsinki.LatLng() {
		t.Error("user marker must not recentre the map")
	}
}

func TestLocationResolvedUnknownTarget(t *testing.T) {
	s := loaded(t)
	if _, err := s.Dispatch(LocationResolved{Position: models.Position{Lat: 60, Lon: 25}, Target: LocationTarget(9)}); err == nil {
		t.Fatal("expected error for unknown location target")
	}
	m := s.View().Map
	if m.Nearest != nil || m.User != nil {
		t.Error("unknown target must not place markers")
	}
}
