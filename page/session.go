// Package page keeps the state of one loaded restaurant page and applies
// the user's interactions to it as typed events.
package page

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"filut/finder"
	"filut/models"
)

var (
	// ErrStale is returned when a menu arrives for a selection that has
	// since been replaced by a newer one.
	ErrStale = errors.New("page: response superseded by a newer selection")

	// ErrUnknownRestaurant is returned when an event names a restaurant
	// that was not loaded on the page.
	ErrUnknownRestaurant = errors.New("page: unknown restaurant")
)

// Dialog is the content of the menu dialog.
type Dialog struct {
	Open       bool
	Restaurant models.Restaurant
	Menu       models.DailyMenu
}

// Session is the state of one page load. Every mutation goes through Dispatch.
type Session struct {
	ID string

	mu          sync.Mutex
	lastSeen    time.Time
	restaurants []models.Restaurant
	table       Table
	filter      string
	selected    string
	generation  uint64
	dialog      Dialog
	mapState    Map
}

// NewSession returns an empty session. Use Dispatch(Loaded{...}) to fill it.
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		lastSeen: time.Now(),
		filter:   finder.AllCities,
		mapState: newMap(),
	}
}

// View is a consistent copy of a session's state for rendering.
type View struct {
	SessionID string
	Rows      []Row
	Cities    []string
	Filter    string
	Selected  string
	Dialog    Dialog
	Map       Map
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.mapState
	m.Markers = make([]Marker, len(s.mapState.Markers))
	copy(m.Markers, s.mapState.Markers)
	return View{
		SessionID: s.ID,
		Rows:      s.table.clone().Rows,
		Cities:    finder.Cities(s.restaurants),
		Filter:    s.filter,
		Selected:  s.selected,
		Dialog:    s.dialog,
		Map:       m,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) find(id string) *models.Restaurant {
	for i := range s.restaurants {
		if s.restaurants[i].ID == id {
			return &s.restaurants[i]
		}
	}
	return nil
}

// Dispatch applies an event to the session. It returns the selection
// generation after the event; for RowSelected this is the token the
// matching MenuLoaded must carry.
func (s *Session) Dispatch(ev Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case Loaded:
		s.load(e.Restaurants)

	case RowSelected:
		if s.find(e.RestaurantID) == nil {
			return s.generation, fmt.Errorf("%w: %s", ErrUnknownRestaurant, e.RestaurantID)
		}
		s.table.Highlight(e.RestaurantID)
		s.selected = e.RestaurantID
		s.generation++

	case MenuLoaded:
		if e.Token != s.generation {
			return s.generation, ErrStale
		}
		r := s.find(s.selected)
		if r == nil {
			return s.generation, fmt.Errorf("%w: %s", ErrUnknownRestaurant, s.selected)
		}
		s.dialog = Dialog{Open: true, Restaurant: *r, Menu: e.Menu}

	case FilterChanged:
		city := e.City
		if city == "" {
			city = finder.AllCities
		}
		s.filter = city
		s.table.Rebuild(finder.FilterByCity(s.restaurants, city))

	case LocationResolved:
		if err := s.locate(e); err != nil {
			return s.generation, err
		}

	default:
		return s.generation, fmt.Errorf("page: unsupported event %T", ev)
	}

	return s.generation, nil
}

// load sorts the restaurants before anything reads them, appends their
// rows to the table and places their markers.
func (s *Session) load(restaurants []models.Restaurant) {
	s.restaurants = append([]models.Restaurant(nil), restaurants...)
	finder.SortByName(s.restaurants)
	s.table.AppendRows(finder.FilterByCity(s.restaurants, finder.AllCities))
	s.mapState.Markers = PlaceMarkers(s.restaurants)
}

func (s *Session) locate(e LocationResolved) error {
	switch e.Target {
	case TargetNearest:
		r, dist, ok := finder.Nearest(s.restaurants, e.Position)
		if !ok {
			return nil
		}
		m := NearestMarker(*r, dist)
		s.mapState.Nearest = &m
		s.mapState.Center = m.Position
	case TargetUser:
		m := UserMarker(e.Position)
		s.mapState.User = &m
	default:
		return fmt.Errorf("page: unknown location target %d", e.Target)
	}
	return nil
}
