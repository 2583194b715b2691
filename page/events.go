package page

import "filut/models"

// Event is something that happened on the page.
type Event interface {
	event()
}

// Loaded carries the restaurants fetched when the page is opened.
type Loaded struct {
	Restaurants []models.Restaurant
}

// RowSelected is a click on a table row.
type RowSelected struct {
	RestaurantID string
}

// MenuLoaded delivers the menu requested by the RowSelected that returned Token.
type MenuLoaded struct {
	Token uint64
	Menu  models.DailyMenu
}

// FilterChanged is a new value of the city selection.
type FilterChanged struct {
	City string
}

// LocationTarget says which map feature a resolved position is for.
type LocationTarget int

const (
	TargetNearest LocationTarget = iota
	TargetUser
)

// LocationResolved is a geolocation result from the browser.
type LocationResolved struct {
	Position models.Position
	Target   LocationTarget
}

func (Loaded) event()           {}
func (RowSelected) event()      {}
func (MenuLoaded) event()       {}
func (FilterChanged) event()    {}
func (LocationResolved) event() {}
