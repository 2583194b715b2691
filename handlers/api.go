package handlers

import (
	"log"
	"net/http"
	"time"

	"filut/client"
	"filut/finder"
	"filut/models"
)

// RestaurantsHandler returns the restaurants sorted by name, optionally
// restricted to one city with ?city=.
func RestaurantsHandler(api RestaurantAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := api.FetchRestaurants(r.Context())
		if err != nil {
			log.Println("Fetch restaurants error:", err)
			http.Error(w, "Something went wrong", http.StatusBadGateway)
			return
		}
		finder.SortByName(restaurants)

		results := []models.Restaurant{}
		for _, res := range finder.FilterByCity(restaurants, r.URL.Query().Get("city")) {
			results = append(results, *res)
		}
		writeJSON(w, results)
	}
}

// CitiesHandler returns the distinct cities in the order they appear in
// the sorted restaurant list.
func CitiesHandler(api RestaurantAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := api.FetchRestaurants(r.Context())
		if err != nil {
			log.Println("Fetch restaurants error:", err)
			http.Error(w, "Something went wrong", http.StatusBadGateway)
			return
		}
		finder.SortByName(restaurants)
		writeJSON(w, finder.Cities(restaurants))
	}
}

// MenuHandler returns a restaurant's menu. Without ?date= it is today's
// menu; ?locale= overrides the default locale.
func MenuHandler(api RestaurantAPI, defaultLocale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		locale := r.URL.Query().Get("locale")
		if locale == "" {
			locale = defaultLocale
		}

		var menu models.DailyMenu
		var err error
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, perr := time.Parse(client.DateLayout, dateStr)
			if perr != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			menu, err = api.FetchMenu(r.Context(), id, locale, date)
		} else {
			menu, err = api.FetchDailyMenu(r.Context(), id, locale)
		}
		if err != nil {
			log.Printf("Fetch menu error for %s: %v", id, err)
			http.Error(w, "Something went wrong", http.StatusBadGateway)
			return
		}

		if menu.Courses == nil {
			menu.Courses = []models.Course{}
		}
		writeJSON(w, menu)
	}
}
