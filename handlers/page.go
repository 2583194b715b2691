package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"filut/page"
	"filut/render"
)

// IndexHandler serves a page load: it fetches the restaurants, opens a new
// page session holding them and renders the table, city filter and map.
func IndexHandler(api RestaurantAPI, store *page.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := api.FetchRestaurants(r.Context())
		if err != nil {
			log.Println("Fetch restaurants error:", err)
			http.Error(w, "Something went wrong", http.StatusBadGateway)
			return
		}

		s := store.Create()
		if _, err := s.Dispatch(page.Loaded{Restaurants: restaurants}); err != nil {
			log.Println("Load page error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := render.Page(&buf, s.View()); err != nil {
			log.Println("Render page error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		log.Printf("Page %s loaded with %d restaurants", s.ID, len(restaurants))
		writeHTML(w, buf.Bytes())
	}
}

// FilterHandler applies a city selection and returns the rebuilt table body.
func FilterHandler(store *page.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, store)
		if !ok {
			return
		}

		if _, err := s.Dispatch(page.FilterChanged{City: r.URL.Query().Get("city")}); err != nil {
			log.Println("Filter error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := render.TableBody(&buf, s.View().Rows); err != nil {
			log.Println("Render table error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes())
	}
}

// DialogHandler selects a table row, fetches the restaurant's daily menu
// and returns the dialog content. A response that a newer selection has
// overtaken is answered with 204 so the browser keeps the newer dialog.
func DialogHandler(api RestaurantAPI, store *page.Store, locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, store)
		if !ok {
			return
		}

		id := r.PathValue("id")
		token, err := s.Dispatch(page.RowSelected{RestaurantID: id})
		if err != nil {
			if errors.Is(err, page.ErrUnknownRestaurant) {
				http.Error(w, "Restaurant not found", http.StatusNotFound)
				return
			}
			log.Println("Select row error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		menu, err := api.FetchDailyMenu(r.Context(), id, locale)
		if err != nil {
			log.Printf("Fetch daily menu error for %s: %v", id, err)
			http.Error(w, "Something went wrong", http.StatusBadGateway)
			return
		}

		if _, err := s.Dispatch(page.MenuLoaded{Token: token, Menu: menu}); err != nil {
			if errors.Is(err, page.ErrStale) {
				log.Printf("Discarding stale menu for %s on page %s", id, s.ID)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			log.Println("Open dialog error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := render.Dialog(&buf, s.View().Dialog); err != nil {
			log.Println("Render dialog error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeHTML(w, buf.Bytes())
	}
}

// NearestHandler receives the user's position and answers with the marker
// of the closest restaurant and the new map centre. With no restaurants
// loaded it answers 204.
func NearestHandler(store *page.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, store)
		if !ok {
			return
		}

		pos, err := parsePosition(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := s.Dispatch(page.LocationResolved{Position: pos, Target: page.TargetNearest}); err != nil {
			log.Println("Nearest error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}

		m := s.View().Map
		if m.Nearest == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, map[string]interface{}{
			"center": m.Center,
			"marker": m.Nearest,
		})
	}
}

// UserLocationHandler receives the user's position and answers with the
// marker for it.
func UserLocationHandler(store *page.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookupSession(w, r, store)
		if !ok {
			return
		}

		pos, err := parsePosition(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := s.Dispatch(page.LocationResolved{Position: pos, Target: page.TargetUser}); err != nil {
			log.Println("User location error:", err)
			http.Error(w, "Something went wrong", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"marker": s.View().Map.User,
		})
	}
}
