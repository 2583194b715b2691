package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"filut/client"
	"filut/config"
	"filut/handlers"
	"filut/page"
	"filut/render"
	"filut/worker"
)

// main loads the configuration, serves the restaurant page and runs the
// session sweeper until interrupted.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	api := client.New(cfg.APIURL)
	store := page.NewStore()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.IndexHandler(api, store))
	mux.HandleFunc("GET /restaurants", handlers.FilterHandler(store))
	mux.HandleFunc("GET /restaurants/{id}/dialog", handlers.DialogHandler(api, store, cfg.MenuLocale))
	mux.HandleFunc("GET /location/nearest", handlers.NearestHandler(store))
	mux.HandleFunc("GET /location/user", handlers.UserLocationHandler(store))
	mux.Handle("GET /static/", http.FileServerFS(render.Static))

	mux.HandleFunc("GET /api/restaurants", handlers.RestaurantsHandler(api))
	mux.HandleFunc("GET /api/cities", handlers.CitiesHandler(api))
	mux.HandleFunc("GET /api/restaurants/{id}/menu", handlers.MenuHandler(api, cfg.MenuLocale))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.StartSessionSweeper(ctx, store, cfg.SweepInterval, cfg.SessionTTL)
	})

	g.Go(func() error {
		log.Printf("Server starting on port %s (restaurant API %s)", cfg.Port, cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server failed:", err)
	}
	log.Println("Server stopped")
}
