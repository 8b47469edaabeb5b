package handlers

import (
	"context"
	"net/http"
)

// Index handles GET /
func Index(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, r, "index", "Home", nil)
}

// Wellness handles GET /wellness
func Wellness(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, r, "wellness", "Wellness", nil)
}

// SimpleGame handles GET /simplegame
func SimpleGame(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	render(ctx, w, r, "simplegame", "Simple Game", nil)
}

// Health handles GET /health
func Health(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "kalma"})
}
