package api

import (
	"journey-dispatch-service/internal/api/handlers"
	"journey-dispatch-service/internal/ports"
	"journey-dispatch-service/internal/services"
	"net/http"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	repo ports.JourneyRepository,
	dispatchClient ports.DispatchClient,
	previewCache ports.PreviewCache,
) http.Handler {
	mux := http.NewServeMux()

	journeyHandler := &handlers.JourneyHandler{
		Previews: &services.PreviewService{Cache: previewCache, Now: time.Now},
		Submits:  &services.SubmitService{Repo: repo, Dispatch: dispatchClient, Now: time.Now},
		Repo:     repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/journeys/preview", journeyHandler.Preview)
	mux.HandleFunc("/journeys", journeyHandler.Collection)
	mux.HandleFunc("/journeys/", journeyHandler.Get)

	return loggingMiddleware(mux)
}
