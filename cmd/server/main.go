package main

import (
	"journey-dispatch-service/internal/adapters/cache"
	"journey-dispatch-service/internal/adapters/dispatch"
	"journey-dispatch-service/internal/adapters/repositories"
	"journey-dispatch-service/internal/api"
	"journey-dispatch-service/internal/config"
	"journey-dispatch-service/internal/platform/db"
	"journey-dispatch-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, the dispatch API client)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dispatchKey := os.Getenv("DISPATCH_API_KEY")
	if strings.TrimSpace(dispatchKey) == "" {
		log.Fatal("DISPATCH_API_KEY is required")
	}

	dispatchURL := config.Get("DISPATCH_API_URL", "https://api.dispatch.example.com")
	redisAddr := config.Get("REDIS_ADDR", "")
	port := config.Get("PORT", "8080")

	pool, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// Schema init is idempotent; seeding stays in cmd/dbtool.
	if err := repositories.InitSchema(pool); err != nil {
		log.Fatal(err)
	}

	client, err := dispatch.NewHTTPClient(dispatchURL, dispatchKey)
	if err != nil {
		log.Fatal(err)
	}

	// Previews run uncached when no Redis address is configured.
	var previewCache ports.PreviewCache
	if redisAddr != "" {
		previewCache = cache.NewRedisPreviewCache(
			redis.NewClient(&redis.Options{Addr: redisAddr}),
			15*time.Minute,
		)
	}

	repo := repositories.NewPgJourneyRepository(pool)
	router := api.NewRouter(repo, client, previewCache)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
