package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/neurotoxic-dev/tour-server/internal/api"
	"github.com/neurotoxic-dev/tour-server/internal/catalog"
	"github.com/neurotoxic-dev/tour-server/internal/db"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "tour.db"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	database, err := db.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	eventCatalog, err := catalog.Default(logger)
	if err != nil {
		log.Fatalf("Failed to load event catalog: %v", err)
	}

	server := api.NewServer(database, eventCatalog, logger)

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting server on %s", addr)

	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
