package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/yunhang/cloudnav/internal/server"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "5690")
	dbPath := getEnv("DB_PATH", "/data/cloudnav.db")
	authPassword := getEnv("AUTH_PASSWORD", "")

	if authPassword == "" {
		log.Fatal("AUTH_PASSWORD environment variable is required")
	}

	// Initialize storage
	storage, err := server.NewStorage(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	// Initialize server
	srv, err := server.New(storage, authPassword)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Database: %s", dbPath)

	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
