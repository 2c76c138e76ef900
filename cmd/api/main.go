package main

import (
	"log"
	"os"

	"github.com/01moynul/audiogear-golang/internal/auth"
	"github.com/01moynul/audiogear-golang/internal/database"
	"github.com/01moynul/audiogear-golang/internal/handlers"
	"github.com/01moynul/audiogear-golang/internal/routes"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, "mysql"); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("WARNING: JWT_SECRET not set, using insecure dev secret")
	}
	tokens := auth.NewTokenService([]byte(secret), auth.DefaultAccessTokenTTL)

	h := handlers.New(db, tokens)
	router := routes.SetupRouter(h)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
