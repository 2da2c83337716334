package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"
	"trucklogix-service/internal/adapters/cache"
	"trucklogix-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	pruneExpired := flag.Bool("prune-expired", false, "delete expired route cache rows after creating the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(ctx, pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *pruneExpired {
		n, err := cache.NewSQLRouteCache(pg).DeleteExpired(ctx)
		if err != nil {
			log.Fatalf("prune failed: %v", err)
		}
		log.Printf("Pruned expired route cache rows=%d", n)
	}
}
