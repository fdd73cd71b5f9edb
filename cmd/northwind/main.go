package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/mccreemainwoody/northwind/internal/config"
	"github.com/mccreemainwoody/northwind/internal/db"
	"github.com/mccreemainwoody/northwind/internal/services"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedFlag        = flag.Bool("seed", false, "Insert the sample dataset after migrating")
	placeOrderFlag  = flag.Bool("place-order", false, "Finish the run by placing a demonstration order")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if cfg.Seed || *seedFlag {
		if err := db.Seed(conn); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("sample dataset in place")
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}

	log.Printf("Running exercises env=%s", cfg.Env)
	svc := services.NewNorthwindService(conn)
	if err := runExercises(svc, *placeOrderFlag); err != nil {
		log.Fatalf("exercises: %v", err)
	}
}
