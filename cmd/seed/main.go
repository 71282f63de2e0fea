// Command main runs the database seeder for Threaded.
package main

import (
	"flag"
	"log"

	"threaded/internal/config"
	"threaded/internal/database"
	"threaded/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numThreads := flag.Int("threads", 60, "Number of threads to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumThreads:  *numThreads,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
