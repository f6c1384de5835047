// Command main runs the database seeder for Rollcall.
package main

import (
	"flag"
	"log"

	"rollcall/internal/config"
	"rollcall/internal/database"
	"rollcall/internal/seed"
)

func main() {
	numAccounts := flag.Int("accounts", 50, "Number of demo accounts to create")
	numDeleted := flag.Int("deleted", 5, "Number of soft-deleted accounts to create")
	shouldClean := flag.Bool("clean", true, "Clean accounts table before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d accounts, %d deleted, clean=%v\n", *numAccounts, *numDeleted, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumAccounts: *numAccounts,
		NumDeleted:  *numDeleted,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
