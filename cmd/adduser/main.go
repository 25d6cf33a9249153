// cmd/adduser/main.go
// Creates or updates a league member in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username padraic -password testing [-admin]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/racetracker/config"
	bundb "github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/handlers"
	"github.com/padraicbc/racetracker/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	admin := flag.Bool("admin", false, "allow the user to record results and recompute the league")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	user := &models.User{
		Username: *username,
		Password: hash,
		IsAdmin:  *admin,
	}
	if err := bundb.NewStore(db).SaveUser(ctx, user); err != nil {
		log.Fatal("save user:", err)
	}

	fmt.Printf("user %q saved (admin=%t)\n", *username, *admin)
}
