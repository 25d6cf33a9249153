// cmd/recompute/main.go
// Rescores every selection, saves the league totals and prints the table.
// Safe to run from cron; a rerun with no new results changes nothing.
//
// Usage:
//
//	go run ./cmd/recompute
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/padraicbc/racetracker/config"
	bundb "github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/league"
	applog "github.com/padraicbc/racetracker/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := applog.New("racetracker-recompute", cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	defer db.Close()

	store := bundb.NewStore(db)
	standings, err := league.NewService(store, logger).Recompute(ctx)
	if err != nil {
		logger.Fatal("recompute failed", zap.Error(err))
	}

	rows, err := store.Standings(ctx)
	if err != nil {
		logger.Fatal("load standings failed", zap.Error(err))
	}
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		names[fmt.Sprint(r.UserID)] = r.Username
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tUSER\tPOINTS")
	for _, s := range standings {
		name := names[s.UserID]
		if name == "" {
			name = "#" + s.UserID
		}
		fmt.Fprintf(w, "%d\t%s\t%d\n", s.Position, name, s.Points)
	}
	_ = w.Flush()
}
