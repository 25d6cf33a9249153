// cmd/migrate/main.go
// Imports the legacy MySQL tracker database (members, cards, results, fantasy
// selections and logged bets) into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/tracker?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/betting"
	"github.com/padraicbc/racetracker/config"
	bundb "github.com/padraicbc/racetracker/db"
	"github.com/padraicbc/racetracker/fantasy"
	"github.com/padraicbc/racetracker/models"
)

const batchSize = 500

// legacyNS seeds the UUIDs given to legacy integer ids so re-runs map each
// row to the same key.
var legacyNS = uuid.MustParse("6f1d7c1e-4d0b-4d8e-9a55-2b7f3f0c9e21")

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/tracker?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"users", func() (int, error) { return migrateUsers(ctx, myDB, pgDB) }},
		{"courses", func() (int, error) { return migrateCourses(ctx, myDB, pgDB) }},
		{"horses", func() (int, error) { return migrateHorses(ctx, myDB, pgDB) }},
		{"league_days", func() (int, error) { return migrateDays(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return migrateRaces(ctx, myDB, pgDB) }},
		{"race_results", func() (int, error) { return migrateResults(ctx, myDB, pgDB) }},
		{"selections", func() (int, error) { return migrateSelections(ctx, myDB, pgDB) }},
		{"bets", func() (int, error) { return migrateBets(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete; run cmd/recompute to rebuild the league table")
}

// --- helpers ---

func nullStr(n sql.NullString) *string {
	if !n.Valid || n.String == "" {
		return nil
	}
	return &n.String
}

func legacyID(table string, id int) uuid.UUID {
	return uuid.NewSHA1(legacyNS, []byte(table+":"+strconv.Itoa(id)))
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// copyRows runs query against MySQL and inserts the scanned rows into
// PostgreSQL in batches. scan returning ok=false skips the row.
func copyRows[T any](ctx context.Context, myDB *sql.DB, pgDB *bun.DB, query string,
	scan func(*sql.Rows) (row T, ok bool, err error),
) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		r, ok, err := scan(rows)
		if err != nil {
			return total, err
		}
		if !ok {
			continue
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// --- per-table migrations ---

func migrateUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB, "SELECT id, username, password, isAdmin FROM users",
		func(rows *sql.Rows) (models.User, bool, error) {
			var r models.User
			err := rows.Scan(&r.ID, &r.Username, &r.Password, &r.IsAdmin)
			return r, err == nil, err
		})
}

func migrateCourses(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB, "SELECT courseID, course, code FROM courses",
		func(rows *sql.Rows) (models.Course, bool, error) {
			var r models.Course
			err := rows.Scan(&r.CourseID, &r.Course, &r.Code)
			return r, err == nil, err
		})
}

func migrateHorses(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB, "SELECT horseID, horse, trainer FROM horses",
		func(rows *sql.Rows) (models.Horse, bool, error) {
			var (
				r       models.Horse
				trainer sql.NullString
			)
			if err := rows.Scan(&r.HorseID, &r.Horse, &trainer); err != nil {
				return r, false, err
			}
			r.Trainer = nullStr(trainer)
			return r, true, nil
		})
}

func migrateDays(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB, "SELECT dayID, date, cutoff FROM days",
		func(rows *sql.Rows) (models.LeagueDay, bool, error) {
			var (
				r    models.LeagueDay
				date time.Time
			)
			if err := rows.Scan(&r.DayID, &date, &r.Cutoff); err != nil {
				return r, false, err
			}
			r.Date = date.Format(time.DateOnly)
			r.Cutoff = r.Cutoff.UTC()
			return r, true, nil
		})
}

func migrateRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT raceID, courseID, dayID, name, offTime, places FROM races",
		func(rows *sql.Rows) (models.Race, bool, error) {
			var (
				r      models.Race
				places sql.NullInt64
			)
			if err := rows.Scan(&r.RaceID, &r.CourseID, &r.DayID, &r.Name, &r.OffTime, &places); err != nil {
				return r, false, err
			}
			r.OffTime = r.OffTime.UTC()
			r.Places = fantasy.DefaultPlaces
			if places.Valid && places.Int64 > 0 {
				r.Places = int(places.Int64)
			}
			return r, true, nil
		})
}

func migrateResults(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, raceID, horseID, placed, price FROM results",
		func(rows *sql.Rows) (models.RaceResult, bool, error) {
			var (
				r     models.RaceResult
				price sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.RaceID, &r.HorseID, &r.Placed, &price); err != nil {
				return r, false, err
			}
			r.Price = nullStr(price)
			return r, true, nil
		})
}

func migrateSelections(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, userID, dayID, raceID, horseID, price, chip, createdAt FROM selections",
		func(rows *sql.Rows) (models.Selection, bool, error) {
			var (
				id    int
				r     models.Selection
				price sql.NullString
				chip  sql.NullString
			)
			if err := rows.Scan(&id, &r.UserID, &r.DayID, &r.RaceID, &r.HorseID, &price, &chip, &r.CreatedAt); err != nil {
				return r, false, err
			}
			r.ID = legacyID("selections", id)
			r.Price = nullStr(price)
			c, err := fantasy.ParseChip(chip.String)
			if err != nil {
				log.Printf("selection %d: dropping chip: %v", id, err)
			}
			r.Chip = c.String()
			return r, true, nil
		})
}

func migrateBets(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT id, userID, placedAt, description, bookmaker, stake, price,
		        eachWay, placeTerms, outcome
		 FROM bets`,
		func(rows *sql.Rows) (models.Bet, bool, error) {
			var (
				id         int
				r          models.Bet
				bookmaker  sql.NullString
				placeTerms sql.NullFloat64
				outcome    sql.NullString
			)
			if err := rows.Scan(&id, &r.UserID, &r.PlacedAt, &r.Description, &bookmaker, &r.Stake,
				&r.Price, &r.EachWay, &placeTerms, &outcome); err != nil {
				return r, false, err
			}
			if _, err := fantasy.ParseOdds(r.Price); err != nil {
				log.Printf("bet %d: skipping: %v", id, err)
				return r, false, nil
			}
			o, err := betting.ParseOutcome(outcome.String)
			if err != nil {
				log.Printf("bet %d: treating as pending: %v", id, err)
				o = betting.OutcomePending
			}
			r.ID = legacyID("bets", id)
			r.PlacedAt = r.PlacedAt.UTC()
			r.Bookmaker = nullStr(bookmaker)
			r.PlaceTerms = betting.DefaultPlaceTerms
			if placeTerms.Valid && placeTerms.Float64 > 0 {
				r.PlaceTerms = placeTerms.Float64
			}
			r.Outcome = string(o)
			return r, true, nil
		})
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"users_id_seq", "users", "id"},
		{"courses_course_id_seq", "courses", "course_id"},
		{"horses_horse_id_seq", "horses", "horse_id"},
		{"league_days_day_id_seq", "league_days", "day_id"},
		{"races_race_id_seq", "races", "race_id"},
		{"race_results_id_seq", "race_results", "id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
