package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racetracker/models"
)

// ErrNotFound is returned when a lookup or an owned update matches no row.
var ErrNotFound = errors.New("not found")

// Store runs the application's queries against PostgreSQL.
type Store struct {
	db *bun.DB
}

// NewStore wraps an open bun connection.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UserByUsername looks up a user for sign-in.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// SaveUser creates the user or replaces the password and admin flag.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	_, err := s.db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE").
		Set("password = EXCLUDED.password").
		Set("is_admin = EXCLUDED.is_admin").
		Exec(ctx)
	return err
}

// Days returns all league days, latest first.
func (s *Store) Days(ctx context.Context) ([]models.LeagueDay, error) {
	var days []models.LeagueDay
	err := s.db.NewSelect().Model(&days).
		OrderExpr("ld.date DESC").
		Scan(ctx)
	return days, err
}

// Day returns one league day.
func (s *Store) Day(ctx context.Context, dayID int) (*models.LeagueDay, error) {
	day := &models.LeagueDay{}
	err := s.db.NewSelect().Model(day).
		Where("day_id = ?", dayID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return day, nil
}

// Courses returns all courses, optionally only those racing on a league day.
func (s *Store) Courses(ctx context.Context, dayID int) ([]models.Course, error) {
	var courses []models.Course
	q := s.db.NewSelect().
		Distinct().
		Model(&courses).
		Column("c.course_id", "c.course", "c.code").
		OrderExpr("c.course ASC")

	if dayID > 0 {
		q = q.Join("INNER JOIN races rc ON rc.course_id = c.course_id").
			Where("rc.day_id = ?", dayID)
	}

	err := q.Scan(ctx)
	return courses, err
}

// Races returns a league day's races in off-time order with their course.
func (s *Store) Races(ctx context.Context, dayID int) ([]models.Race, error) {
	var races []models.Race
	err := s.db.NewSelect().Model(&races).
		Relation("Course").
		Where("rc.day_id = ?", dayID).
		OrderExpr("rc.off_time ASC").
		Scan(ctx)
	return races, err
}

// Race returns one race.
func (s *Store) Race(ctx context.Context, raceID int) (*models.Race, error) {
	race := &models.Race{}
	err := s.db.NewSelect().Model(race).
		Where("race_id = ?", raceID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return race, nil
}

// Runners returns a race's declared runners with their horse, by name.
func (s *Store) Runners(ctx context.Context, raceID int) ([]models.Runner, error) {
	var runners []models.Runner
	err := s.db.NewSelect().Model(&runners).
		Relation("Horse").
		Where("rn.race_id = ?", raceID).
		OrderExpr("horse.horse ASC").
		Scan(ctx)
	return runners, err
}

// Runner returns one horse's entry on a race card.
func (s *Store) Runner(ctx context.Context, raceID, horseID int) (*models.Runner, error) {
	runner := &models.Runner{}
	err := s.db.NewSelect().Model(runner).
		Where("race_id = ?", raceID).
		Where("horse_id = ?", horseID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return runner, nil
}

// SaveRunners declares runners for a race, updating the price of any runner
// already on the card.
func (s *Store) SaveRunners(ctx context.Context, runners []models.Runner) error {
	if len(runners) == 0 {
		return nil
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&runners).
			On("CONFLICT (race_id, horse_id) DO UPDATE").
			Set("price = EXCLUDED.price").
			Exec(ctx)
		return err
	})
}

// SaveSelection stores a pick. Picking again for the same race replaces the
// horse, price and chip; the last write wins.
func (s *Store) SaveSelection(ctx context.Context, sel *models.Selection) error {
	if sel.ID == uuid.Nil {
		sel.ID = uuid.New()
	}
	_, err := s.db.NewInsert().Model(sel).
		On("CONFLICT (user_id, race_id) DO UPDATE").
		Set("horse_id = EXCLUDED.horse_id").
		Set("price = EXCLUDED.price").
		Set("chip = EXCLUDED.chip").
		Returning("id").
		Exec(ctx)
	return err
}

// Selection returns one selection owned by userID.
func (s *Store) Selection(ctx context.Context, id uuid.UUID, userID int) (*models.Selection, error) {
	sel := &models.Selection{}
	err := s.db.NewSelect().Model(sel).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return sel, nil
}

// DeleteSelection removes a selection owned by userID.
func (s *Store) DeleteSelection(ctx context.Context, id uuid.UUID, userID int) error {
	res, err := s.db.NewDelete().Model((*models.Selection)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return affected(res)
}

// ChipUsed reports whether the user already played chip on a race other than
// exceptRaceID.
func (s *Store) ChipUsed(ctx context.Context, userID int, chip string, exceptRaceID int) (bool, error) {
	return s.db.NewSelect().Model((*models.Selection)(nil)).
		Where("user_id = ?", userID).
		Where("chip = ?", chip).
		Where("race_id <> ?", exceptRaceID).
		Exists(ctx)
}

const selectionJoinSQL = `
SELECT
	s.id, s.user_id, s.day_id, s.race_id, s.horse_id, h.horse,
	COALESCE(s.price, r.price) AS price, s.chip, r.placed, rc.places
FROM selections s
INNER JOIN horses h  ON h.horse_id = s.horse_id
INNER JOIN races  rc ON rc.race_id = s.race_id
LEFT JOIN race_results r ON r.race_id = s.race_id AND r.horse_id = s.horse_id
`

// UserSelections returns a user's selections joined with results. A dayID of
// 0 returns every day.
func (s *Store) UserSelections(ctx context.Context, userID, dayID int) ([]models.SelectionRow, error) {
	var rows []models.SelectionRow
	q := selectionJoinSQL + `WHERE s.user_id = ? AND (? = 0 OR s.day_id = ?) ORDER BY rc.off_time, s.created_at`
	if err := s.db.NewRaw(q, userID, dayID, dayID).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("user selections: %w", err)
	}
	return rows, nil
}

// AllSelections returns every user's selections joined with results.
func (s *Store) AllSelections(ctx context.Context) ([]models.SelectionRow, error) {
	var rows []models.SelectionRow
	q := selectionJoinSQL + `ORDER BY s.user_id, rc.off_time, s.created_at`
	if err := s.db.NewRaw(q).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("all selections: %w", err)
	}
	return rows, nil
}

// SaveStandings replaces the league table in one transaction. Users missing
// from standings lose their row, so an empty slice clears the table.
func (s *Store) SaveStandings(ctx context.Context, standings []models.LeagueStanding) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		del := tx.NewDelete().Model((*models.LeagueStanding)(nil))
		if len(standings) == 0 {
			del = del.Where("TRUE")
		} else {
			ids := make([]int, len(standings))
			for i, st := range standings {
				ids[i] = st.UserID
			}
			del = del.Where("user_id NOT IN (?)", bun.In(ids))
		}
		if _, err := del.Exec(ctx); err != nil {
			return fmt.Errorf("pruning standings: %w", err)
		}
		if len(standings) == 0 {
			return nil
		}

		_, err := tx.NewInsert().Model(&standings).
			On("CONFLICT (user_id) DO UPDATE").
			Set("total_points = EXCLUDED.total_points").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	})
}

// Standings returns the persisted league table, highest total first.
func (s *Store) Standings(ctx context.Context) ([]models.StandingRow, error) {
	var rows []models.StandingRow
	err := s.db.NewSelect().
		TableExpr("league_standings AS ls").
		ColumnExpr("ls.user_id, u.username, ls.total_points, ls.updated_at").
		Join("INNER JOIN users u ON u.id = ls.user_id").
		OrderExpr("ls.total_points DESC, u.username ASC").
		Scan(ctx, &rows)
	return rows, err
}

// RecordResults stores finishing positions for a race, replacing any earlier
// entry for the same runner so corrections can be re-posted.
func (s *Store) RecordResults(ctx context.Context, results []models.RaceResult) error {
	if len(results) == 0 {
		return nil
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&results).
			On("CONFLICT (race_id, horse_id) DO UPDATE").
			Set("placed = EXCLUDED.placed").
			Set("price = EXCLUDED.price").
			Exec(ctx)
		return err
	})
}

// Bets returns a user's bets, newest first. A zero since returns all of them.
func (s *Store) Bets(ctx context.Context, userID int, since time.Time) ([]models.Bet, error) {
	var bets []models.Bet
	q := s.db.NewSelect().Model(&bets).
		Where("user_id = ?", userID).
		OrderExpr("placed_at DESC")
	if !since.IsZero() {
		q = q.Where("placed_at >= ?", since)
	}
	err := q.Scan(ctx)
	return bets, err
}

// CreateBet inserts a bet, assigning its ID.
func (s *Store) CreateBet(ctx context.Context, bet *models.Bet) error {
	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	_, err := s.db.NewInsert().Model(bet).Exec(ctx)
	return err
}

// UpdateBet overwrites a bet owned by bet.UserID.
func (s *Store) UpdateBet(ctx context.Context, bet *models.Bet) error {
	res, err := s.db.NewUpdate().Model(bet).
		Column("placed_at", "description", "bookmaker", "stake", "price", "each_way", "place_terms", "outcome").
		Where("id = ?", bet.ID).
		Where("user_id = ?", bet.UserID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return affected(res)
}

// DeleteBet removes a bet owned by userID.
func (s *Store) DeleteBet(ctx context.Context, id uuid.UUID, userID int) error {
	res, err := s.db.NewDelete().Model((*models.Bet)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	return affected(res)
}
