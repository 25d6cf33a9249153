// Package league turns stored selections into scored stables and the league
// table.
package league

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/racetracker/fantasy"
	"github.com/padraicbc/racetracker/metrics"
	"github.com/padraicbc/racetracker/models"
)

// Repository is the storage the league needs.
type Repository interface {
	UserSelections(ctx context.Context, userID, dayID int) ([]models.SelectionRow, error)
	AllSelections(ctx context.Context) ([]models.SelectionRow, error)
	// SaveStandings replaces the whole league table with standings.
	SaveStandings(ctx context.Context, standings []models.LeagueStanding) error
}

// Service scores selections on every read; nothing derived is cached.
type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a league service.
func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Stable is a user's scored selections for a day (or the whole league when no
// day is given).
type Stable struct {
	Selections  []fantasy.Selection `json:"selections"`
	TotalPoints int                 `json:"totalPoints"`
}

// Stable loads, scores and tags a user's selections. A dayID of 0 covers every
// day. Achievements are derived over exactly the selections returned.
func (s *Service) Stable(ctx context.Context, userID, dayID int) (*Stable, error) {
	rows, err := s.repo.UserSelections(ctx, userID, dayID)
	if err != nil {
		return nil, fmt.Errorf("loading selections for user %d: %w", userID, err)
	}

	scored := fantasy.DeriveAchievements(fantasy.ScoreAll(s.toSelections(rows)))
	total := 0
	for _, sel := range scored {
		total += sel.Points
	}
	return &Stable{Selections: scored, TotalPoints: total}, nil
}

// Recompute rescores every selection, saves each user's total and returns the
// ranked table. Running it again over unchanged data saves the same totals.
func (s *Service) Recompute(ctx context.Context) ([]fantasy.Standing, error) {
	start := s.now()
	standings, err := s.recompute(ctx)
	metrics.LeagueRecomputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LeagueRecomputes.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.LeagueRecomputes.WithLabelValues("ok").Inc()
	s.log.Info("league table recomputed",
		zap.Int("users", len(standings)),
		zap.Duration("took", time.Since(start)))
	return standings, nil
}

func (s *Service) recompute(ctx context.Context) ([]fantasy.Standing, error) {
	rows, err := s.repo.AllSelections(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading selections: %w", err)
	}

	totals := fantasy.AggregateStandings(fantasy.GroupByUser(s.toSelections(rows)))

	updatedAt := s.now().UTC()
	persisted := make([]models.LeagueStanding, 0, len(totals))
	for user, pts := range totals {
		id, err := strconv.Atoi(user)
		if err != nil {
			return nil, fmt.Errorf("user id %q: %w", user, err)
		}
		persisted = append(persisted, models.LeagueStanding{UserID: id, TotalPoints: pts, UpdatedAt: updatedAt})
	}
	if err := s.repo.SaveStandings(ctx, persisted); err != nil {
		return nil, fmt.Errorf("saving standings: %w", err)
	}

	return fantasy.RankStandings(totals), nil
}

func (s *Service) toSelections(rows []models.SelectionRow) []fantasy.Selection {
	out := make([]fantasy.Selection, len(rows))
	for i, row := range rows {
		out[i] = s.toSelection(row)
	}
	return out
}

// toSelection never fails: a bad price or chip is logged and scored with a
// fallback so one record cannot stop a whole table being scored.
func (s *Service) toSelection(row models.SelectionRow) fantasy.Selection {
	sel := fantasy.Selection{
		HorseID:   strconv.Itoa(row.HorseID),
		HorseName: row.Horse,
		RaceID:    strconv.Itoa(row.RaceID),
		DayID:     strconv.Itoa(row.DayID),
		UserID:    strconv.Itoa(row.UserID),
		Odds:      fantasy.DefaultOdds,
	}

	if row.Placed != nil {
		sel.Result = fantasy.ResultFromPlaced(*row.Placed, row.Places)
	}

	switch {
	case row.Price == nil:
		metrics.OddsFallbacks.Inc()
		s.log.Debug("no price on record, using default",
			zap.String("selection", row.ID.String()))
	default:
		odds, err := fantasy.ParseOdds(*row.Price)
		if err != nil {
			metrics.OddsFallbacks.Inc()
			s.log.Warn("malformed price, using default",
				zap.String("selection", row.ID.String()),
				zap.String("price", *row.Price),
				zap.Error(err))
			break
		}
		sel.Odds = odds
	}

	chip, err := fantasy.ParseChip(row.Chip)
	if err != nil {
		s.log.Warn("unknown chip ignored",
			zap.String("selection", row.ID.String()),
			zap.Error(err))
	}
	sel.Chip = chip

	return sel
}
