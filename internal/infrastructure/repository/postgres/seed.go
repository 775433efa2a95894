package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fightcard/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo card into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM events WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count events for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, e := range memory.SeedEvents(now) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO events (public_id, name, promotion, event_date, early_prelim_start_time, prelim_start_time, main_start_time, status, completion_method, tracker_mode)
VALUES (:public_id, :name, :promotion, :event_date, :early_prelim_start_time, :prelim_start_time, :main_start_time, :status, :completion_method, :tracker_mode)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":               e.ID,
			"name":                    e.Name,
			"promotion":               e.Promotion,
			"event_date":              e.Date.UTC(),
			"early_prelim_start_time": utcPtr(e.EarlyPrelimStartTime),
			"prelim_start_time":       utcPtr(e.PrelimStartTime),
			"main_start_time":         utcPtr(e.MainStartTime),
			"status":                  string(e.Status),
			"completion_method":       nullString(string(e.CompletionMethod)),
			"tracker_mode":            nullString(string(e.TrackerMode)),
		})
		if err != nil {
			return fmt.Errorf("bind seed event %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	for _, f := range memory.SeedFights() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fights (public_id, event_public_id, fighter1_public_id, fighter2_public_id, card_type, status, scheduled_start_time)
VALUES (:public_id, :event_public_id, :fighter1_public_id, :fighter2_public_id, :card_type, :status, :scheduled_start_time)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":            f.ID,
			"event_public_id":      f.EventID,
			"fighter1_public_id":   f.Fighter1ID,
			"fighter2_public_id":   f.Fighter2ID,
			"card_type":            string(f.CardType),
			"status":               string(f.Status),
			"scheduled_start_time": utcPtr(f.ScheduledStartTime),
		})
		if err != nil {
			return fmt.Errorf("bind seed fight %s query: %w", f.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed fight %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
