package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
	qb "github.com/riskibarqy/fightcard/internal/platform/querybuilder"
)

type FightRepository struct {
	db *sqlx.DB
}

func NewFightRepository(db *sqlx.DB) *FightRepository {
	return &FightRepository{db: db}
}

func (r *FightRepository) Find(ctx context.Context, filter fight.Filter) ([]fight.Fight, error) {
	query, args, err := qb.Select(fightColumns...).From("fights").
		Where(fightConditions(filter)...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fights query: %w", err)
	}

	var rows []fightTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fights: %w", err)
	}

	out := make([]fight.Fight, 0, len(rows))
	for _, row := range rows {
		out = append(out, fightFromRow(row))
	}
	return out, nil
}

func (r *FightRepository) Count(ctx context.Context, filter fight.Filter) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("fights").
		Where(fightConditions(filter)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fights query: %w", err)
	}

	var count int
	if err := getWithRetry(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fights: %w", err)
	}
	return count, nil
}

func (r *FightRepository) UpdateBulk(ctx context.Context, filter fight.Filter, patch fight.Patch) (int, error) {
	if patch.Empty() {
		return 0, nil
	}

	b := qb.Update("fights")
	if patch.Status != nil {
		b.Set("status", string(*patch.Status))
	}
	if patch.CompletionMethod != nil {
		b.Set("completion_method", string(*patch.CompletionMethod))
	}
	if patch.CompletedAt != nil {
		b.Set("completed_at", patch.CompletedAt.UTC())
	}
	b.SetExpr("updated_at", "NOW()")

	query, args, err := b.Where(fightConditions(filter)...).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build update fights query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update fights: %w", err)
	}
	return affected, nil
}

func (r *FightRepository) SetScheduledStartTime(ctx context.Context, id string, at *time.Time) (bool, error) {
	var value any
	if at != nil {
		value = at.UTC()
	}

	query, args, err := qb.Update("fights").
		Set("scheduled_start_time", value).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set fight scheduled start query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("set fight %s scheduled start: %w", id, err)
	}
	return affected > 0, nil
}

func fightConditions(filter fight.Filter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if len(filter.IDs) > 0 {
		conditions = append(conditions, qb.In("public_id", qb.AnySlice(filter.IDs)))
	}
	if filter.EventID != "" {
		conditions = append(conditions, qb.Eq("event_public_id", filter.EventID))
	}
	if len(filter.Statuses) > 0 {
		conditions = append(conditions, qb.In("status", statusArgs(filter.Statuses)))
	}
	if labels := fight.Labels(filter.Section); labels != nil {
		conditions = append(conditions, qb.In("LOWER(TRIM(card_type))", qb.AnySlice(labels)))
	}
	if filter.ScheduledBefore != nil {
		conditions = append(conditions, qb.Lte("scheduled_start_time", filter.ScheduledBefore.UTC()))
	}
	if filter.CompletionMethod != "" {
		conditions = append(conditions, qb.Eq("completion_method", string(filter.CompletionMethod)))
	}
	if filter.TrackerMode != "" {
		conditions = append(conditions, qb.Expr(
			"event_public_id IN (SELECT public_id FROM events WHERE tracker_mode = ? AND deleted_at IS NULL)",
			string(filter.TrackerMode),
		))
	}
	return conditions
}

func fightFromRow(row fightTableModel) fight.Fight {
	return fight.Fight{
		ID:                 row.PublicID,
		EventID:            row.EventID,
		Fighter1ID:         row.Fighter1ID,
		Fighter2ID:         row.Fighter2ID,
		CardType:           fight.CardType(row.CardType),
		Status:             fight.NormalizeStatus(row.Status),
		ScheduledStartTime: utcPtr(row.ScheduledStartTime),
		CompletionMethod:   event.CompletionMethod(row.CompletionMethod.String),
		CompletedAt:        utcPtr(row.CompletedAt),
	}
}
