package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fightcard/internal/domain/event"
	qb "github.com/riskibarqy/fightcard/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Find(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	query, args, err := qb.Select(eventColumns...).From("events").
		Where(eventConditions(filter)...).
		OrderBy("event_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventTableModel
	if err := selectWithRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (event.Event, bool, error) {
	query, args, err := qb.Select(eventColumns...).From("events").
		Where(
			qb.Eq("public_id", id),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return event.Event{}, false, fmt.Errorf("build get event query: %w", err)
	}

	var row eventTableModel
	if err := getWithRetry(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event %s: %w", id, err)
	}
	return eventFromRow(row), true, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch event.Patch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	b := qb.Update("events")
	if patch.Status != nil {
		b.Set("status", string(*patch.Status))
	}
	if patch.CompletionMethod != nil {
		b.Set("completion_method", string(*patch.CompletionMethod))
	}
	b.SetExpr("updated_at", "NOW()")

	conditions := []qb.Condition{
		qb.Eq("public_id", id),
		qb.IsNull("deleted_at"),
	}
	if len(patch.WhenStatusIn) > 0 {
		conditions = append(conditions, qb.In("status", statusArgs(patch.WhenStatusIn)))
	}

	query, args, err := b.Where(conditions...).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update event query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return false, fmt.Errorf("update event %s: %w", id, err)
	}
	return affected > 0, nil
}

func eventConditions(filter event.Filter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if len(filter.IDs) > 0 {
		conditions = append(conditions, qb.In("public_id", qb.AnySlice(filter.IDs)))
	}
	if len(filter.Statuses) > 0 {
		conditions = append(conditions, qb.In("status", statusArgs(filter.Statuses)))
	}
	if len(filter.ExcludeStatuses) > 0 {
		conditions = append(conditions, qb.NotIn("status", statusArgs(filter.ExcludeStatuses)))
	}
	if filter.TrackerMode != "" {
		conditions = append(conditions, qb.Eq("tracker_mode", string(filter.TrackerMode)))
	}
	return conditions
}

func statusArgs[S ~string](statuses []S) []any {
	out := make([]any, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:                   row.PublicID,
		Name:                 row.Name,
		Promotion:            row.Promotion,
		Date:                 row.EventDate.UTC(),
		EarlyPrelimStartTime: utcPtr(row.EarlyPrelimStartTime),
		PrelimStartTime:      utcPtr(row.PrelimStartTime),
		MainStartTime:        utcPtr(row.MainStartTime),
		Status:               event.NormalizeStatus(row.Status),
		CompletionMethod:     event.CompletionMethod(row.CompletionMethod.String),
		TrackerMode:          event.TrackerMode(row.TrackerMode.String),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
