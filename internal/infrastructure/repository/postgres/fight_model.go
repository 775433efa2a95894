package postgres

import (
	"database/sql"
	"time"
)

type fightTableModel struct {
	PublicID           string         `db:"public_id"`
	EventID            string         `db:"event_public_id"`
	Fighter1ID         string         `db:"fighter1_public_id"`
	Fighter2ID         string         `db:"fighter2_public_id"`
	CardType           string         `db:"card_type"`
	Status             string         `db:"status"`
	ScheduledStartTime *time.Time     `db:"scheduled_start_time"`
	CompletionMethod   sql.NullString `db:"completion_method"`
	CompletedAt        *time.Time     `db:"completed_at"`
}

var fightColumns = []string{
	"public_id",
	"event_public_id",
	"fighter1_public_id",
	"fighter2_public_id",
	"card_type",
	"status",
	"scheduled_start_time",
	"completion_method",
	"completed_at",
}
