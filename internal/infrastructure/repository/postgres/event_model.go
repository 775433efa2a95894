package postgres

import (
	"database/sql"
	"time"
)

type eventTableModel struct {
	PublicID             string         `db:"public_id"`
	Name                 string         `db:"name"`
	Promotion            string         `db:"promotion"`
	EventDate            time.Time      `db:"event_date"`
	EarlyPrelimStartTime *time.Time     `db:"early_prelim_start_time"`
	PrelimStartTime      *time.Time     `db:"prelim_start_time"`
	MainStartTime        *time.Time     `db:"main_start_time"`
	Status               string         `db:"status"`
	CompletionMethod     sql.NullString `db:"completion_method"`
	TrackerMode          sql.NullString `db:"tracker_mode"`
}

var eventColumns = []string{
	"public_id",
	"name",
	"promotion",
	"event_date",
	"early_prelim_start_time",
	"prelim_start_time",
	"main_start_time",
	"status",
	"completion_method",
	"tracker_mode",
}
