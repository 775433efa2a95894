package httpapi

import (
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
)

type eventDTO struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Promotion            string     `json:"promotion"`
	Date                 time.Time  `json:"date"`
	EarlyPrelimStartTime *time.Time `json:"early_prelim_start_time"`
	PrelimStartTime      *time.Time `json:"prelim_start_time"`
	MainStartTime        *time.Time `json:"main_start_time"`
	Status               string     `json:"status"`
	CompletionMethod     string     `json:"completion_method,omitempty"`
	TrackerMode          string     `json:"tracker_mode,omitempty"`
}

type fightDTO struct {
	ID                 string     `json:"id"`
	EventID            string     `json:"event_id"`
	Fighter1ID         string     `json:"fighter1_id"`
	Fighter2ID         string     `json:"fighter2_id"`
	CardType           string     `json:"card_type"`
	Section            string     `json:"section"`
	Status             string     `json:"status"`
	ScheduledStartTime *time.Time `json:"scheduled_start_time"`
	CompletionMethod   string     `json:"completion_method,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

type scheduledStartRequest struct {
	ScheduledStartTime *string `json:"scheduled_start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type cancelTimersDTO struct {
	EventID   string `json:"event_id"`
	Cancelled int    `json:"cancelled"`
}

type sweepDTO struct {
	Promoted int `json:"promoted"`
}

func eventToDTO(item event.Event) eventDTO {
	return eventDTO{
		ID:                   item.ID,
		Name:                 item.Name,
		Promotion:            item.Promotion,
		Date:                 item.Date,
		EarlyPrelimStartTime: item.EarlyPrelimStartTime,
		PrelimStartTime:      item.PrelimStartTime,
		MainStartTime:        item.MainStartTime,
		Status:               string(item.Status),
		CompletionMethod:     string(item.CompletionMethod),
		TrackerMode:          string(item.TrackerMode),
	}
}

func fightToDTO(item fight.Fight) fightDTO {
	return fightDTO{
		ID:                 item.ID,
		EventID:            item.EventID,
		Fighter1ID:         item.Fighter1ID,
		Fighter2ID:         item.Fighter2ID,
		CardType:           string(item.CardType),
		Section:            item.CardType.Slug(),
		Status:             string(item.Status),
		ScheduledStartTime: item.ScheduledStartTime,
		CompletionMethod:   string(item.CompletionMethod),
		CompletedAt:        item.CompletedAt,
	}
}
