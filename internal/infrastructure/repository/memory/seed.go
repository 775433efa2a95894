package memory

import (
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/fight"
)

const (
	EventIDUFCFightNight   = "ufc-fight-night"
	EventIDPFLWorldTour    = "pfl-world-tour"
	EventIDONEFridayFights = "one-friday-fights"
)

// SeedEvents returns a small card set anchored on now for local runs with
// STORE_DRIVER=memory.
func SeedEvents(now time.Time) []event.Event {
	day := now.UTC().Truncate(time.Hour).Add(24 * time.Hour)
	earlyPrelims := day
	prelims := day.Add(2 * time.Hour)
	main := day.Add(4 * time.Hour)

	return []event.Event{
		{
			ID:                   EventIDUFCFightNight,
			Name:                 "UFC Fight Night",
			Promotion:            "UFC",
			Date:                 day,
			EarlyPrelimStartTime: &earlyPrelims,
			PrelimStartTime:      &prelims,
			MainStartTime:        &main,
			Status:               event.StatusUpcoming,
			TrackerMode:          event.TrackerTimeBased,
		},
		{
			ID:          EventIDPFLWorldTour,
			Name:        "PFL World Tour",
			Promotion:   "PFL",
			Date:        day.Add(7 * 24 * time.Hour),
			Status:      event.StatusUpcoming,
			TrackerMode: event.TrackerTimeBased,
		},
		{
			ID:          EventIDONEFridayFights,
			Name:        "ONE Friday Fights",
			Promotion:   "ONE",
			Date:        day.Add(6 * 24 * time.Hour),
			Status:      event.StatusUpcoming,
			TrackerMode: event.TrackerLiveScrape,
		},
	}
}

func SeedFights() []fight.Fight {
	return []fight.Fight{
		{ID: "ufc-fn-1", EventID: EventIDUFCFightNight, Fighter1ID: "f-0101", Fighter2ID: "f-0102", CardType: fight.CardEarlyPrelims, Status: fight.StatusUpcoming},
		{ID: "ufc-fn-2", EventID: EventIDUFCFightNight, Fighter1ID: "f-0103", Fighter2ID: "f-0104", CardType: fight.CardPrelims, Status: fight.StatusUpcoming},
		{ID: "ufc-fn-3", EventID: EventIDUFCFightNight, Fighter1ID: "f-0105", Fighter2ID: "f-0106", CardType: fight.CardPrelims, Status: fight.StatusUpcoming},
		{ID: "ufc-fn-4", EventID: EventIDUFCFightNight, Fighter1ID: "f-0107", Fighter2ID: "f-0108", CardType: fight.CardMain, Status: fight.StatusUpcoming},
		{ID: "ufc-fn-5", EventID: EventIDUFCFightNight, Fighter1ID: "f-0109", Fighter2ID: "f-0110", CardType: fight.CardMainEvent, Status: fight.StatusUpcoming},
		{ID: "pfl-wt-1", EventID: EventIDPFLWorldTour, Fighter1ID: "f-0201", Fighter2ID: "f-0202", CardType: fight.CardMain, Status: fight.StatusUpcoming},
		{ID: "pfl-wt-2", EventID: EventIDPFLWorldTour, Fighter1ID: "f-0203", Fighter2ID: "f-0204", CardType: fight.CardMain, Status: fight.StatusCancelled},
		{ID: "one-ff-1", EventID: EventIDONEFridayFights, Fighter1ID: "f-0301", Fighter2ID: "f-0302", CardType: fight.CardMain, Status: fight.StatusUpcoming},
	}
}
