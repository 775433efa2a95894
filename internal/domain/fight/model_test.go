package fight

import (
	"testing"
	"time"
)

func TestCardType_InSection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		card    CardType
		section CardType
		want    bool
	}{
		{CardMain, CardMain, true},
		{CardMainEvent, CardMain, true},
		{CardType("main event"), CardMain, true},
		{CardMain, CardMainEvent, true},
		{CardPrelims, CardMain, false},
		{CardEarlyPrelims, CardPrelims, false},
		{CardEarlyPrelims, CardEarlyPrelims, true},
		{CardPrelims, CardAll, true},
		{CardType(""), CardAll, true},
		{CardPrelims, CardType(""), true},
	}

	for _, tc := range cases {
		if got := tc.card.InSection(tc.section); got != tc.want {
			t.Fatalf("%q in %q: got=%v want=%v", tc.card, tc.section, got, tc.want)
		}
	}
}

func TestParseSection(t *testing.T) {
	t.Parallel()

	cases := map[string]CardType{
		"early-prelims": CardEarlyPrelims,
		"Early Prelims": CardEarlyPrelims,
		"prelims":       CardPrelims,
		"main_card":     CardMain,
		"Main Event":    CardMain,
		"all":           CardAll,
	}
	for raw, want := range cases {
		got, err := ParseSection(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%q want=%q", raw, got, want)
		}
	}

	if _, err := ParseSection("undercard"); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestFilter_MatchesScheduledBefore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 11, 23, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)
	filter := Filter{ScheduledBefore: &now, Statuses: []Status{StatusUpcoming}}

	if !filter.Matches(Fight{Status: StatusUpcoming, ScheduledStartTime: &past}) {
		t.Fatalf("fight scheduled in the past must match")
	}
	if !filter.Matches(Fight{Status: StatusUpcoming, ScheduledStartTime: &now}) {
		t.Fatalf("fight scheduled exactly now must match")
	}
	if filter.Matches(Fight{Status: StatusUpcoming, ScheduledStartTime: &future}) {
		t.Fatalf("fight scheduled in the future must not match")
	}
	if filter.Matches(Fight{Status: StatusUpcoming}) {
		t.Fatalf("fight without scheduled start must not match")
	}
	if filter.Matches(Fight{Status: StatusCancelled, ScheduledStartTime: &past}) {
		t.Fatalf("cancelled fight must not match")
	}
}
