package fight

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fightcard/internal/domain/event"
)

type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusLive      Status = "LIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// CardType labels the section of a card a fight belongs to.
type CardType string

const (
	CardEarlyPrelims CardType = "Early Prelims"
	CardPrelims      CardType = "Prelims"
	CardMain         CardType = "Main Card"
	CardMainEvent    CardType = "Main Event"
	// CardAll is the whole-card section used when an event has no section times.
	CardAll CardType = "all"
)

// Fight is one bout on an event's card.
type Fight struct {
	ID                 string
	EventID            string
	Fighter1ID         string
	Fighter2ID         string
	CardType           CardType
	Status             Status
	ScheduledStartTime *time.Time
	CompletionMethod   event.CompletionMethod
	CompletedAt        *time.Time
}

func NormalizeStatus(value string) Status {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return StatusUpcoming
	}
	return status
}

func normalizeCardType(c CardType) string {
	return strings.ToLower(strings.TrimSpace(string(c)))
}

// Labels returns the lower-cased card type labels that belong to section.
// "Main Event" is an alias of "Main Card". CardAll returns nil.
func Labels(section CardType) []string {
	switch normalizeCardType(section) {
	case "", normalizeCardType(CardAll):
		return nil
	case normalizeCardType(CardMain), normalizeCardType(CardMainEvent):
		return []string{normalizeCardType(CardMain), normalizeCardType(CardMainEvent)}
	default:
		return []string{normalizeCardType(section)}
	}
}

// InSection reports whether a fight with card type c is part of section.
func (c CardType) InSection(section CardType) bool {
	labels := Labels(section)
	if labels == nil {
		return true
	}
	own := normalizeCardType(c)
	for _, label := range labels {
		if own == label {
			return true
		}
	}
	return false
}

// Slug returns the URL-safe name of a section.
func (c CardType) Slug() string {
	switch normalizeCardType(c) {
	case normalizeCardType(CardEarlyPrelims):
		return "early-prelims"
	case normalizeCardType(CardPrelims):
		return "prelims"
	case normalizeCardType(CardMain), normalizeCardType(CardMainEvent):
		return "main-card"
	case "", normalizeCardType(CardAll):
		return "all"
	default:
		return strings.ReplaceAll(normalizeCardType(c), " ", "-")
	}
}

// ParseSection resolves a section slug or label to its canonical card type.
func ParseSection(raw string) (CardType, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "_", "-")
	value = strings.ReplaceAll(value, " ", "-")
	switch value {
	case "early-prelims":
		return CardEarlyPrelims, nil
	case "prelims":
		return CardPrelims, nil
	case "main-card", "main", "main-event":
		return CardMain, nil
	case "all":
		return CardAll, nil
	default:
		return "", fmt.Errorf("unknown card section %q", raw)
	}
}
