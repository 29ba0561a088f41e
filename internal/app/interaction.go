package app

import (
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

type DismissRequest struct {
	NudgeID string
	// Forever marks the nudge permanently dismissed instead of starting a
	// cooldown.
	Forever bool
	Now     *time.Time
}

type DismissResponse struct {
	Record domain.InteractionRecord
	// SuggestPermanent is set once the nudge has been dismissed often enough
	// that the user should be offered "don't show again".
	SuggestPermanent bool
}

type SnoozeRequest struct {
	NudgeID string
	Days    int
	Now     *time.Time
}

type CelebrationBatch struct {
	ID        string
	CreatedAt time.Time
	Items     []domain.Nudge
}
