package domain

import "time"

// InteractionRecord is the persisted frequency state for one nudge id.
type InteractionRecord struct {
	NudgeID            string     `json:"nudgeId"`
	LastShownAt        *time.Time `json:"lastShownAt,omitempty"`
	ShowCount          int        `json:"showCount"`
	DismissCount       int        `json:"dismissCount"`
	LastDismissedAt    *time.Time `json:"lastDismissedAt,omitempty"`
	SnoozedUntil       *time.Time `json:"snoozedUntil,omitempty"`
	PermanentlyDismiss bool       `json:"permanentlyDismissed"`
}
