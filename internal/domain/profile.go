package domain

import (
	"errors"
	"fmt"
)

const DefaultProfileID = "default"

var ErrInvalidWeights = errors.New("invalid priority weights")

// PriorityProfile is the persisted set of priority weights.
type PriorityProfile struct {
	ID               string
	WeightUrgency    float64
	WeightRelevance  float64
	WeightEngagement float64
	WeightRecency    float64
}

// NewDefaultPriorityProfile returns the stock 0.4/0.3/0.2/0.1 weighting.
func NewDefaultPriorityProfile() *PriorityProfile {
	return &PriorityProfile{
		ID:               DefaultProfileID,
		WeightUrgency:    0.4,
		WeightRelevance:  0.3,
		WeightEngagement: 0.2,
		WeightRecency:    0.1,
	}
}

// Validate rejects negative weights and an all-zero profile.
func (p *PriorityProfile) Validate() error {
	sum := 0.0
	for name, w := range map[string]float64{
		"urgency":    p.WeightUrgency,
		"relevance":  p.WeightRelevance,
		"engagement": p.WeightEngagement,
		"recency":    p.WeightRecency,
	} {
		if w < 0 {
			return fmt.Errorf("%w: %s weight %.2f is negative", ErrInvalidWeights, name, w)
		}
		sum += w
	}
	if sum == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}
	return nil
}
