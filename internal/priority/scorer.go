package priority

import (
	"math"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

// Weights are the top-level coefficients of the priority formula.
type Weights struct {
	Urgency    float64
	Relevance  float64
	Engagement float64
	Recency    float64
}

func DefaultWeights() Weights {
	return Weights{
		Urgency:    0.4,
		Relevance:  0.3,
		Engagement: 0.2,
		Recency:    0.1,
	}
}

// WeightsFromProfile converts persisted profile weights.
func WeightsFromProfile(p *domain.PriorityProfile) Weights {
	if p == nil {
		return DefaultWeights()
	}
	return Weights{
		Urgency:    p.WeightUrgency,
		Relevance:  p.WeightRelevance,
		Engagement: p.WeightEngagement,
		Recency:    p.WeightRecency,
	}
}

// Model supplies the 0-100 sub-scores that the weights combine.
type Model interface {
	Relevance(engine domain.EngineID, stage domain.UserStage) float64
	Engagement(stats domain.TrackerStats) float64
	Recency(rec domain.InteractionRecord, now time.Time) float64
}

type Input struct {
	Urgency domain.Urgency
	Engine  domain.EngineID
	Stage   domain.UserStage
	Tracker domain.TrackerStats
	Record  domain.InteractionRecord
	Now     time.Time
}

// Breakdown reports each weighted component alongside the total.
type Breakdown struct {
	Urgency    float64
	Relevance  float64
	Engagement float64
	Recency    float64
	Total      float64
}

type Scorer struct {
	Weights Weights
	Model   Model
}

func NewScorer(w Weights, m Model) *Scorer {
	if m == nil {
		m = DefaultModel()
	}
	return &Scorer{Weights: w, Model: m}
}

// Calculate returns priority = urgency*wU + relevance*wR + engagement*wE + recency*wC,
// rounded to one decimal.
func (s *Scorer) Calculate(in Input) float64 {
	return s.Explain(in).Total
}

func (s *Scorer) Explain(in Input) Breakdown {
	b := Breakdown{
		Urgency:    in.Urgency.Score() * s.Weights.Urgency,
		Relevance:  s.Model.Relevance(in.Engine, in.Stage) * s.Weights.Relevance,
		Engagement: s.Model.Engagement(in.Tracker) * s.Weights.Engagement,
		Recency:    s.Model.Recency(in.Record, in.Now) * s.Weights.Recency,
	}
	b.Total = round1(b.Urgency + b.Relevance + b.Engagement + b.Recency)
	return b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
