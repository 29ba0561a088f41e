package priority

import (
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

const neutralScore = 50.0

// TableModel scores relevance from an engine-by-stage table and derives
// engagement and recency from tracker activity and interaction history.
type TableModel struct {
	RelevanceTable map[domain.EngineID]map[domain.UserStage]float64

	// Engagement: Floor + Span*min(activeDays, SaturationDays)/SaturationDays.
	EngagementFloor float64
	EngagementSpan  float64
	SaturationDays  int

	RecentShowWindow      time.Duration
	RecentShowPenalty     float64
	SomewhatRecentWindow  time.Duration
	SomewhatRecentPenalty float64
	DismissPenalty        float64
}

func DefaultModel() *TableModel {
	return &TableModel{
		RelevanceTable: map[domain.EngineID]map[domain.UserStage]float64{
			domain.EngineDeadline: {
				domain.StageExploring: 30, domain.StagePreparing: 85, domain.StageApplying: 100,
				domain.StageInterviewing: 40, domain.StageAccepted: 10,
			},
			domain.EngineCertification: {
				domain.StageExploring: 50, domain.StagePreparing: 80, domain.StageApplying: 85,
				domain.StageInterviewing: 75, domain.StageAccepted: 60,
			},
			domain.EngineLOR: {
				domain.StageExploring: 20, domain.StagePreparing: 80, domain.StageApplying: 100,
				domain.StageInterviewing: 40, domain.StageAccepted: 10,
			},
			domain.EngineInterview: {
				domain.StageExploring: 10, domain.StagePreparing: 30, domain.StageApplying: 60,
				domain.StageInterviewing: 100, domain.StageAccepted: 30,
			},
			domain.EnginePrerequisite: {
				domain.StageExploring: 70, domain.StagePreparing: 100, domain.StageApplying: 70,
				domain.StageInterviewing: 30, domain.StageAccepted: 10,
			},
			domain.EngineEvent: {
				domain.StageExploring: 80, domain.StagePreparing: 70, domain.StageApplying: 60,
				domain.StageInterviewing: 50, domain.StageAccepted: 40,
			},
			domain.EngineEngagement: {
				domain.StageExploring: 70, domain.StagePreparing: 60, domain.StageApplying: 50,
				domain.StageInterviewing: 50, domain.StageAccepted: 60,
			},
		},
		EngagementFloor:       40,
		EngagementSpan:        60,
		SaturationDays:        20,
		RecentShowWindow:      24 * time.Hour,
		RecentShowPenalty:     50,
		SomewhatRecentWindow:  72 * time.Hour,
		SomewhatRecentPenalty: 25,
		DismissPenalty:        15,
	}
}

func (m *TableModel) Relevance(engine domain.EngineID, stage domain.UserStage) float64 {
	if byStage, ok := m.RelevanceTable[engine]; ok {
		if v, ok := byStage[stage]; ok {
			return v
		}
	}
	return neutralScore
}

// Engagement boosts active users. A user with no recorded activity gets the
// neutral score rather than the floor.
func (m *TableModel) Engagement(stats domain.TrackerStats) float64 {
	if stats == (domain.TrackerStats{}) {
		return neutralScore
	}
	days := stats.ActiveDaysLast30
	if days > m.SaturationDays {
		days = m.SaturationDays
	}
	if days < 0 {
		days = 0
	}
	if m.SaturationDays <= 0 {
		return m.EngagementFloor
	}
	return m.EngagementFloor + m.EngagementSpan*float64(days)/float64(m.SaturationDays)
}

func (m *TableModel) Recency(rec domain.InteractionRecord, now time.Time) float64 {
	score := 100.0
	if rec.LastShownAt != nil {
		since := now.Sub(*rec.LastShownAt)
		switch {
		case since < m.RecentShowWindow:
			score -= m.RecentShowPenalty
		case since < m.SomewhatRecentWindow:
			score -= m.SomewhatRecentPenalty
		}
	}
	score -= m.DismissPenalty * float64(rec.DismissCount)
	if score < 0 {
		return 0
	}
	return score
}
