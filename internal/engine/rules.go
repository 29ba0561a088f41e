package engine

import "github.com/alexanderramin/smartprompts/internal/domain"

// Rule binds an engine id to its evaluation function.
type Rule struct {
	ID  domain.EngineID
	Run func(snap domain.StateSnapshot, ctx Context) []domain.Nudge
}

// Rules returns the engines in evaluation order. Output order across rules
// is stable, so the first nudge with a given id wins during dedupe.
func (e *Evaluator) Rules() []Rule {
	return []Rule{
		{domain.EngineDeadline, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateDeadlines(s.Programs, c)
		}},
		{domain.EngineCertification, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateCertifications(s.Certifications, c)
		}},
		{domain.EngineLOR, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateLORs(s.LORRequests, s.Programs, c)
		}},
		{domain.EngineInterview, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateInterviews(s.Programs, c)
		}},
		{domain.EnginePrerequisite, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluatePrerequisites(s.Academics, s.Programs, c)
		}},
		{domain.EngineEvent, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateEvents(s.Events, c)
		}},
		{domain.EngineEngagement, func(s domain.StateSnapshot, c Context) []domain.Nudge {
			return e.EvaluateEngagement(s.Engagement, s.Programs, c)
		}},
	}
}
