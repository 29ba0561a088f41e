package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

// ErrInvalidSnapshot wraps every validation failure returned by Convert.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// parseDate accepts RFC3339 or a bare date. A bare date is midnight in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, s, loc)
}

// Convert validates f and builds the domain snapshot. Bare dates are read
// in loc.
func Convert(f *File, loc *time.Location) (domain.StateSnapshot, error) {
	if errs := Validate(f); len(errs) > 0 {
		return domain.StateSnapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, errors.Join(errs...))
	}
	if loc == nil {
		loc = time.Local
	}
	date := func(s *string) *time.Time {
		if s == nil || *s == "" {
			return nil
		}
		t, err := parseDate(*s, loc)
		if err != nil {
			return nil
		}
		return &t
	}

	snap := domain.StateSnapshot{
		UserID:      f.UserID,
		LastLoginAt: date(f.LastLoginAt),
	}

	for _, p := range f.Programs {
		tp := domain.TargetProgram{
			ID:                  p.ID,
			Name:                p.Name,
			Status:              domain.ProgramStatus(domain.CoalesceStr(p.Status, string(domain.ProgramResearching))),
			ApplicationDeadline: date(p.ApplicationDeadline),
			RequiredLORs:        domain.IntFromPtrWithDefault(0, p.RequiredLORs),
			Prerequisites:       p.Prerequisites,
			OverdueTasks:        domain.IntFromPtrWithDefault(0, p.OverdueTasks),
		}
		if iv := p.Interview; iv != nil {
			tp.Interview = &domain.InterviewDetails{
				Date:              date(iv.Date),
				Format:            domain.InterviewFormat(iv.Format),
				Outcome:           domain.InterviewOutcome(domain.CoalesceStr(iv.Outcome, string(domain.OutcomePending))),
				ThankYouSent:      domain.BoolFromPtrWithDefault(false, iv.ThankYouSent),
				FeedbackSubmitted: domain.BoolFromPtrWithDefault(false, iv.FeedbackSubmitted),
			}
		}
		snap.Programs = append(snap.Programs, tp)
	}

	for _, c := range f.Certifications {
		snap.Certifications = append(snap.Certifications, domain.Certification{
			Type:           domain.CertType(c.Type),
			Name:           c.Name,
			ExpirationDate: date(c.ExpirationDate),
		})
	}

	for i, r := range f.LORRequests {
		snap.LORRequests = append(snap.LORRequests, domain.LORRequest{
			ID:              domain.CoalesceStr(r.ID, fmt.Sprintf("lor-%d", i+1)),
			ProgramID:       r.ProgramID,
			RecommenderName: r.RecommenderName,
			Status:          domain.LORStatus(r.Status),
			RequestedAt:     date(r.RequestedAt),
		})
	}

	for _, e := range f.Events {
		snap.Events = append(snap.Events, domain.SavedEvent{
			ID:               e.ID,
			Name:             e.Name,
			Date:             date(e.Date),
			URL:              e.URL,
			AttendanceStatus: domain.AttendanceStatus(e.AttendanceStatus),
		})
	}

	if a := f.Academics; a != nil {
		for _, c := range a.Completed {
			snap.Academics.Completed = append(snap.Academics.Completed, domain.Course{Name: c.Name, Grade: c.Grade})
		}
		snap.Academics.InProgress = a.InProgress
		snap.Academics.Planned = a.Planned
	}

	if t := f.Tracker; t != nil {
		snap.Tracker = domain.TrackerStats{
			ActiveDaysLast30: domain.IntFromPtrWithDefault(0, t.ActiveDaysLast30),
			EntriesLogged:    domain.IntFromPtrWithDefault(0, t.EntriesLogged),
			ClinicalHours:    domain.IntFromPtrWithDefault(0, t.ClinicalHours),
			ShadowingHours:   domain.IntFromPtrWithDefault(0, t.ShadowingHours),
		}
	}

	snap.Engagement = convertEngagement(f.Engagement, len(snap.Programs), date)
	return snap, nil
}

// convertEngagement fills in missing counters so that nothing looks like a
// fresh crossing: previous values default to the current ones and the
// target count defaults to the number of programs.
func convertEngagement(e *EngagementImport, programCount int, date func(*string) *time.Time) domain.EngagementState {
	if e == nil {
		e = &EngagementImport{}
	}
	streak := domain.IntFromPtrWithDefault(0, e.LoginStreak)
	checklist := domain.IntFromPtrWithDefault(0, e.ChecklistCompleted)
	targets := domain.IntFromPtrWithDefault(programCount, e.TargetCount)

	state := domain.EngagementState{
		OnboardingComplete:         domain.BoolFromPtrWithDefault(true, e.OnboardingComplete),
		LoginStreak:                streak,
		PreviousStreak:             domain.IntFromPtrWithDefault(streak, e.PreviousStreak),
		ChecklistCompleted:         checklist,
		PreviousChecklistCompleted: domain.IntFromPtrWithDefault(checklist, e.PreviousChecklistCompleted),
		TargetCount:                targets,
		PreviousTargetCount:        domain.IntFromPtrWithDefault(targets, e.PreviousTargetCount),
		AcknowledgedAcceptances:    e.AcknowledgedAcceptances,
	}
	if rs := e.ReadyScore; rs != nil {
		current := domain.IntFromPtrWithDefault(0, rs.Current)
		state.ReadyScore = domain.ReadyScore{
			Current:           current,
			Previous:          domain.IntFromPtrWithDefault(current, rs.Previous),
			LastCelebrationAt: date(rs.LastCelebrationAt),
		}
	}
	return state
}

// LoadSnapshot reads, validates and converts a snapshot file.
func LoadSnapshot(path string, loc *time.Location) (domain.StateSnapshot, error) {
	f, err := Load(path)
	if err != nil {
		return domain.StateSnapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return Convert(f, loc)
}
