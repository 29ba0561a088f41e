package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

var testProgramCounter atomic.Int64

// FixedNow is the reference instant used by fixture-driven tests.
var FixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// DaysFrom returns now shifted by days, as a pointer.
func DaysFrom(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

// Program options
type ProgramOption func(*domain.TargetProgram)

func WithProgramID(id string) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.ID = id
	}
}

func WithStatus(s domain.ProgramStatus) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.Status = s
	}
}

func WithDeadline(d time.Time) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.ApplicationDeadline = &d
	}
}

func WithRequiredLORs(n int) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.RequiredLORs = n
	}
}

func WithPrerequisites(courses ...string) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.Prerequisites = courses
	}
}

func WithInterview(date *time.Time, format domain.InterviewFormat) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.Interview = &domain.InterviewDetails{Date: date, Format: format, Outcome: domain.OutcomePending}
	}
}

func WithOverdueTasks(n int) ProgramOption {
	return func(p *domain.TargetProgram) {
		p.OverdueTasks = n
	}
}

func NewTestProgram(name string, opts ...ProgramOption) domain.TargetProgram {
	p := domain.TargetProgram{
		ID:     fmt.Sprintf("prog-%d", testProgramCounter.Add(1)),
		Name:   name,
		Status: domain.ProgramPreparing,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestCertification(t domain.CertType, expires *time.Time) domain.Certification {
	return domain.Certification{Type: t, ExpirationDate: expires}
}

func NewTestLOR(recommender string, status domain.LORStatus, requestedAt *time.Time) domain.LORRequest {
	return domain.LORRequest{
		ID:              "lor-" + recommender,
		RecommenderName: recommender,
		Status:          status,
		RequestedAt:     requestedAt,
	}
}

func NewTestEvent(id, name string, date *time.Time) domain.SavedEvent {
	return domain.SavedEvent{ID: id, Name: name, Date: date}
}

// Snapshot options
type SnapshotOption func(*domain.StateSnapshot)

func WithPrograms(programs ...domain.TargetProgram) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.Programs = append(s.Programs, programs...)
		s.Engagement.TargetCount = len(s.Programs)
		s.Engagement.PreviousTargetCount = len(s.Programs)
	}
}

func WithCertifications(certs ...domain.Certification) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.Certifications = append(s.Certifications, certs...)
	}
}

func WithLORs(reqs ...domain.LORRequest) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.LORRequests = append(s.LORRequests, reqs...)
	}
}

func WithEvents(events ...domain.SavedEvent) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.Events = append(s.Events, events...)
	}
}

func WithAcademics(a domain.AcademicProfile) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.Academics = a
	}
}

func WithEngagement(fn func(*domain.EngagementState)) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		fn(&s.Engagement)
	}
}

func WithLastLogin(t time.Time) SnapshotOption {
	return func(s *domain.StateSnapshot) {
		s.LastLoginAt = &t
	}
}

// NewTestSnapshot returns a quiet snapshot: onboarding done, logged in at
// now, every prerequisite in the default set planned. Options add the
// facts a test cares about.
func NewTestSnapshot(now time.Time, opts ...SnapshotOption) domain.StateSnapshot {
	last := now
	s := domain.StateSnapshot{
		UserID:      "user-1",
		LastLoginAt: &last,
		Academics: domain.AcademicProfile{
			Planned: []string{
				"General Chemistry", "Organic Chemistry", "Biochemistry",
				"Anatomy & Physiology", "Microbiology", "Statistics",
			},
		},
		Engagement: domain.EngagementState{OnboardingComplete: true},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
