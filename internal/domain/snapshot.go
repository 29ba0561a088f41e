package domain

import "time"

// StateSnapshot is everything the nudge engines know about one user for a
// single evaluation pass. It is read-only for the duration of the pass.
type StateSnapshot struct {
	UserID         string
	Programs       []TargetProgram
	Certifications []Certification
	LORRequests    []LORRequest
	Events         []SavedEvent
	Academics      AcademicProfile
	Tracker        TrackerStats
	Engagement     EngagementState
	LastLoginAt    *time.Time
}

// TargetProgram is a CRNA program the user has saved as a target.
type TargetProgram struct {
	ID                  string
	Name                string
	Status              ProgramStatus
	ApplicationDeadline *time.Time
	RequiredLORs        int
	Prerequisites       []string
	Interview           *InterviewDetails
	OverdueTasks        int
}

// InterviewDetails tracks one program's interview lifecycle.
type InterviewDetails struct {
	Date              *time.Time
	Format            InterviewFormat
	Outcome           InterviewOutcome
	ThankYouSent      bool
	FeedbackSubmitted bool
}

type Certification struct {
	Type           CertType
	Name           string
	ExpirationDate *time.Time
}

// Label returns the name to show for the certification.
func (c Certification) Label() string {
	return CoalesceStr(c.Name, c.Type.DisplayName())
}

type LORRequest struct {
	ID              string
	ProgramID       string // empty when the letter is not tied to one program
	RecommenderName string
	Status          LORStatus
	RequestedAt     *time.Time
}

type SavedEvent struct {
	ID               string
	Name             string
	Date             *time.Time
	URL              string
	AttendanceStatus AttendanceStatus
}

type Course struct {
	Name  string
	Grade string
}

type AcademicProfile struct {
	Completed  []Course
	InProgress []string
	Planned    []string
}

// TrackerStats summarizes how active the user has been in the trackers.
type TrackerStats struct {
	ActiveDaysLast30 int
	EntriesLogged    int
	ClinicalHours    int
	ShadowingHours   int
}

type ReadyScore struct {
	Current           int
	Previous          int
	LastCelebrationAt *time.Time
}

// EngagementState carries the counters the engagement engine compares
// against their previous values to detect crossings.
type EngagementState struct {
	OnboardingComplete         bool
	LoginStreak                int
	PreviousStreak             int
	ReadyScore                 ReadyScore
	ChecklistCompleted         int
	PreviousChecklistCompleted int
	TargetCount                int
	PreviousTargetCount        int
	AcknowledgedAcceptances    []string
}
