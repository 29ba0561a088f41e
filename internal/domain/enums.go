package domain

type ProgramStatus string

const (
	ProgramResearching        ProgramStatus = "researching"
	ProgramPreparing          ProgramStatus = "preparing"
	ProgramInProgress         ProgramStatus = "in_progress"
	ProgramSubmitted          ProgramStatus = "submitted"
	ProgramInterviewInvite    ProgramStatus = "interview_invite"
	ProgramInterviewScheduled ProgramStatus = "interview_scheduled"
	ProgramInterviewed        ProgramStatus = "interviewed"
	ProgramWaitlisted         ProgramStatus = "waitlisted"
	ProgramAccepted           ProgramStatus = "accepted"
	ProgramRejected           ProgramStatus = "rejected"
)

// ValidProgramStatuses is the canonical set of accepted program status strings.
var ValidProgramStatuses = map[string]bool{
	"researching": true, "preparing": true, "in_progress": true, "submitted": true,
	"interview_invite": true, "interview_scheduled": true, "interviewed": true,
	"waitlisted": true, "accepted": true, "rejected": true,
}

// IsSubmitted reports whether the application has left the applicant's hands.
func (s ProgramStatus) IsSubmitted() bool {
	switch s {
	case ProgramSubmitted, ProgramInterviewInvite, ProgramInterviewScheduled,
		ProgramInterviewed, ProgramWaitlisted, ProgramAccepted, ProgramRejected:
		return true
	}
	return false
}

// IsInterviewing reports whether the program is somewhere in the interview loop.
func (s ProgramStatus) IsInterviewing() bool {
	switch s {
	case ProgramInterviewInvite, ProgramInterviewScheduled, ProgramInterviewed, ProgramWaitlisted:
		return true
	}
	return false
}

type UserStage string

const (
	StageExploring    UserStage = "exploring"
	StagePreparing    UserStage = "preparing"
	StageApplying     UserStage = "applying"
	StageInterviewing UserStage = "interviewing"
	StageAccepted     UserStage = "accepted"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Score returns the 0-100 sub-score used by the priority formula.
func (u Urgency) Score() float64 {
	switch u {
	case UrgencyCritical:
		return 100
	case UrgencyHigh:
		return 75
	case UrgencyMedium:
		return 50
	case UrgencyLow:
		return 25
	default:
		return 0
	}
}

type NudgeType string

const (
	NudgeCelebration  NudgeType = "celebration"
	NudgeAlert        NudgeType = "alert"
	NudgeReminder     NudgeType = "reminder"
	NudgeConfirmation NudgeType = "confirmation"
	NudgeSuggestion   NudgeType = "suggestion"
)

type EngineID string

const (
	EngineDeadline      EngineID = "deadline"
	EngineCertification EngineID = "certification"
	EngineLOR           EngineID = "lor"
	EngineInterview     EngineID = "interview"
	EnginePrerequisite  EngineID = "prerequisite"
	EngineEvent         EngineID = "event"
	EngineEngagement    EngineID = "engagement"
)

// AllEngines returns every engine in evaluation order.
func AllEngines() []EngineID {
	return []EngineID{
		EngineDeadline, EngineCertification, EngineLOR, EngineInterview,
		EnginePrerequisite, EngineEvent, EngineEngagement,
	}
}

type ActionType string

const (
	ActionLink     ActionType = "link"
	ActionConfirm  ActionType = "confirm"
	ActionDismiss  ActionType = "dismiss"
	ActionSnooze   ActionType = "snooze"
	ActionExternal ActionType = "external"
)

type Surface string

const (
	SurfaceDashboard Surface = "dashboard"
	SurfaceInline    Surface = "inline"
)

type LORStatus string

const (
	LORPending   LORStatus = "pending"
	LORRequested LORStatus = "requested"
	LORReceived  LORStatus = "received"
	LORSubmitted LORStatus = "submitted"
	LORDeclined  LORStatus = "declined"
)

// IsOutstanding reports whether the letter is still being waited on.
func (s LORStatus) IsOutstanding() bool {
	return s == LORPending || s == LORRequested
}

// IsReceived reports whether the letter has arrived.
func (s LORStatus) IsReceived() bool {
	return s == LORReceived || s == LORSubmitted
}

type AttendanceStatus string

const (
	AttendanceUnset        AttendanceStatus = ""
	AttendanceAttending    AttendanceStatus = "attending"
	AttendanceNotAttending AttendanceStatus = "not_attending"
	AttendanceAttended     AttendanceStatus = "attended"
	AttendanceNotAttended  AttendanceStatus = "not_attended"
)

// IsSettled reports whether no further event nudges apply.
func (s AttendanceStatus) IsSettled() bool {
	return s == AttendanceNotAttending || s == AttendanceAttended || s == AttendanceNotAttended
}

type InterviewFormat string

const (
	InterviewInPerson InterviewFormat = "in_person"
	InterviewVirtual  InterviewFormat = "virtual"
)

type InterviewOutcome string

const (
	OutcomePending    InterviewOutcome = "pending"
	OutcomeAccepted   InterviewOutcome = "accepted"
	OutcomeRejected   InterviewOutcome = "rejected"
	OutcomeWaitlisted InterviewOutcome = "waitlisted"
)

type CertType string

const (
	CertBLS  CertType = "bls"
	CertACLS CertType = "acls"
	CertPALS CertType = "pals"
	CertCCRN CertType = "ccrn"
	CertNRP  CertType = "nrp"
	CertTNCC CertType = "tncc"
)

// DisplayName returns a human-readable label for the certification.
func (c CertType) DisplayName() string {
	switch c {
	case CertBLS:
		return "BLS"
	case CertACLS:
		return "ACLS"
	case CertPALS:
		return "PALS"
	case CertCCRN:
		return "CCRN"
	case CertNRP:
		return "NRP"
	case CertTNCC:
		return "TNCC"
	default:
		return string(c)
	}
}
