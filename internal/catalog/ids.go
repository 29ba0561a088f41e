package catalog

// Prompt ids referenced from engine code.
const (
	Deadline7  = "DEADLINE_7"
	Deadline14 = "DEADLINE_14"
	Deadline30 = "DEADLINE_30"

	CertExpiring30 = "CERT_EXPIRING_30"
	CertExpiring90 = "CERT_EXPIRING_90"

	LORFollowup21         = "LOR_FOLLOWUP_21"
	LORFollowup30         = "LOR_FOLLOWUP_30"
	LORMissingForDeadline = "LOR_MISSING_FOR_DEADLINE"

	InterviewSetDate      = "INTERVIEW_SET_DATE"
	Interview30           = "INTERVIEW_30"
	Interview14           = "INTERVIEW_14"
	Interview7InPerson    = "INTERVIEW_7_IN_PERSON"
	Interview7Virtual     = "INTERVIEW_7_VIRTUAL"
	Interview3            = "INTERVIEW_3"
	Interview1            = "INTERVIEW_1"
	InterviewThankYou     = "INTERVIEW_THANK_YOU"
	InterviewFeedbackForm = "INTERVIEW_FEEDBACK_FORM"
	InterviewOutcomeCheck = "INTERVIEW_OUTCOME_CHECK"
	WaitlistUpdate        = "WAITLIST_UPDATE"

	PrereqMissing = "PREREQ_MISSING"
	PrereqRetake  = "PREREQ_RETAKE"

	EventTomorrow    = "EVENT_TOMORROW"
	EventLogReminder = "EVENT_LOG_REMINDER"

	WelcomeBackOnboarding = "WELCOME_BACK_ONBOARDING"
	WelcomeBackTasks      = "WELCOME_BACK_TASKS"
	WelcomeBackDeadline   = "WELCOME_BACK_DEADLINE"
	WelcomeBackGeneric    = "WELCOME_BACK_GENERIC"
	StreakAtRisk          = "STREAK_AT_RISK"
	LoginStreak3          = "LOGIN_STREAK_3"
	LoginStreak7          = "LOGIN_STREAK_7"
	LoginStreak14         = "LOGIN_STREAK_14"
	LoginStreak30         = "LOGIN_STREAK_30"
	LoginStreakMilestone  = "LOGIN_STREAK_MILESTONE"
	ReadyScoreUp          = "READYSCORE_UP"
	Checklist1            = "CHECKLIST_FIRST"
	Checklist5            = "CHECKLIST_5"
	Checklist10           = "CHECKLIST_10"
	FirstTargetSaved      = "FIRST_TARGET_SAVED"
	SchoolScout           = "SCHOOL_SCOUT"
	Acceptance            = "ACCEPTANCE"
)
