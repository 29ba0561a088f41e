package engine

import (
	"testing"
	"time"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateDeadlines_TierBoundaries(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)

	tests := []struct {
		days int
		want string
	}{
		{0, catalog.Deadline7},
		{7, catalog.Deadline7},
		{8, catalog.Deadline14},
		{14, catalog.Deadline14},
		{15, catalog.Deadline30},
		{30, catalog.Deadline30},
		{31, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		p := testutil.NewTestProgram("Program", testutil.WithDeadline(now.AddDate(0, 0, tt.days)))
		nudges := e.EvaluateDeadlines([]domain.TargetProgram{p}, Context{Now: now})
		if tt.want == "" {
			assert.Empty(t, nudges, "days=%d", tt.days)
			continue
		}
		require.Len(t, nudges, 1, "days=%d", tt.days)
		assert.Equal(t, tt.want, nudges[0].PromptID, "days=%d", tt.days)
	}
}

func TestEvaluateDeadlines_SkipsSubmittedAndSortsByDays(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	programs := []domain.TargetProgram{
		testutil.NewTestProgram("Late", testutil.WithProgramID("late"), testutil.WithDeadline(now.AddDate(0, 0, 20))),
		testutil.NewTestProgram("Done", testutil.WithProgramID("done"), testutil.WithDeadline(now.AddDate(0, 0, 3)),
			testutil.WithStatus(domain.ProgramSubmitted)),
		testutil.NewTestProgram("Soon", testutil.WithProgramID("soon"), testutil.WithDeadline(now.AddDate(0, 0, 4))),
		testutil.NewTestProgram("None", testutil.WithProgramID("none")),
	}

	nudges := e.EvaluateDeadlines(programs, Context{Now: now})

	require.Len(t, nudges, 2)
	assert.Equal(t, "DEADLINE_7_soon", nudges[0].ID)
	assert.Equal(t, "DEADLINE_30_late", nudges[1].ID)
}

func TestEvaluateCertifications_TierBoundaries(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)

	tests := []struct {
		days int
		want string
	}{
		{30, catalog.CertExpiring30},
		{31, catalog.CertExpiring90},
		{90, catalog.CertExpiring90},
		{91, ""},
		{-2, ""},
	}
	for _, tt := range tests {
		c := testutil.NewTestCertification(domain.CertBLS, testutil.DaysFrom(now, tt.days))
		nudges := e.EvaluateCertifications([]domain.Certification{c}, Context{Now: now})
		if tt.want == "" {
			assert.Empty(t, nudges, "days=%d", tt.days)
			continue
		}
		require.Len(t, nudges, 1, "days=%d", tt.days)
		assert.Equal(t, tt.want, nudges[0].PromptID, "days=%d", tt.days)
	}

	missing := testutil.NewTestCertification(domain.CertBLS, nil)
	assert.Empty(t, e.EvaluateCertifications([]domain.Certification{missing}, Context{Now: now}))
}

func TestEvaluateLORs_FollowupTiersAreExclusive(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	reqs := []domain.LORRequest{
		testutil.NewTestLOR("Fresh", domain.LORRequested, testutil.DaysFrom(now, -10)),
		testutil.NewTestLOR("Waiting", domain.LORPending, testutil.DaysFrom(now, -21)),
		testutil.NewTestLOR("Stale", domain.LORRequested, testutil.DaysFrom(now, -45)),
		testutil.NewTestLOR("Received", domain.LORReceived, testutil.DaysFrom(now, -45)),
	}

	nudges := e.EvaluateLORs(reqs, nil, Context{Now: now})

	require.Len(t, nudges, 2)
	ids := []string{nudges[0].ID, nudges[1].ID}
	assert.ElementsMatch(t, []string{"LOR_FOLLOWUP_21_Waiting", "LOR_FOLLOWUP_30_Stale"}, ids)
}

func TestEvaluateLORs_MissingLettersBeforeDeadline(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	duke := testutil.NewTestProgram("Duke", testutil.WithProgramID("duke"),
		testutil.WithDeadline(now.AddDate(0, 0, 10)), testutil.WithRequiredLORs(3))
	far := testutil.NewTestProgram("Far", testutil.WithProgramID("far"),
		testutil.WithDeadline(now.AddDate(0, 0, 40)), testutil.WithRequiredLORs(3))

	forDuke := testutil.NewTestLOR("A", domain.LORReceived, nil)
	forDuke.ProgramID = "duke"
	unassigned := testutil.NewTestLOR("B", domain.LORSubmitted, nil)
	elsewhere := testutil.NewTestLOR("C", domain.LORReceived, nil)
	elsewhere.ProgramID = "other"

	nudges := e.EvaluateLORs([]domain.LORRequest{forDuke, unassigned, elsewhere}, []domain.TargetProgram{duke, far}, Context{Now: now})

	require.Len(t, nudges, 1)
	n := nudges[0]
	assert.Equal(t, "LOR_MISSING_FOR_DEADLINE_duke", n.ID)
	assert.Equal(t, 2, n.Context["receivedCount"])
	assert.Equal(t, 1, n.Context["missingCount"])
}

func TestEvaluateInterviews_Tiers(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)

	tests := []struct {
		name   string
		days   int
		format domain.InterviewFormat
		want   []string
	}{
		{"tomorrow", 1, domain.InterviewVirtual, []string{catalog.Interview1}},
		{"three days", 2, domain.InterviewVirtual, []string{catalog.Interview3}},
		{"week in person", 7, domain.InterviewInPerson, []string{catalog.Interview7InPerson}},
		{"week virtual", 5, domain.InterviewVirtual, []string{catalog.Interview7Virtual}},
		{"two weeks", 10, domain.InterviewVirtual, []string{catalog.Interview14}},
		{"month", 30, domain.InterviewVirtual, []string{catalog.Interview30}},
		{"too far", 31, domain.InterviewVirtual, nil},
		{"day after", -1, domain.InterviewVirtual, []string{catalog.InterviewThankYou, catalog.InterviewFeedbackForm}},
		{"quiet middle", -5, domain.InterviewVirtual, nil},
		{"outcome pending", -14, domain.InterviewVirtual, []string{catalog.InterviewOutcomeCheck}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewTestProgram("Rush",
				testutil.WithStatus(domain.ProgramInterviewScheduled),
				testutil.WithInterview(testutil.DaysFrom(now, tt.days), tt.format))
			got := promptIDs(e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: now}))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEvaluateInterviews_FollowupsRespectFlags(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	p := testutil.NewTestProgram("Rush",
		testutil.WithStatus(domain.ProgramInterviewed),
		testutil.WithInterview(testutil.DaysFrom(now, -1), domain.InterviewInPerson))
	p.Interview.ThankYouSent = true

	got := promptIDs(e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: now}))
	assert.Equal(t, []string{catalog.InterviewFeedbackForm}, got)

	p.Interview = &domain.InterviewDetails{Date: testutil.DaysFrom(now, -20), Format: domain.InterviewVirtual, Outcome: domain.OutcomeAccepted}
	assert.Empty(t, e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: now}))
}

func TestEvaluateInterviews_FollowupsUseCalendarDays(t *testing.T) {
	e := newTestEvaluator(t)
	interviewAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	followups := []string{catalog.InterviewThankYou, catalog.InterviewFeedbackForm}

	tests := []struct {
		name    string
		status  domain.ProgramStatus
		elapsed time.Duration
		want    []string
	}{
		{"same afternoon", domain.ProgramInterviewed, 6 * time.Hour, nil},
		{"next morning", domain.ProgramInterviewed, 26 * time.Hour, followups},
		{"next afternoon", domain.ProgramInterviewed, 30 * time.Hour, followups},
		{"two days on", domain.ProgramInterviewed, 40 * time.Hour, nil},
		{"scheduled but already held", domain.ProgramInterviewScheduled, 6 * time.Hour, nil},
		{"scheduled next day", domain.ProgramInterviewScheduled, 26 * time.Hour, followups},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := interviewAt
			p := testutil.NewTestProgram("Rush",
				testutil.WithStatus(tt.status),
				testutil.WithInterview(&date, domain.InterviewVirtual))
			got := promptIDs(e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: interviewAt.Add(tt.elapsed)}))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestEvaluateInterviews_LaterTodayIsStillCountdown(t *testing.T) {
	e := newTestEvaluator(t)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := now.Add(3 * time.Hour)
	p := testutil.NewTestProgram("Rush",
		testutil.WithStatus(domain.ProgramInterviewScheduled),
		testutil.WithInterview(&date, domain.InterviewInPerson))

	assert.Equal(t, []string{catalog.Interview1}, promptIDs(e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: now})))

	p.Status = domain.ProgramInterviewed
	assert.Empty(t, e.EvaluateInterviews([]domain.TargetProgram{p}, Context{Now: now}))
}

func TestEvaluateInterviews_MissingDetailsAndWaitlist(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	programs := []domain.TargetProgram{
		testutil.NewTestProgram("Invite", testutil.WithProgramID("inv"), testutil.WithStatus(domain.ProgramInterviewInvite)),
		testutil.NewTestProgram("Done", testutil.WithProgramID("done"), testutil.WithStatus(domain.ProgramInterviewed)),
		testutil.NewTestProgram("Wait", testutil.WithProgramID("wait"), testutil.WithStatus(domain.ProgramWaitlisted)),
	}

	nudges := e.EvaluateInterviews(programs, Context{Now: now})

	var ids []string
	for _, n := range nudges {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"INTERVIEW_SET_DATE_inv", "WAITLIST_UPDATE_wait"}, ids)
}

func TestEvaluatePrerequisites_CoverageIsTransitive(t *testing.T) {
	e := newTestEvaluator(t)
	programs := []domain.TargetProgram{
		testutil.NewTestProgram("Duke", testutil.WithPrerequisites("General Chemistry", "Anatomy & Physiology", "Statistics")),
		testutil.NewTestProgram("Rush", testutil.WithPrerequisites("statistics", "Microbiology")),
	}
	academics := domain.AcademicProfile{
		Completed:  []domain.Course{{Name: "Biochemistry", Grade: "A"}},
		InProgress: []string{"Pathophysiology"},
	}

	nudges := e.EvaluatePrerequisites(academics, programs, Context{Now: testutil.FixedNow})

	byID := map[string]domain.Nudge{}
	for _, n := range nudges {
		byID[n.ID] = n
	}
	require.Len(t, byID, 2)
	require.Contains(t, byID, "PREREQ_MISSING_Statistics")
	require.Contains(t, byID, "PREREQ_MISSING_Microbiology")
	assert.Equal(t, []string{"Duke", "Rush"}, byID["PREREQ_MISSING_Statistics"].Context["requiredBy"])
}

func TestEvaluatePrerequisites_DefaultsAndRetake(t *testing.T) {
	e := newTestEvaluator(t)
	academics := domain.AcademicProfile{
		Completed: []domain.Course{
			{Name: "Organic Chemistry", Grade: "C+"},
			{Name: "Statistics", Grade: "C"},
		},
		Planned: []string{"Biochemistry", "Anatomy & Physiology", "Microbiology"},
	}

	nudges := e.EvaluatePrerequisites(academics, nil, Context{Now: testutil.FixedNow})

	require.Len(t, nudges, 1)
	assert.Equal(t, "PREREQ_RETAKE_Organic Chemistry", nudges[0].ID)
	assert.Equal(t, "C+", nudges[0].Context["grade"])
}

func TestEvaluateEvents_SkipsSettledAttendance(t *testing.T) {
	now := testutil.FixedNow
	e := newTestEvaluator(t)
	attended := testutil.NewTestEvent("ev1", "Open House", testutil.DaysFrom(now, -2))
	attended.AttendanceStatus = domain.AttendanceAttended
	skipping := testutil.NewTestEvent("ev2", "Webinar", testutil.DaysFrom(now, 1))
	skipping.AttendanceStatus = domain.AttendanceNotAttending
	going := testutil.NewTestEvent("ev3", "Fair", testutil.DaysFrom(now, 1))
	going.AttendanceStatus = domain.AttendanceAttending

	nudges := e.EvaluateEvents([]domain.SavedEvent{attended, skipping, going}, Context{Now: now})

	require.Len(t, nudges, 1)
	assert.Equal(t, "EVENT_TOMORROW_ev3", nudges[0].ID)
}

func TestEvaluateEvents_LogReminderOnSecondCalendarDay(t *testing.T) {
	e := newTestEvaluator(t)
	eventDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	ev := testutil.NewTestEvent("ev1", "Open House", &eventDay)

	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{"next day", time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), nil},
		{"second day morning", time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC), []string{"EVENT_LOG_REMINDER_ev1"}},
		{"second day late", time.Date(2026, 3, 12, 23, 30, 0, 0, time.UTC), []string{"EVENT_LOG_REMINDER_ev1"}},
		{"third day", time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, n := range e.EvaluateEvents([]domain.SavedEvent{ev}, Context{Now: tt.now}) {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
