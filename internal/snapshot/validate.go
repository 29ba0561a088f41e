package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/smartprompts/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	validCertTypes  = map[string]bool{"bls": true, "acls": true, "pals": true, "ccrn": true, "nrp": true, "tncc": true}
	validLORStatus  = map[string]bool{"pending": true, "requested": true, "received": true, "submitted": true, "declined": true}
	validAttendance = map[string]bool{"": true, "attending": true, "not_attending": true, "attended": true, "not_attended": true}
	validFormats    = map[string]bool{"": true, "in_person": true, "virtual": true}
	validOutcomes   = map[string]bool{"": true, "pending": true, "accepted": true, "rejected": true, "waitlisted": true}
)

// Validate checks the file before conversion and returns every problem
// found.
func Validate(f *File) []error {
	var errs []error

	errs = append(errs, validateDate("lastLoginAt", f.LastLoginAt)...)

	programIDs := make(map[string]bool)
	errs = append(errs, validatePrograms(f.Programs, programIDs)...)
	errs = append(errs, validateCertifications(f.Certifications)...)
	errs = append(errs, validateLORs(f.LORRequests, programIDs)...)
	errs = append(errs, validateEvents(f.Events)...)
	errs = append(errs, validateCounts(f)...)

	return errs
}

func validateDate(field string, s *string) []error {
	if s == nil {
		return nil
	}
	if _, err := parseDate(*s, time.UTC); err != nil {
		return []error{fmt.Errorf("%s: invalid date %q (expected YYYY-MM-DD or RFC3339)", field, *s)}
	}
	return nil
}

func validatePrograms(programs []ProgramImport, ids map[string]bool) []error {
	var errs []error
	for i, p := range programs {
		prefix := fmt.Sprintf("programs[%d]", i)
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", prefix, p.ID))
		}
		ids[p.ID] = true

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Status != "" && !domain.ValidProgramStatuses[p.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, p.Status))
		}
		errs = append(errs, validateDate(prefix+".applicationDeadline", p.ApplicationDeadline)...)
		if p.RequiredLORs != nil && *p.RequiredLORs < 0 {
			errs = append(errs, fmt.Errorf("%s.requiredLors must be >= 0", prefix))
		}
		if p.OverdueTasks != nil && *p.OverdueTasks < 0 {
			errs = append(errs, fmt.Errorf("%s.overdueTasks must be >= 0", prefix))
		}
		if iv := p.Interview; iv != nil {
			errs = append(errs, validateDate(prefix+".interview.date", iv.Date)...)
			if !validFormats[iv.Format] {
				errs = append(errs, fmt.Errorf("%s.interview.format: invalid value %q", prefix, iv.Format))
			}
			if !validOutcomes[iv.Outcome] {
				errs = append(errs, fmt.Errorf("%s.interview.outcome: invalid value %q", prefix, iv.Outcome))
			}
		}
	}
	return errs
}

func validateCertifications(certs []CertificationImport) []error {
	var errs []error
	for i, c := range certs {
		prefix := fmt.Sprintf("certifications[%d]", i)
		if !validCertTypes[c.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, c.Type))
		}
		errs = append(errs, validateDate(prefix+".expirationDate", c.ExpirationDate)...)
	}
	return errs
}

func validateLORs(reqs []LORImport, programIDs map[string]bool) []error {
	var errs []error
	for i, r := range reqs {
		prefix := fmt.Sprintf("lorRequests[%d]", i)
		if r.RecommenderName == "" {
			errs = append(errs, fmt.Errorf("%s.recommenderName is required", prefix))
		}
		if !validLORStatus[r.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, r.Status))
		}
		if r.ProgramID != "" && !programIDs[r.ProgramID] {
			errs = append(errs, fmt.Errorf("%s.programId %q not found in programs", prefix, r.ProgramID))
		}
		errs = append(errs, validateDate(prefix+".requestedAt", r.RequestedAt)...)
	}
	return errs
}

func validateEvents(events []EventImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if seen[e.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", prefix, e.ID))
		}
		seen[e.ID] = true
		if !validAttendance[e.AttendanceStatus] {
			errs = append(errs, fmt.Errorf("%s.attendanceStatus: invalid value %q", prefix, e.AttendanceStatus))
		}
		errs = append(errs, validateDate(prefix+".date", e.Date)...)
	}
	return errs
}

func validateCounts(f *File) []error {
	var errs []error
	check := func(field string, v *int) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0", field))
		}
	}
	if t := f.Tracker; t != nil {
		check("tracker.activeDaysLast30", t.ActiveDaysLast30)
		check("tracker.entriesLogged", t.EntriesLogged)
		check("tracker.clinicalHours", t.ClinicalHours)
		check("tracker.shadowingHours", t.ShadowingHours)
	}
	if e := f.Engagement; e != nil {
		check("engagement.loginStreak", e.LoginStreak)
		check("engagement.previousStreak", e.PreviousStreak)
		check("engagement.checklistCompleted", e.ChecklistCompleted)
		check("engagement.previousChecklistCompleted", e.PreviousChecklistCompleted)
		check("engagement.targetCount", e.TargetCount)
		check("engagement.previousTargetCount", e.PreviousTargetCount)
		if rs := e.ReadyScore; rs != nil {
			errs = append(errs, validateDate("engagement.readyScore.lastCelebrationAt", rs.LastCelebrationAt)...)
		}
	}
	return errs
}
