// Package snapshot loads a user state snapshot from a YAML or JSON file and
// converts it into the domain model the engines read.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level structure of a snapshot file. JSON files parse
// through the same YAML decoder.
type File struct {
	UserID         string                `yaml:"userId"`
	LastLoginAt    *string               `yaml:"lastLoginAt,omitempty"`
	Programs       []ProgramImport       `yaml:"programs"`
	Certifications []CertificationImport `yaml:"certifications,omitempty"`
	LORRequests    []LORImport           `yaml:"lorRequests,omitempty"`
	Events         []EventImport         `yaml:"events,omitempty"`
	Academics      *AcademicsImport      `yaml:"academics,omitempty"`
	Tracker        *TrackerImport        `yaml:"tracker,omitempty"`
	Engagement     *EngagementImport     `yaml:"engagement,omitempty"`
}

type ProgramImport struct {
	ID                  string           `yaml:"id"`
	Name                string           `yaml:"name"`
	Status              string           `yaml:"status,omitempty"`
	ApplicationDeadline *string          `yaml:"applicationDeadline,omitempty"`
	RequiredLORs        *int             `yaml:"requiredLors,omitempty"`
	Prerequisites       []string         `yaml:"prerequisites,omitempty"`
	Interview           *InterviewImport `yaml:"interview,omitempty"`
	OverdueTasks        *int             `yaml:"overdueTasks,omitempty"`
}

type InterviewImport struct {
	Date              *string `yaml:"date,omitempty"`
	Format            string  `yaml:"format,omitempty"`
	Outcome           string  `yaml:"outcome,omitempty"`
	ThankYouSent      *bool   `yaml:"thankYouSent,omitempty"`
	FeedbackSubmitted *bool   `yaml:"feedbackSubmitted,omitempty"`
}

type CertificationImport struct {
	Type           string  `yaml:"type"`
	Name           string  `yaml:"name,omitempty"`
	ExpirationDate *string `yaml:"expirationDate,omitempty"`
}

type LORImport struct {
	ID              string  `yaml:"id,omitempty"`
	ProgramID       string  `yaml:"programId,omitempty"`
	RecommenderName string  `yaml:"recommenderName"`
	Status          string  `yaml:"status"`
	RequestedAt     *string `yaml:"requestedAt,omitempty"`
}

type EventImport struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Date             *string `yaml:"date,omitempty"`
	URL              string  `yaml:"url,omitempty"`
	AttendanceStatus string  `yaml:"attendanceStatus,omitempty"`
}

type AcademicsImport struct {
	Completed  []CourseImport `yaml:"completed,omitempty"`
	InProgress []string       `yaml:"inProgress,omitempty"`
	Planned    []string       `yaml:"planned,omitempty"`
}

type CourseImport struct {
	Name  string `yaml:"name"`
	Grade string `yaml:"grade,omitempty"`
}

type TrackerImport struct {
	ActiveDaysLast30 *int `yaml:"activeDaysLast30,omitempty"`
	EntriesLogged    *int `yaml:"entriesLogged,omitempty"`
	ClinicalHours    *int `yaml:"clinicalHours,omitempty"`
	ShadowingHours   *int `yaml:"shadowingHours,omitempty"`
}

type EngagementImport struct {
	OnboardingComplete         *bool             `yaml:"onboardingComplete,omitempty"`
	LoginStreak                *int              `yaml:"loginStreak,omitempty"`
	PreviousStreak             *int              `yaml:"previousStreak,omitempty"`
	ReadyScore                 *ReadyScoreImport `yaml:"readyScore,omitempty"`
	ChecklistCompleted         *int              `yaml:"checklistCompleted,omitempty"`
	PreviousChecklistCompleted *int              `yaml:"previousChecklistCompleted,omitempty"`
	TargetCount                *int              `yaml:"targetCount,omitempty"`
	PreviousTargetCount        *int              `yaml:"previousTargetCount,omitempty"`
	AcknowledgedAcceptances    []string          `yaml:"acknowledgedAcceptances,omitempty"`
}

type ReadyScoreImport struct {
	Current           *int    `yaml:"current,omitempty"`
	Previous          *int    `yaml:"previous,omitempty"`
	LastCelebrationAt *string `yaml:"lastCelebrationAt,omitempty"`
}

// Parse decodes snapshot data in YAML or JSON.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &f, nil
}

// Load reads and parses a snapshot file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
