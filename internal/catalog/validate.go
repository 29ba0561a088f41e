package catalog

import (
	"fmt"

	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

var (
	validEngines = map[domain.EngineID]bool{
		domain.EngineDeadline: true, domain.EngineCertification: true, domain.EngineLOR: true,
		domain.EngineInterview: true, domain.EnginePrerequisite: true, domain.EngineEvent: true,
		domain.EngineEngagement: true,
	}
	validTypes = map[domain.NudgeType]bool{
		domain.NudgeCelebration: true, domain.NudgeAlert: true, domain.NudgeReminder: true,
		domain.NudgeConfirmation: true, domain.NudgeSuggestion: true,
	}
	validUrgencies = map[domain.Urgency]bool{
		domain.UrgencyLow: true, domain.UrgencyMedium: true,
		domain.UrgencyHigh: true, domain.UrgencyCritical: true,
	}
	validActionTypes = map[domain.ActionType]bool{
		domain.ActionLink: true, domain.ActionConfirm: true, domain.ActionDismiss: true,
		domain.ActionSnooze: true, domain.ActionExternal: true,
	}
)

// Validate checks every definition and returns all problems found. Every
// placeholder used by a template must be declared in its vars list.
func Validate(defs []Definition) []error {
	var errs []error
	seen := make(map[string]bool, len(defs))

	for i, d := range defs {
		where := fmt.Sprintf("prompts[%d]", i)
		if d.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", where))
			continue
		}
		where = d.ID
		if seen[d.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", where))
		}
		seen[d.ID] = true

		if !validEngines[d.Engine] {
			errs = append(errs, fmt.Errorf("%s: invalid engine %q", where, d.Engine))
		}
		if !validTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s: invalid type %q", where, d.Type))
		}
		if !validUrgencies[d.Urgency] {
			errs = append(errs, fmt.Errorf("%s: invalid urgency %q", where, d.Urgency))
		}
		if d.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", where))
		}

		declared := make(map[string]bool, len(d.Vars))
		for _, v := range d.Vars {
			declared[v] = true
		}
		templates := []string{d.Title, d.Message}
		for j, a := range d.Actions {
			if a.Label == "" {
				errs = append(errs, fmt.Errorf("%s: actions[%d].label is required", where, j))
			}
			if !validActionTypes[a.Type] {
				errs = append(errs, fmt.Errorf("%s: actions[%d]: invalid type %q", where, j, a.Type))
			}
			templates = append(templates, a.Href)
		}
		for _, tmpl := range templates {
			for _, p := range promptutil.Placeholders(tmpl) {
				if !declared[p] {
					errs = append(errs, fmt.Errorf("%s: placeholder {{%s}} not declared in vars", where, p))
				}
			}
		}
	}
	return errs
}
