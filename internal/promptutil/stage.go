package promptutil

import "github.com/alexanderramin/smartprompts/internal/domain"

// InferUserStage projects the user's funnel position from program statuses.
// The first matching rule wins: accepted, interviewing, applying, preparing,
// and exploring when there are no targets at all.
func InferUserStage(programs []domain.TargetProgram) domain.UserStage {
	has := func(pred func(domain.ProgramStatus) bool) bool {
		for _, p := range programs {
			if pred(p.Status) {
				return true
			}
		}
		return false
	}

	switch {
	case has(func(s domain.ProgramStatus) bool { return s == domain.ProgramAccepted }):
		return domain.StageAccepted
	case has(domain.ProgramStatus.IsInterviewing):
		return domain.StageInterviewing
	case has(func(s domain.ProgramStatus) bool {
		return s == domain.ProgramInProgress || s == domain.ProgramSubmitted
	}):
		return domain.StageApplying
	case len(programs) > 0:
		return domain.StagePreparing
	default:
		return domain.StageExploring
	}
}
