package engine

import (
	"strings"

	"github.com/alexanderramin/smartprompts/internal/catalog"
	"github.com/alexanderramin/smartprompts/internal/domain"
	"github.com/alexanderramin/smartprompts/internal/promptutil"
)

// DefaultPrerequisites applies when no target program lists its own.
var DefaultPrerequisites = []string{
	"General Chemistry",
	"Organic Chemistry",
	"Biochemistry",
	"Anatomy & Physiology",
	"Microbiology",
	"Statistics",
}

// courseCovers lists the simpler courses an advanced one satisfies. The
// relation is applied transitively.
var courseCovers = map[string][]string{
	"biochemistry":      {"organic chemistry"},
	"organic chemistry": {"general chemistry"},
	"pathophysiology":   {"anatomy & physiology"},
	"physiology":        {"anatomy & physiology"},
}

type requirement struct {
	course     string
	requiredBy []string
}

// EvaluatePrerequisites flags required courses that appear nowhere in the
// user's academic plan, and low grades in completed science requirements.
func (e *Evaluator) EvaluatePrerequisites(academics domain.AcademicProfile, programs []domain.TargetProgram, ctx Context) []domain.Nudge {
	reqs := requiredCourses(programs)
	satisfied := satisfiedCourses(academics)

	grades := make(map[string]string, len(academics.Completed))
	for _, c := range academics.Completed {
		grades[promptutil.NormalizeCourse(c.Name)] = c.Grade
	}

	var out []domain.Nudge
	for _, r := range reqs {
		key := promptutil.NormalizeCourse(r.course)
		requiredBy := strings.Join(r.requiredBy, ", ")
		if !satisfied[key] {
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.PrereqMissing,
				keys:     promptutil.IDKeys{Course: r.course},
				vals:     promptutil.Values{"course": r.course, "requiredBy": requiredBy},
				facts:    map[string]any{"course": r.course, "requiredBy": r.requiredBy},
			}))
			continue
		}
		if grade, ok := grades[key]; ok && promptutil.IsScienceCourse(r.course) && promptutil.IsLowGrade(grade) {
			out = append(out, e.build(ctx, nudgeDraft{
				promptID: catalog.PrereqRetake,
				keys:     promptutil.IDKeys{Course: r.course},
				vals:     promptutil.Values{"course": r.course, "grade": grade},
				facts:    map[string]any{"course": r.course, "grade": grade},
			}))
		}
	}
	byPriority(out)
	return out
}

// requiredCourses unions program requirements in first-seen order, falling
// back to DefaultPrerequisites when no program lists any.
func requiredCourses(programs []domain.TargetProgram) []requirement {
	var reqs []requirement
	index := map[string]int{}
	for _, p := range programs {
		for _, course := range p.Prerequisites {
			key := promptutil.NormalizeCourse(course)
			if key == "" {
				continue
			}
			if i, ok := index[key]; ok {
				reqs[i].requiredBy = append(reqs[i].requiredBy, p.Name)
				continue
			}
			index[key] = len(reqs)
			reqs = append(reqs, requirement{course: course, requiredBy: []string{p.Name}})
		}
	}
	if len(reqs) > 0 {
		return reqs
	}
	for _, course := range DefaultPrerequisites {
		reqs = append(reqs, requirement{course: course, requiredBy: []string{"most CRNA programs"}})
	}
	return reqs
}

// satisfiedCourses returns every normalized course name that is completed,
// in progress or planned, plus everything those courses cover.
func satisfiedCourses(a domain.AcademicProfile) map[string]bool {
	out := map[string]bool{}
	var visit func(string)
	visit = func(key string) {
		if out[key] {
			return
		}
		out[key] = true
		for _, covered := range courseCovers[key] {
			visit(covered)
		}
	}
	for _, c := range a.Completed {
		visit(promptutil.NormalizeCourse(c.Name))
	}
	for _, name := range a.InProgress {
		visit(promptutil.NormalizeCourse(name))
	}
	for _, name := range a.Planned {
		visit(promptutil.NormalizeCourse(name))
	}
	return out
}
