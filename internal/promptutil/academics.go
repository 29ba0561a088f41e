package promptutil

import "strings"

var lowGrades = map[string]bool{
	"B-": true, "C+": true, "C": true, "C-": true,
	"D+": true, "D": true, "D-": true, "F": true,
}

// IsLowGrade reports whether grade is below a B. Unknown grades are not low.
func IsLowGrade(grade string) bool {
	return lowGrades[strings.ToUpper(strings.TrimSpace(grade))]
}

var scienceKeywords = []string{
	"chem", "bio", "physics", "anatomy", "physiology",
	"microbio", "pharmacology", "pathophysiology",
}

// IsScienceCourse reports whether the course name looks like a science
// prerequisite.
func IsScienceCourse(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range scienceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NormalizeCourse folds a course name for comparison.
func NormalizeCourse(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
