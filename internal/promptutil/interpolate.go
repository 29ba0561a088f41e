package promptutil

import (
	"regexp"
	"sort"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_]*)\s*\}\}`)

// Values maps template tokens to their display strings.
type Values map[string]string

// SetInt stores an integer value.
func (v Values) SetInt(key string, n int) Values {
	v[key] = strconv.Itoa(n)
	return v
}

// Interpolate resolves {{token}} placeholders. Tokens with no value are
// left in place verbatim and reported in missing.
func Interpolate(template string, vals Values) (string, []string) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := vals[key]; ok {
			return v
		}
		missing = append(missing, key)
		return m
	})
	return out, missing
}

// Placeholders returns the distinct tokens used in template, sorted.
func Placeholders(template string) []string {
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		seen[m[1]] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Pluralize renders a count with its unit, e.g. "1 day" or "5 days".
func Pluralize(n int, unit string) string {
	if n == 1 || n == -1 {
		return strconv.Itoa(n) + " " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
