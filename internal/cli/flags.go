package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// addNowFlag registers --now on fs. Commands that take it resolve the value
// with parseNow.
func addNowFlag(fs *pflag.FlagSet, dst *string) {
	fs.StringVar(dst, "now", "", "Evaluate as of this time (RFC3339 or YYYY-MM-DD)")
}

// parseNow returns nil for an empty value so the service clock is used.
func parseNow(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, fmt.Errorf("--now: use RFC3339 or YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

func nowOr(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}
