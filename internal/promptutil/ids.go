package promptutil

// IDKeys are the entity keys a nudge id can be disambiguated by, in
// precedence order.
type IDKeys struct {
	ProgramID       string
	CertType        string
	RecommenderName string
	EventID         string
	Course          string
}

// GenerateNudgeID appends the first non-empty key to promptID. With no key
// the id is the bare prompt id, so only one such nudge can be live at once.
func GenerateNudgeID(promptID string, keys IDKeys) string {
	for _, k := range []string{keys.ProgramID, keys.CertType, keys.RecommenderName, keys.EventID, keys.Course} {
		if k != "" {
			return promptID + "_" + k
		}
	}
	return promptID
}
