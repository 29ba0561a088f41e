package domain

// Action is one user-invokable control attached to a nudge.
type Action struct {
	Label   string         `json:"label"`
	Type    ActionType     `json:"actionType"`
	Href    string         `json:"href,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// Nudge is a single contextual notification ready for rendering.
type Nudge struct {
	ID          string         `json:"id"`
	PromptID    string         `json:"promptId"`
	Engine      EngineID       `json:"engine"`
	Type        NudgeType      `json:"type"`
	Urgency     Urgency        `json:"urgency"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Actions     []Action       `json:"actions"`
	Dismissible bool           `json:"dismissible"`
	Snoozeable  bool           `json:"snoozeable"`
	Context     map[string]any `json:"context"`
	Priority    float64        `json:"priority"`
}

// IsCelebration reports whether the nudge is positive reinforcement.
func (n Nudge) IsCelebration() bool {
	return n.Type == NudgeCelebration
}

// ContextString returns a string value from the context bag, or "".
func (n Nudge) ContextString(key string) string {
	if v, ok := n.Context[key].(string); ok {
		return v
	}
	return ""
}
