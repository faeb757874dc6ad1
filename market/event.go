package market

// Event describes one fixed-duration binary-outcome prediction-market event.
// OutcomeA is the label paid out when the reference price falls over the
// window, OutcomeB when it rises ("Down"/"Up" on Polymarket crypto events).
type Event struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	ConditionID string `json:"condition_id"`
	StartTS     int64  `json:"start_ts"`
	EndTS       int64  `json:"end_ts"`
	OutcomeA    string `json:"outcome_a"`
	OutcomeB    string `json:"outcome_b"`
}

// Seconds returns the window length used by density metrics.
func (e Event) Seconds() int64 {
	return e.EndTS - e.StartTS
}
