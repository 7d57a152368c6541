package model

// Stats are aggregate counters recomputed from the check history
type Stats struct {
	Total  int `json:"total"`
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// CountStats recounts the label buckets of the given history
func CountStats(checks []Assessment) Stats {
	stats := Stats{Total: len(checks)}
	for _, c := range checks {
		switch c.Label {
		case LabelLow:
			stats.Low++
		case LabelMedium:
			stats.Medium++
		case LabelHigh:
			stats.High++
		}
	}
	return stats
}
