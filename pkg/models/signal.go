package models

// Signal represents a single fetched news item. Immutable after creation.
type Signal struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// NewSignal builds a Signal with the canonical text form "title . description".
func NewSignal(source, title, description, url, publishedAt string) Signal {
	return Signal{
		Source:      source,
		Title:       title,
		Description: description,
		Text:        title + " . " + description,
		URL:         url,
		PublishedAt: publishedAt,
	}
}

// Verdict is the per-item output of the arbitration engine. Position i of a
// verdict batch corresponds to bundle position i.
type Verdict struct {
	IsConflict   bool               `json:"is_conflict"`
	Intensity    float64            `json:"intensity"`
	SourceScores map[string]float64 `json:"source_scores"`
	Explanation  string             `json:"explanation"`
}

// SourceProfile is the persistent per-source reputation record. The source
// name is lowercased on write. consensus_hits never exceeds total_scans.
type SourceProfile struct {
	Source        string `json:"source" db:"source"`
	TotalScans    int    `json:"total_scans" db:"total_scans"`
	ConsensusHits int    `json:"consensus_hits" db:"consensus_hits"`
	UpdatedAt     int64  `json:"updated_at" db:"updated_at"`
}

// TrustedSource maps a lowercased substring key to a prior trust weight.
type TrustedSource struct {
	Source string  `json:"source" db:"source"`
	Weight float64 `json:"weight" db:"weight"`
}

// EventRecord is one row of the append-only analysis history.
type EventRecord struct {
	Query          string `json:"query" db:"query"`
	HardData       string `json:"hard_data" db:"hard_data"`
	VerdictSummary string `json:"verdict_summary" db:"verdict_summary"`
	Timestamp      int64  `json:"timestamp" db:"timestamp"`
}
