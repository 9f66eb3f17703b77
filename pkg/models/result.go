package models

// VerdictSummary is the top-level verdict block of an analysis result.
type VerdictSummary struct {
	WinnerSource string  `json:"winner_source"`
	Intensity    float64 `json:"intensity"`
	Entropy      float64 `json:"entropy"`
	Inconclusive bool    `json:"inconclusive"`
}

// EdenSignal flags a credible but uncontested narrative.
type EdenSignal struct {
	Detected   bool    `json:"detected"`
	Source     *string `json:"source"`
	Confidence float64 `json:"confidence"`
}

// Psychology is the crowd-behavior block of an analysis result.
type Psychology struct {
	Mood           string  `json:"mood"`
	SentimentScore float64 `json:"sentiment_score"`
	IsCrowded      bool    `json:"is_crowded"`
	IsTrap         bool    `json:"is_trap"`
	AsymmetryLevel string  `json:"asymmetry_level"`
}

// HardData holds the numeric facts extracted from signal texts.
type HardData struct {
	Percentages []string `json:"percentages"`
	Monetary    []string `json:"monetary"`
	KeyNumbers  []string `json:"key_numbers"`
}

// ActionSignal is the discrete action code the UI paints from.
type ActionSignal struct {
	Code  string `json:"code"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ArbitragePoint is one plotted source on the radar screen.
type ArbitragePoint struct {
	Source      string  `json:"source"`
	Sentiment   float64 `json:"sentiment"`
	Credibility float64 `json:"credibility"`
	Label       string  `json:"label"`
}

// ScreenArbitrage is screen 1 of the UI payload.
type ScreenArbitrage struct {
	Points         []ArbitragePoint `json:"points"`
	EdenDetected   bool             `json:"eden_detected"`
	EdenSource     *string          `json:"eden_source"`
	IntensityScore float64          `json:"intensity_score"`
}

// ClusterGroup is one narrative cluster on the intelligence screen.
type ClusterGroup struct {
	ID           int      `json:"id"`
	Sources      []string `json:"sources"`
	SentimentAvg float64  `json:"sentiment_avg"`
}

// ScreenIntelligence is screen 2 of the UI payload.
type ScreenIntelligence struct {
	Clusters          []ClusterGroup `json:"clusters"`
	CoordinationScore float64        `json:"coordination_score"`
}

// ScreenStress is screen 3 of the UI payload.
type ScreenStress struct {
	Entropy   float64 `json:"entropy"`
	Mood      string  `json:"mood"`
	IsTrap    bool    `json:"is_trap"`
	IsCrowded bool    `json:"is_crowded"`
	Asymmetry string  `json:"asymmetry"`
}

// PortalMeta carries run metadata on the portal screen.
type PortalMeta struct {
	ExecutionTime string `json:"execution_time"`
	SourcesCount  int    `json:"sources_count"`
}

// ScreenPortal is screen 4 of the UI payload.
type ScreenPortal struct {
	Summary  string     `json:"summary"`
	HardData HardData   `json:"hard_data"`
	Meta     PortalMeta `json:"meta"`
}

// UIPayload groups the four UI screens.
type UIPayload struct {
	ScreenArbitrage    ScreenArbitrage    `json:"screen_arbitrage"`
	ScreenIntelligence ScreenIntelligence `json:"screen_intelligence"`
	ScreenStress       ScreenStress       `json:"screen_stress"`
	ScreenPortal       ScreenPortal       `json:"screen_portal"`
}

// Analysis is the full successful pipeline output.
type Analysis struct {
	Verdict    VerdictSummary `json:"verdict"`
	EdenSignal EdenSignal     `json:"eden_signal"`
	Psychology Psychology     `json:"psychology"`
	Summary    string         `json:"summary"`
	HardData   HardData       `json:"hard_data"`
	UI         UIPayload      `json:"ui"`
	Timestamp  string         `json:"timestamp"`
}

// CryptoMetrics is the metrics block of a crypto satellite result.
type CryptoMetrics struct {
	ConflictIntensity float64 `json:"conflict_intensity"`
	SentimentGap      float64 `json:"sentiment_gap"`
	IsPanic           bool    `json:"is_panic"`
}

// CryptoResult is the compact payload of the crypto satellite variant.
type CryptoResult struct {
	Status       string        `json:"status"`
	Asset        string        `json:"asset"`
	Metrics      CryptoMetrics `json:"metrics"`
	ActionSignal ActionSignal  `json:"action_signal"`
	HardData     HardData      `json:"hard_data"`
	Signals      []Signal      `json:"signals"`
}
