package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL         string        // Base URL of the explorer
	Dataset         string        // Local copy of the CSV the explorer serves
	DuplicatePolicy string        // Must match the explorer's duplicate_policy
	IgnoreCase      bool          // Must match the explorer's duplicate_ignore_case
	Queries         int           // Number of projection queries to generate
	Lookups         int           // Number of player detail lookups
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	ReadyTimeout    time.Duration // How long to wait for the dataset to load
	Seed            int64         // Seed for query generation
	Verbose         bool          // Log every mismatch
}

// Stats holds probe statistics.
type Stats struct {
	QueriesGenerated int
	QueriesChecked   int
	QueriesMatched   int
	QueriesMismatch  int
	QueriesFailed    int
	LookupsChecked   int
	LookupsFailed    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// datasetStatus mirrors the /dataset response fields the probe needs.
type datasetStatus struct {
	State   string `json:"state"`
	Version string `json:"version"`
	Records int    `json:"records"`
	Error   string `json:"error"`
}

// projectionResult mirrors the /projection response.
type projectionResult struct {
	Count  int `json:"count"`
	Points []struct {
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
		Name string  `json:"name"`
	} `json:"points"`
}

// detailResult mirrors the /player/{name} response.
type detailResult struct {
	Name       string `json:"name"`
	GroupCount int    `json:"group_count"`
}
