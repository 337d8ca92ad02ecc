package model

// Settings holds the operator-tunable behavior toggles.
type Settings struct {
	AutoConnect       bool `json:"autoConnect"`
	SimulateNetwork   bool `json:"simulateNetwork"`
	ShowNotifications bool `json:"showNotifications"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{AutoConnect: true, SimulateNetwork: true, ShowNotifications: true}
}

// Statistics are running counters surfaced on the panel header.
type Statistics struct {
	TotalBroadcasts   int   `json:"totalBroadcasts"`
	TotalUploads      int   `json:"totalUploads"`
	TotalScreensAdded int   `json:"totalScreensAdded"`
	Uptime            int64 `json:"uptime"`
}

// Snapshot is the persisted representation of the whole panel state, written
// as a single JSON document under one key. The screen selection set is
// deliberately absent: it is session-scoped and reconstructed empty on load.
// Uploaded content URLs are nulled before write because the backing media
// handle does not survive a restart.
type Snapshot struct {
	Screens    []Screen    `json:"screens"`
	Content    []Content   `json:"content"`
	Broadcasts []Broadcast `json:"broadcasts"`
	Logs       []LogEntry  `json:"logs"`
	Settings   Settings    `json:"settings"`
	Statistics Statistics  `json:"statistics"`
}

// Export wraps a snapshot with identifying metadata for download.
type Export struct {
	App        string   `json:"app"`
	Version    string   `json:"version"`
	ExportDate string   `json:"exportDate"`
	State      Snapshot `json:"state"`
}

// SystemStatus mirrors the panel's subsystem indicators and resource gauges.
// It is animated by the simulation driver and never persisted.
type SystemStatus struct {
	API       bool    `json:"api"`
	Stream    bool    `json:"stream"`
	Database  bool    `json:"database"`
	Storage   bool    `json:"storage"`
	CPU       float64 `json:"cpu"`
	Memory    float64 `json:"memory"`
	Bandwidth float64 `json:"bandwidth"`
}
