package config

import "time"

// Application identity and fixed cadences. These mirror what the panel
// reports in exports and drive the background tickers.
const (
	AppName = "LED Broadcast Control"
	Version = "1.0.0"

	// snapshot autosave cadence
	SaveInterval = 30 * time.Second

	// uptime statistic refresh
	UptimeInterval = time.Second
)
