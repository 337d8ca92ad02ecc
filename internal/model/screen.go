package model

import "time"

// ScreenStatus is the connectivity state of a virtual display endpoint.
type ScreenStatus string

const (
	ScreenOnline  ScreenStatus = "online"
	ScreenOffline ScreenStatus = "offline"
	ScreenPlaying ScreenStatus = "playing"
)

// Screen represents a virtual LED display endpoint targetable by broadcasts.
type Screen struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Location       string       `json:"location"`
	Status         ScreenStatus `json:"status"`
	Type           string       `json:"type"`
	Resolution     string       `json:"resolution"`
	IP             string       `json:"ip"`
	LastSeen       time.Time    `json:"lastSeen"`
	CurrentContent *string      `json:"currentContent"`
	Volume         int          `json:"volume"`
	Brightness     int          `json:"brightness"`
}
