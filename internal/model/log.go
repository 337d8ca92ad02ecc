package model

import "time"

// LogType is the severity of an operator-facing event log entry.
type LogType string

const (
	LogInfo    LogType = "info"
	LogSuccess LogType = "success"
	LogWarning LogType = "warning"
	LogError   LogType = "error"
)

// LogEntry is one timestamped message in the operator event log.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Type      LogType   `json:"type"`
}
