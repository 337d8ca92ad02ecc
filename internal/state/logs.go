package state

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/model"
)

// Log appends an operator-facing entry to the bounded event log. Error
// entries additionally raise a notification event when notifications are
// enabled.
func (c *Controller) Log(message string, logType model.LogType) {
	entry := model.LogEntry{
		Timestamp: time.Now(),
		Message:   message,
		Type:      logType,
	}

	c.mu.Lock()
	c.logs = append(c.logs, entry)
	if len(c.logs) > c.cfg.MaxLogEntries {
		c.logs = c.logs[len(c.logs)-c.cfg.MaxLogEntries:]
	}
	notify := logType == model.LogError && c.settings.ShowNotifications
	c.mu.Unlock()

	c.bus.Publish("logs", entry)
	if notify {
		c.bus.Publish("notifications", entry)
	}

	switch logType {
	case model.LogError:
		log.Error().Msg(message)
	case model.LogWarning:
		log.Warn().Msg(message)
	default:
		log.Info().Msg(message)
	}
}

// Logs returns at most the newest LogWindow entries, optionally filtered by
// type. The filter applies within the window, matching the panel display.
func (c *Controller) Logs(filter model.LogType) []model.LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	window := c.logs
	if len(window) > c.cfg.LogWindow {
		window = window[len(window)-c.cfg.LogWindow:]
	}

	out := make([]model.LogEntry, 0, len(window))
	for _, entry := range window {
		if filter != "" && entry.Type != filter {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// LogCount reports how many entries are retained.
func (c *Controller) LogCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.logs)
}

// ClearLogs empties the event log.
func (c *Controller) ClearLogs() {
	c.mu.Lock()
	c.logs = nil
	c.mu.Unlock()
	c.Log("Logs cleared", model.LogWarning)
}
