package state

import (
	"strconv"
	"strings"
	"time"

	"github.com/lumengrid/ledcast/internal/media"
	"github.com/lumengrid/ledcast/internal/model"
)

// Snapshot copies the persistable state. Uploaded content URLs are nulled
// because the stored media handle does not survive a restart; the selection
// set is omitted entirely.
func (c *Controller) Snapshot() *model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &model.Snapshot{
		Screens:    make([]model.Screen, len(c.screens)),
		Content:    make([]model.Content, len(c.content)),
		Broadcasts: make([]model.Broadcast, len(c.broadcasts)),
		Logs:       make([]model.LogEntry, len(c.logs)),
		Settings:   c.settings,
		Statistics: c.statistics,
	}
	copy(snap.Screens, c.screens)
	copy(snap.Content, c.content)
	copy(snap.Broadcasts, c.broadcasts)
	copy(snap.Logs, c.logs)

	for i := range snap.Content {
		if !snap.Content[i].IsSample {
			snap.Content[i].URL = ""
		}
	}
	return snap
}

// Restore replaces the in-memory state with a loaded snapshot. The selection
// set comes back empty. Uploaded items whose media handle was lost get a
// fresh placeholder thumbnail; the upload itself is irrecoverable.
func (c *Controller) Restore(snap *model.Snapshot) {
	c.mu.Lock()
	c.screens = append([]model.Screen(nil), snap.Screens...)
	c.content = append([]model.Content(nil), snap.Content...)
	c.broadcasts = append([]model.Broadcast(nil), snap.Broadcasts...)
	c.logs = append([]model.LogEntry(nil), snap.Logs...)
	if len(c.logs) > c.cfg.MaxLogEntries {
		c.logs = c.logs[len(c.logs)-c.cfg.MaxLogEntries:]
	}
	c.settings = snap.Settings
	c.statistics = snap.Statistics
	c.selectedScreens = make(map[string]struct{})
	c.selectedContent = ""

	for i := range c.content {
		if !c.content[i].IsSample && c.content[i].URL == "" {
			c.content[i].Thumbnail = media.PlaceholderThumbnail(c.content[i].Format)
		}
	}

	// keep the id counter ahead of every restored screen
	c.nextScreen = 0
	for i := range c.screens {
		if n, ok := screenNumber(c.screens[i].ID); ok && n > c.nextScreen {
			c.nextScreen = n
		}
	}
	c.mu.Unlock()
}

func screenNumber(id string) (int, bool) {
	suffix, ok := strings.CutPrefix(id, "SCREEN-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Reset reinitializes the state to first-run contents: empty registries,
// reseeded samples and default screens, zeroed counters.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.screens = nil
	c.content = nil
	c.broadcasts = nil
	c.logs = nil
	c.selectedScreens = make(map[string]struct{})
	c.selectedContent = ""
	c.settings = model.DefaultSettings()
	c.statistics = model.Statistics{}
	c.nextScreen = 0
	c.startTime = time.Now()
	c.ensureSamplesLocked()
	c.seedDefaultScreensLocked()
	c.mu.Unlock()

	c.bus.Publish("reset", time.Now())
	c.Log("Reset complete", model.LogSuccess)
}

// Export wraps the current snapshot with app metadata for download.
func (c *Controller) Export(appName, version string) model.Export {
	return model.Export{
		App:        appName,
		Version:    version,
		ExportDate: time.Now().Format(time.RFC3339),
		State:      *c.Snapshot(),
	}
}
