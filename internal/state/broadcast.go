package state

import (
	"fmt"
	"time"

	"github.com/lumengrid/ledcast/internal/model"
)

// StartBroadcast creates a broadcast record targeting the current selection
// set. contentID may be empty, in which case the previously selected content
// is used. Precondition violations mutate nothing and create no record.
//
// An immediate broadcast flips every target screen to playing and schedules
// automatic completion after the content's duration. Scheduled and recurring
// broadcasts only create the record; nothing ever promotes them (the
// executor is intentionally absent).
func (c *Controller) StartBroadcast(contentID string, scheduleType model.ScheduleType, scheduleTime string) (model.Broadcast, error) {
	if scheduleType == "" {
		scheduleType = model.ScheduleImmediate
	}

	c.mu.Lock()
	if contentID == "" {
		contentID = c.selectedContent
	}
	if contentID == "" {
		c.mu.Unlock()
		return model.Broadcast{}, ErrNoContentSelected
	}
	if len(c.selectedScreens) == 0 {
		c.mu.Unlock()
		return model.Broadcast{}, ErrNoScreensSelected
	}

	var content *model.Content
	for i := range c.content {
		if c.content[i].ID == contentID {
			content = &c.content[i]
			break
		}
	}
	if content == nil {
		c.mu.Unlock()
		return model.Broadcast{}, ErrContentNotFound
	}
	if scheduleType == model.ScheduleScheduled && scheduleTime == "" {
		c.mu.Unlock()
		return model.Broadcast{}, ErrNoScheduleTime
	}

	status := model.BroadcastScheduled
	if scheduleType == model.ScheduleImmediate {
		status = model.BroadcastBroadcasting
	}

	broadcast := model.Broadcast{
		ID:           fmt.Sprintf("BROADCAST-%d", time.Now().UnixMilli()),
		ContentID:    content.ID,
		ContentName:  content.Name,
		ScreenIDs:    c.selectedLocked(),
		ScheduleType: scheduleType,
		ScheduleTime: scheduleTime,
		Status:       status,
		StartTime:    time.Now(),
	}
	c.broadcasts = append(c.broadcasts, broadcast)
	c.statistics.TotalBroadcasts++

	if scheduleType == model.ScheduleImmediate {
		name := content.Name
		for _, id := range broadcast.ScreenIDs {
			if screen := c.screenLocked(id); screen != nil {
				screen.Status = model.ScreenPlaying
				screen.CurrentContent = &name
				screen.LastSeen = time.Now()
			}
		}
		id := broadcast.ID
		c.afterFunc(time.Duration(content.Duration)*time.Second, func() {
			c.CompleteBroadcast(id)
		})
	}
	targets := len(broadcast.ScreenIDs)
	c.mu.Unlock()

	c.bus.Publish("broadcasts/started", broadcast)
	c.Log(fmt.Sprintf("Broadcast started: %s to %d screens", broadcast.ContentName, targets), model.LogSuccess)
	return broadcast, nil
}

// CompleteBroadcast marks a broadcast finished and reverts its target screens
// to online. Unknown ids are a no-op, which makes the completion timer safe
// to fire after a reset.
func (c *Controller) CompleteBroadcast(id string) {
	c.mu.Lock()
	var record *model.Broadcast
	for i := range c.broadcasts {
		if c.broadcasts[i].ID == id {
			record = &c.broadcasts[i]
			break
		}
	}
	if record == nil || record.Status == model.BroadcastCompleted {
		c.mu.Unlock()
		return
	}
	record.Status = model.BroadcastCompleted
	record.Progress = 100

	for _, screenID := range record.ScreenIDs {
		if screen := c.screenLocked(screenID); screen != nil {
			screen.Status = model.ScreenOnline
			screen.CurrentContent = nil
		}
	}
	completed := *record
	c.mu.Unlock()

	c.bus.Publish("broadcasts/completed", completed)
	c.Log("Broadcast completed successfully", model.LogSuccess)
}

// Broadcasts returns a copy of the ledger.
func (c *Controller) Broadcasts() []model.Broadcast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Broadcast, len(c.broadcasts))
	copy(out, c.broadcasts)
	return out
}

// ActiveBroadcasts returns the records currently broadcasting.
func (c *Controller) ActiveBroadcasts() []model.Broadcast {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.Broadcast
	for i := range c.broadcasts {
		if c.broadcasts[i].Status == model.BroadcastBroadcasting {
			out = append(out, c.broadcasts[i])
		}
	}
	return out
}

// AnyActiveBroadcast reports whether any record is currently broadcasting.
func (c *Controller) AnyActiveBroadcast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.broadcasts {
		if c.broadcasts[i].Status == model.BroadcastBroadcasting {
			return true
		}
	}
	return false
}

// BroadcastingScreenIDs returns the set of screens pinned by an active
// broadcast; the simulator leaves these alone.
func (c *Controller) BroadcastingScreenIDs() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]bool)
	for i := range c.broadcasts {
		if c.broadcasts[i].Status != model.BroadcastBroadcasting {
			continue
		}
		for _, id := range c.broadcasts[i].ScreenIDs {
			out[id] = true
		}
	}
	return out
}
