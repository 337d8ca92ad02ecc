package model

import "time"

// ScheduleType selects when a broadcast should run.
type ScheduleType string

const (
	ScheduleImmediate ScheduleType = "immediate"
	ScheduleScheduled ScheduleType = "scheduled"
	ScheduleRecurring ScheduleType = "recurring"
)

// BroadcastStatus is the lifecycle state of a broadcast record.
type BroadcastStatus string

const (
	BroadcastBroadcasting BroadcastStatus = "broadcasting"
	BroadcastScheduled    BroadcastStatus = "scheduled"
	BroadcastCompleted    BroadcastStatus = "completed"
)

// Broadcast binds one content item to a set of screens with a schedule and
// status. Records are append-only; they are never deleted outside a full
// reset.
type Broadcast struct {
	ID           string          `json:"id"`
	ContentID    string          `json:"contentId"`
	ContentName  string          `json:"contentName"`
	ScreenIDs    []string        `json:"screenIds"`
	ScheduleType ScheduleType    `json:"scheduleType"`
	ScheduleTime string          `json:"scheduleTime,omitempty"`
	Status       BroadcastStatus `json:"status"`
	StartTime    time.Time       `json:"startTime"`
	Progress     int             `json:"progress"`
}
