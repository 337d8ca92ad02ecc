package packets

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type CreateScreenRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Resolution string `json:"resolution"`
	IP         string `json:"ip"`
}

type BulkAddRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

type SelectScreenRequest struct {
	ID string `json:"id" binding:"required"`
}

type SimulateEventRequest struct {
	Event string `json:"event" binding:"required"`
}

type StartBroadcastRequest struct {
	ContentID    string `json:"contentId"`
	ScheduleType string `json:"scheduleType"`
	ScheduleTime string `json:"scheduleTime"`
}

type SettingsRequest struct {
	AutoConnect       bool `json:"autoConnect"`
	SimulateNetwork   bool `json:"simulateNetwork"`
	ShowNotifications bool `json:"showNotifications"`
}
