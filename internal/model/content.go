package model

import "time"

// Content is a catalog entry describing one piece of media available to
// broadcast. Sample items carry a stable remote URL and are never deletable;
// uploaded items reference a stored media file that is released on delete and
// does not survive a snapshot round-trip.
type Content struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Filename   string     `json:"filename"`
	URL        string     `json:"url"`
	Duration   int        `json:"duration"`
	Size       string     `json:"size"`
	Resolution string     `json:"resolution"`
	Format     string     `json:"format"`
	Thumbnail  string     `json:"thumbnail"`
	IsSample   bool       `json:"isSample"`
	Uploaded   *time.Time `json:"uploaded,omitempty"`
	Playable   *bool      `json:"playable,omitempty"`
}
