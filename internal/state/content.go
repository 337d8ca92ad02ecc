package state

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/model"
)

func sampleContent() []model.Content {
	return []model.Content{
		{
			ID:         "sample1",
			Name:       "Demo Advertisement",
			Filename:   "demo-ad.mp4",
			URL:        "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
			Duration:   15,
			Size:       "5.2 MB",
			Resolution: "1920x1080",
			Format:     "mp4",
			Thumbnail:  "https://img.youtube.com/vi/4OiMOHRDs14/0.jpg",
			IsSample:   true,
		},
		{
			ID:         "sample2",
			Name:       "Product Promo",
			Filename:   "promo-video.mp4",
			URL:        "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
			Duration:   30,
			Size:       "8.7 MB",
			Resolution: "1280x720",
			Format:     "mp4",
			Thumbnail:  "https://img.youtube.com/vi/4OiMOHRDs14/0.jpg",
			IsSample:   true,
		},
	}
}

// ensureSamplesLocked appends any sample item that is not already present.
func (c *Controller) ensureSamplesLocked() {
	for _, sample := range sampleContent() {
		exists := false
		for i := range c.content {
			if c.content[i].ID == sample.ID {
				exists = true
				break
			}
		}
		if !exists {
			c.content = append(c.content, sample)
		}
	}
}

// ContentList returns a copy of the media catalog.
func (c *Controller) ContentList() []model.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Content, len(c.content))
	copy(out, c.content)
	return out
}

// ContentByID returns a copy of one catalog entry.
func (c *Controller) ContentByID(id string) (model.Content, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.content {
		if c.content[i].ID == id {
			return c.content[i], nil
		}
	}
	return model.Content{}, ErrContentNotFound
}

// AddContent appends an ingested upload to the catalog.
func (c *Controller) AddContent(item model.Content) {
	c.mu.Lock()
	c.content = append(c.content, item)
	if !item.IsSample {
		c.statistics.TotalUploads++
	}
	c.mu.Unlock()

	c.bus.Publish("content/added", item)
	c.Log(fmt.Sprintf("Video uploaded: %s", item.Filename), model.LogSuccess)
}

// SelectContent marks a catalog entry as the next broadcast payload.
func (c *Controller) SelectContent(id string) error {
	c.mu.Lock()
	found := false
	for i := range c.content {
		if c.content[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return ErrContentNotFound
	}
	c.selectedContent = id
	c.mu.Unlock()

	c.Log(fmt.Sprintf("Content selected: %s", id), model.LogInfo)
	return nil
}

// SelectedContent returns the id of the currently chosen content, if any.
func (c *Controller) SelectedContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedContent
}

// SetContentPlayable downgrades (or restores) an entry's playable flag after
// the post-upload playback check.
func (c *Controller) SetContentPlayable(id string, playable bool) {
	c.mu.Lock()
	var name string
	for i := range c.content {
		if c.content[i].ID == id {
			v := playable
			c.content[i].Playable = &v
			name = c.content[i].Name
			break
		}
	}
	c.mu.Unlock()

	if name != "" && !playable {
		c.Log(fmt.Sprintf("Playback test failed: %s", name), model.LogWarning)
	}
}

// DeleteContent removes a non-sample entry and releases its stored media
// handle. Deleting the same id again returns ErrContentNotFound without a
// second release.
func (c *Controller) DeleteContent(id string) error {
	c.mu.Lock()
	idx := -1
	for i := range c.content {
		if c.content[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrContentNotFound
	}
	item := c.content[idx]
	if item.IsSample {
		c.mu.Unlock()
		return ErrSampleContent
	}
	c.content = append(c.content[:idx], c.content[idx+1:]...)
	if c.selectedContent == id {
		c.selectedContent = ""
	}
	c.mu.Unlock()

	if item.URL != "" && c.media != nil {
		if err := c.media.DeleteFile(item.URL); err != nil {
			log.Warn().Err(err).Str("content", id).Msg("could not release media handle")
		}
	}

	c.bus.Publish("content/removed", id)
	c.Log(fmt.Sprintf("Content deleted: %s", id), model.LogWarning)
	return nil
}

// RandomContentName picks a random catalog entry name for simulated playback.
func (c *Controller) RandomContentName() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.content) == 0 {
		return "", false
	}
	return c.content[c.rng.Intn(len(c.content))].Name, true
}
