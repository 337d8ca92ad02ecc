package state

import (
	"sort"

	"github.com/lumengrid/ledcast/internal/model"
)

// SelectScreen adds a screen to the broadcast target set. Offline screens
// cannot be selected.
func (c *Controller) SelectScreen(id string) error {
	c.mu.Lock()
	screen := c.screenLocked(id)
	if screen == nil {
		c.mu.Unlock()
		return ErrScreenNotFound
	}
	if screen.Status == model.ScreenOffline {
		c.mu.Unlock()
		return ErrScreenOffline
	}
	c.selectedScreens[id] = struct{}{}
	c.mu.Unlock()
	return nil
}

// DeselectScreen removes a screen from the target set.
func (c *Controller) DeselectScreen(id string) {
	c.mu.Lock()
	delete(c.selectedScreens, id)
	c.mu.Unlock()
}

// SelectAllScreens targets every screen that is not offline.
func (c *Controller) SelectAllScreens() {
	c.mu.Lock()
	for i := range c.screens {
		if c.screens[i].Status != model.ScreenOffline {
			c.selectedScreens[c.screens[i].ID] = struct{}{}
		}
	}
	c.mu.Unlock()
	c.Log("All online screens selected", model.LogInfo)
}

// ClearSelection empties the target set.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selectedScreens = make(map[string]struct{})
	c.mu.Unlock()
	c.Log("Selection cleared", model.LogInfo)
}

// SelectedScreens returns the target set in stable order.
func (c *Controller) SelectedScreens() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Controller) selectedLocked() []string {
	out := make([]string, 0, len(c.selectedScreens))
	for id := range c.selectedScreens {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
