package state

import (
	"fmt"
	"time"

	"github.com/lumengrid/ledcast/internal/model"
)

var defaultLocations = []string{
	"Times Square, NYC",
	"London Piccadilly Circus",
	"Tokyo Shibuya Crossing",
	"Dubai Mall",
	"Las Vegas Strip",
	"Singapore Orchard Road",
	"Paris Champs-Élysées",
	"Hong Kong Tsim Sha Tsui",
}

var defaultScreenTypes = []string{
	"LED Video Wall",
	"Digital Billboard",
	"Transit Display",
	"Shopping Mall Screen",
	"Stadium Jumbotron",
	"Airport Display",
}

func (c *Controller) newScreenIDLocked() string {
	c.nextScreen++
	return fmt.Sprintf("SCREEN-%04d", c.nextScreen)
}

func (c *Controller) seedDefaultScreensLocked() {
	for i := 1; i <= c.cfg.DefaultScreens; i++ {
		status := model.ScreenOnline
		if c.rng.Float64() <= 0.3 {
			status = model.ScreenOffline
		}
		c.screens = append(c.screens, model.Screen{
			ID:         c.newScreenIDLocked(),
			Name:       fmt.Sprintf("%s %d", defaultScreenTypes[i%len(defaultScreenTypes)], i),
			Location:   defaultLocations[i%len(defaultLocations)],
			Status:     status,
			Type:       "led",
			Resolution: "1920x1080",
			IP:         fmt.Sprintf("192.168.1.%d", i),
			LastSeen:   time.Now(),
			Volume:     80,
			Brightness: 100,
		})
	}
	c.statistics.TotalScreensAdded = c.cfg.DefaultScreens
}

// Screens returns a copy of the registry.
func (c *Controller) Screens() []model.Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Screen, len(c.screens))
	copy(out, c.screens)
	return out
}

// ScreenByID returns a copy of one screen.
func (c *Controller) ScreenByID(id string) (model.Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.screenLocked(id); s != nil {
		return *s, nil
	}
	return model.Screen{}, ErrScreenNotFound
}

func (c *Controller) screenLocked(id string) *model.Screen {
	for i := range c.screens {
		if c.screens[i].ID == id {
			return &c.screens[i]
		}
	}
	return nil
}

// addScreenLocked appends a generated screen, or the caller-supplied one when
// custom is non-nil. Callers publish the returned screen after unlocking.
func (c *Controller) addScreenLocked(custom *model.Screen) model.Screen {
	var screen model.Screen
	if custom != nil {
		screen = *custom
		if screen.ID == "" {
			screen.ID = c.newScreenIDLocked()
		}
		if screen.Status == "" {
			screen.Status = model.ScreenOnline
		}
	} else {
		id := c.newScreenIDLocked()
		screen = model.Screen{
			ID:         id,
			Name:       fmt.Sprintf("LED Display %d", c.nextScreen),
			Location:   "Location not set",
			Status:     model.ScreenOnline,
			Type:       "led",
			Resolution: "1920x1080",
			IP:         fmt.Sprintf("192.168.1.%d", 100+c.nextScreen),
			Volume:     80,
			Brightness: 100,
		}
	}
	screen.LastSeen = time.Now()
	screen.CurrentContent = nil
	c.screens = append(c.screens, screen)
	c.statistics.TotalScreensAdded++
	return screen
}

// AddScreen appends one screen. It always succeeds.
func (c *Controller) AddScreen(custom *model.Screen) model.Screen {
	c.mu.Lock()
	screen := c.addScreenLocked(custom)
	c.mu.Unlock()

	c.bus.Publish("screens/added", screen)
	c.Log(fmt.Sprintf("Screen added: %s", screen.Name), model.LogSuccess)
	return screen
}

// BulkAddScreens adds up to count screens, clamped so the registry never
// exceeds MaxScreens. The clamp and the appends share one critical section,
// so concurrent bulk adds cannot overshoot the capacity between them.
// Returns how many were added; zero means the capacity warning was logged
// instead.
func (c *Controller) BulkAddScreens(count int) int {
	c.mu.Lock()
	if remaining := c.cfg.MaxScreens - len(c.screens); count > remaining {
		count = remaining
	}
	added := make([]model.Screen, 0, max(count, 0))
	for i := 0; i < count; i++ {
		added = append(added, c.addScreenLocked(nil))
	}
	c.mu.Unlock()

	if len(added) == 0 {
		c.Log("Maximum screen limit reached", model.LogWarning)
		return 0
	}
	for _, screen := range added {
		c.bus.Publish("screens/added", screen)
	}
	c.Log(fmt.Sprintf("Added %d screens in bulk", len(added)), model.LogSuccess)
	return len(added)
}

// ToggleScreenStatus flips a screen between online and offline. A playing
// screen is left untouched. Going offline prunes the screen from the
// selection set.
func (c *Controller) ToggleScreenStatus(id string) error {
	c.mu.Lock()
	screen := c.screenLocked(id)
	if screen == nil {
		c.mu.Unlock()
		return ErrScreenNotFound
	}
	if screen.Status == model.ScreenPlaying {
		c.mu.Unlock()
		return nil
	}

	if screen.Status == model.ScreenOnline {
		screen.Status = model.ScreenOffline
		delete(c.selectedScreens, id)
	} else {
		screen.Status = model.ScreenOnline
	}
	screen.LastSeen = time.Now()
	status := screen.Status
	c.mu.Unlock()

	c.bus.Publish(fmt.Sprintf("screens/%s/status", id), status)
	severity := model.LogSuccess
	if status == model.ScreenOffline {
		severity = model.LogWarning
	}
	c.Log(fmt.Sprintf("Screen %s is now %s", id, status), severity)
	return nil
}

// RemoveScreen deletes a screen and prunes it from the selection set.
func (c *Controller) RemoveScreen(id string) error {
	c.mu.Lock()
	idx := -1
	for i := range c.screens {
		if c.screens[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrScreenNotFound
	}
	c.screens = append(c.screens[:idx], c.screens[idx+1:]...)
	delete(c.selectedScreens, id)
	c.mu.Unlock()

	c.bus.Publish("screens/removed", id)
	c.Log(fmt.Sprintf("Screen %s removed", id), model.LogWarning)
	return nil
}

// SetScreenStatus is the primitive the environment simulator drives. It keeps
// the invariant that CurrentContent is non-nil iff the screen is playing, and
// prunes the selection set on offline transitions.
func (c *Controller) SetScreenStatus(id string, status model.ScreenStatus, contentName *string) error {
	c.mu.Lock()
	screen := c.screenLocked(id)
	if screen == nil {
		c.mu.Unlock()
		return ErrScreenNotFound
	}
	screen.Status = status
	if status == model.ScreenPlaying {
		screen.CurrentContent = contentName
	} else {
		screen.CurrentContent = nil
	}
	if status == model.ScreenOffline {
		delete(c.selectedScreens, id)
	}
	screen.LastSeen = time.Now()
	c.mu.Unlock()

	c.bus.Publish(fmt.Sprintf("screens/%s/status", id), status)
	return nil
}

// SimulateScreenEvent applies an operator-requested device event to one
// screen: connect, disconnect, play or stop.
func (c *Controller) SimulateScreenEvent(id, event string) error {
	var err error
	switch event {
	case "connect":
		err = c.SetScreenStatus(id, model.ScreenOnline, nil)
	case "disconnect":
		err = c.SetScreenStatus(id, model.ScreenOffline, nil)
	case "play":
		var name *string
		if n, ok := c.RandomContentName(); ok {
			name = &n
		}
		err = c.SetScreenStatus(id, model.ScreenPlaying, name)
	case "stop":
		err = c.SetScreenStatus(id, model.ScreenOnline, nil)
	default:
		return fmt.Errorf("unknown screen event %q", event)
	}
	if err != nil {
		return err
	}
	c.Log(fmt.Sprintf("Screen %s: %s", id, event), model.LogInfo)
	return nil
}

// SimulateNetworkDisconnect knocks roughly 30% of non-offline screens
// offline, pruning each from the selection set.
func (c *Controller) SimulateNetworkDisconnect() {
	c.mu.Lock()
	for i := range c.screens {
		if c.screens[i].Status == model.ScreenOffline {
			continue
		}
		if c.rng.Float64() < 0.3 {
			c.screens[i].Status = model.ScreenOffline
			c.screens[i].CurrentContent = nil
			delete(c.selectedScreens, c.screens[i].ID)
		}
	}
	c.mu.Unlock()

	c.bus.Publish("screens/network", "disconnect")
	c.Log("Simulated network disruption", model.LogWarning)
}

// ActiveScreenCount counts screens that are not offline.
func (c *Controller) ActiveScreenCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.screens {
		if c.screens[i].Status != model.ScreenOffline {
			n++
		}
	}
	return n
}
