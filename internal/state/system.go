package state

import (
	"strconv"
	"strings"

	"github.com/lumengrid/ledcast/internal/model"
)

// System returns the current subsystem indicators and resource gauges.
func (c *Controller) System() model.SystemStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.system
}

// SetSubsystems updates the animated indicators. Database and storage are
// always reported up.
func (c *Controller) SetSubsystems(apiUp, streamActive bool) {
	c.mu.Lock()
	c.system.API = apiUp
	c.system.Stream = streamActive
	c.system.Database = true
	c.system.Storage = true
	c.mu.Unlock()
}

// SetGauges stores the simulated resource usage percentages.
func (c *Controller) SetGauges(cpu, memory, bandwidth float64) {
	c.mu.Lock()
	c.system.CPU = cpu
	c.system.Memory = memory
	c.system.Bandwidth = bandwidth
	c.mu.Unlock()
}

// Stats summarizes the registry and catalog for the panel header.
type Stats struct {
	TotalScreens  int     `json:"totalScreens"`
	OnlineScreens int     `json:"onlineScreens"`
	TotalContent  int     `json:"totalContent"`
	StorageUsedMB float64 `json:"storageUsedMB"`
}

// Stats computes the header counters. Storage usage sums the numeric prefix
// of each item's display size, the same loose arithmetic the panel shows.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{TotalScreens: len(c.screens), TotalContent: len(c.content)}
	for i := range c.screens {
		if c.screens[i].Status == model.ScreenOnline || c.screens[i].Status == model.ScreenPlaying {
			s.OnlineScreens++
		}
	}
	for i := range c.content {
		fields := strings.Fields(c.content[i].Size)
		if len(fields) == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
			s.StorageUsedMB += v
		}
	}
	return s
}
