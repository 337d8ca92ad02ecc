package state

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lumengrid/ledcast/internal/events"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/storage"
)

// Config bounds the state model.
type Config struct {
	MaxScreens     int
	DefaultScreens int
	MaxLogEntries  int
	LogWindow      int
}

func DefaultConfig() Config {
	return Config{
		MaxScreens:     1000,
		DefaultScreens: 5,
		MaxLogEntries:  1000,
		LogWindow:      50,
	}
}

// Controller owns the whole panel state: screen registry, media catalog,
// broadcast ledger, selection set, event log, settings and statistics. Every
// mutation happens under one lock and emits a state-change event instead of
// rendering anything itself.
type Controller struct {
	mu    sync.Mutex
	cfg   Config
	media storage.Storage
	bus   events.Publisher
	rng   *rand.Rand

	screens    []model.Screen
	content    []model.Content
	broadcasts []model.Broadcast
	logs       []model.LogEntry
	settings   model.Settings
	statistics model.Statistics
	system     model.SystemStatus

	selectedScreens map[string]struct{}
	selectedContent string

	// nextScreen only ever grows, so screen ids are never reused after an
	// interleaved remove+add.
	nextScreen int

	startTime time.Time

	// afterFunc schedules broadcast completion; replaced in tests
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// New returns an empty controller. Call Bootstrap to seed or restore state.
func New(cfg Config, media storage.Storage, bus events.Publisher) *Controller {
	if bus == nil {
		bus = events.Nop{}
	}
	return &Controller{
		cfg:             cfg,
		media:           media,
		bus:             bus,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		settings:        model.DefaultSettings(),
		selectedScreens: make(map[string]struct{}),
		system:          model.SystemStatus{API: true, Database: true, Storage: true},
		startTime:       time.Now(),
		afterFunc:       time.AfterFunc,
	}
}

// Bootstrap restores a saved snapshot or seeds first-run state when snap is
// nil. Sample content is (re)added either way.
func (c *Controller) Bootstrap(snap *model.Snapshot) {
	if snap != nil {
		c.Restore(snap)
	}

	c.mu.Lock()
	c.ensureSamplesLocked()
	seeded := false
	if len(c.screens) == 0 {
		c.seedDefaultScreensLocked()
		seeded = true
	}
	c.mu.Unlock()

	if seeded {
		c.Log("Added default screens", model.LogSuccess)
	}
	c.Log("System initialized successfully", model.LogSuccess)
}

// Settings returns the current behavior toggles.
func (c *Controller) Settings() model.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// UpdateSettings replaces the behavior toggles.
func (c *Controller) UpdateSettings(s model.Settings) {
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
	c.bus.Publish("settings", s)
}

// Statistics returns the running counters.
func (c *Controller) Statistics() model.Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statistics
}

// TickUptime refreshes the uptime counter from the controller start time.
func (c *Controller) TickUptime() {
	c.mu.Lock()
	c.statistics.Uptime = int64(time.Since(c.startTime).Seconds())
	c.mu.Unlock()
}
