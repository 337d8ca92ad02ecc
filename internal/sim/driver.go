package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/model"
)

// Panel is the slice of the state controller the simulator drives. A real
// device-fleet integration would implement the same surface.
type Panel interface {
	Screens() []model.Screen
	BroadcastingScreenIDs() map[string]bool
	SetScreenStatus(id string, status model.ScreenStatus, contentName *string) error
	RandomContentName() (string, bool)
	AnyActiveBroadcast() bool
	ActiveScreenCount() int
	SetSubsystems(apiUp, streamActive bool)
	SetGauges(cpu, memory, bandwidth float64)
	Settings() model.Settings
	Log(message string, logType model.LogType)
}

// Driver fakes device-fleet activity on fixed intervals: random screen status
// churn, subsystem heartbeat, and resource gauge movement. It carries no
// correctness contract; it only animates the panel.
type Driver struct {
	panel Panel
	rng   *rand.Rand

	churnEvery     time.Duration
	heartbeatEvery time.Duration
	gaugeEvery     time.Duration
	apiRecovery    time.Duration
}

// New builds a driver with the stock intervals. rng may be nil for a
// time-seeded source; tests pass a fixed seed.
func New(panel Panel, rng *rand.Rand) *Driver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Driver{
		panel:          panel,
		rng:            rng,
		churnEvery:     10 * time.Second,
		heartbeatEvery: 5 * time.Second,
		gaugeEvery:     3 * time.Second,
		apiRecovery:    3 * time.Second,
	}
}

// Start runs the simulation until ctx is canceled. All three periodic
// processes run on one goroutine, so ticks never overlap and the rng needs no
// locking.
func (d *Driver) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Driver) run(ctx context.Context) {
	churn := time.NewTicker(d.churnEvery)
	heartbeat := time.NewTicker(d.heartbeatEvery)
	gauges := time.NewTicker(d.gaugeEvery)
	defer churn.Stop()
	defer heartbeat.Stop()
	defer gauges.Stop()

	// the toggle is re-read every tick so the operator setting takes effect
	// live; a change is logged once, on the transition
	enabled := d.panel.Settings().SimulateNetwork
	if !enabled {
		log.Info().Msg("network simulation disabled")
	}
	step := func(f func()) {
		now := d.panel.Settings().SimulateNetwork
		if now != enabled {
			enabled = now
			if now {
				log.Info().Msg("network simulation enabled")
			} else {
				log.Info().Msg("network simulation disabled")
			}
		}
		if now {
			f()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-churn.C:
			step(d.ChurnOnce)
		case <-heartbeat.C:
			step(d.HeartbeatOnce)
		case <-gauges.C:
			step(d.GaugesOnce)
		}
	}
}

// ChurnOnce picks one screen uniformly at random and maybe perturbs its
// status. Screens pinned by an active broadcast are left alone.
func (d *Driver) ChurnOnce() {
	screens := d.panel.Screens()
	if len(screens) == 0 {
		return
	}
	screen := screens[d.rng.Intn(len(screens))]

	if d.panel.BroadcastingScreenIDs()[screen.ID] {
		return
	}
	if d.rng.Float64() <= 0.7 {
		return
	}

	oldStatus := screen.Status
	newStatus := oldStatus
	var contentName *string

	switch {
	case oldStatus == model.ScreenOnline && d.rng.Float64() > 0.5:
		newStatus = model.ScreenPlaying
		if name, ok := d.panel.RandomContentName(); ok {
			contentName = &name
		}
	case oldStatus == model.ScreenPlaying && d.rng.Float64() > 0.3:
		newStatus = model.ScreenOnline
	case d.rng.Float64() > 0.9:
		newStatus = model.ScreenOffline
	}

	if newStatus == oldStatus {
		return
	}
	if err := d.panel.SetScreenStatus(screen.ID, newStatus, contentName); err != nil {
		return
	}

	// only some transitions make it into the operator log
	if d.rng.Float64() > 0.5 {
		severity := model.LogInfo
		if newStatus == model.ScreenOffline {
			severity = model.LogWarning
		}
		d.panel.Log(fmt.Sprintf("Screen %s status changed to %s", screen.ID, newStatus), severity)
	}
}

// HeartbeatOnce refreshes the subsystem indicators: the API blinks out with
// 5% probability and recovers on its own; the stream indicator mirrors
// whether anything is broadcasting.
func (d *Driver) HeartbeatOnce() {
	apiUp := d.rng.Float64() > 0.05
	d.panel.SetSubsystems(apiUp, d.panel.AnyActiveBroadcast())
	if !apiUp {
		time.AfterFunc(d.apiRecovery, func() {
			d.panel.SetSubsystems(true, d.panel.AnyActiveBroadcast())
		})
	}
}

// GaugesOnce recomputes the resource gauges from the count of non-offline
// screens plus jitter, clamped to 95%.
func (d *Driver) GaugesOnce() {
	active := float64(d.panel.ActiveScreenCount())
	cpu := 20 + active*0.5 + d.rng.Float64()*10
	memory := 30 + active*0.3 + d.rng.Float64()*15
	bandwidth := 10 + active*0.2 + d.rng.Float64()*5
	d.panel.SetGauges(clamp(cpu), clamp(memory), clamp(bandwidth))
}

func clamp(v float64) float64 {
	if v > 95 {
		return 95
	}
	return v
}
