package sim

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/ledcast/internal/model"
)

// fakePanel is a minimal in-memory panel the driver can churn. It is locked
// because the Start tests observe it while the driver goroutine runs.
type fakePanel struct {
	mu           sync.Mutex
	screens      []model.Screen
	broadcasting map[string]bool
	anyActive    bool
	settings     model.Settings

	statusCalls int
	subsystems  [][2]bool
	gauges      [][3]float64
	logged      []string
}

func newFakePanel(screens ...model.Screen) *fakePanel {
	return &fakePanel{
		screens:      screens,
		broadcasting: map[string]bool{},
		settings:     model.DefaultSettings(),
	}
}

func (p *fakePanel) Screens() []model.Screen {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Screen(nil), p.screens...)
}

func (p *fakePanel) BroadcastingScreenIDs() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]bool, len(p.broadcasting))
	for k, v := range p.broadcasting {
		out[k] = v
	}
	return out
}

func (p *fakePanel) RandomContentName() (string, bool) { return "Demo Advertisement", true }

func (p *fakePanel) AnyActiveBroadcast() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.anyActive
}

func (p *fakePanel) Settings() model.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *fakePanel) Log(message string, _ model.LogType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logged = append(p.logged, message)
}

func (p *fakePanel) SetSubsystems(apiUp, streamActive bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subsystems = append(p.subsystems, [2]bool{apiUp, streamActive})
}

func (p *fakePanel) SetGauges(cpu, memory, bandwidth float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gauges = append(p.gauges, [3]float64{cpu, memory, bandwidth})
}

func (p *fakePanel) ActiveScreenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.screens {
		if s.Status != model.ScreenOffline {
			n++
		}
	}
	return n
}

func (p *fakePanel) SetScreenStatus(id string, status model.ScreenStatus, contentName *string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statusCalls++
	for i := range p.screens {
		if p.screens[i].ID == id {
			p.screens[i].Status = status
			if status == model.ScreenPlaying {
				p.screens[i].CurrentContent = contentName
			} else {
				p.screens[i].CurrentContent = nil
			}
			return nil
		}
	}
	return nil
}

func (p *fakePanel) totalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusCalls + len(p.subsystems) + len(p.gauges)
}

func TestChurnSkipsBroadcastingScreens(t *testing.T) {
	panel := newFakePanel(model.Screen{ID: "SCREEN-0001", Status: model.ScreenPlaying})
	panel.broadcasting["SCREEN-0001"] = true
	driver := New(panel, rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		driver.ChurnOnce()
	}
	assert.Zero(t, panel.statusCalls)
}

func TestChurnWithNoScreensIsNoOp(t *testing.T) {
	panel := newFakePanel()
	driver := New(panel, rand.New(rand.NewSource(1)))
	driver.ChurnOnce()
	assert.Zero(t, panel.statusCalls)
}

func TestChurnEventuallyVisitsEveryStatus(t *testing.T) {
	panel := newFakePanel(model.Screen{ID: "SCREEN-0001", Status: model.ScreenOnline})
	driver := New(panel, rand.New(rand.NewSource(7)))

	seen := map[model.ScreenStatus]bool{}
	for i := 0; i < 2000; i++ {
		driver.ChurnOnce()
		seen[panel.screens[0].Status] = true
		if panel.screens[0].Status == model.ScreenOffline {
			// bring it back so the walk continues
			panel.screens[0].Status = model.ScreenOnline
		}
	}

	assert.True(t, seen[model.ScreenPlaying], "playing state never reached")
	assert.True(t, seen[model.ScreenOffline], "offline state never reached")
	assert.NotEmpty(t, panel.logged)
}

func TestChurnAttachesContentNameWhenPlaying(t *testing.T) {
	panel := newFakePanel(model.Screen{ID: "SCREEN-0001", Status: model.ScreenOnline})
	driver := New(panel, rand.New(rand.NewSource(3)))

	for i := 0; i < 2000; i++ {
		driver.ChurnOnce()
		if panel.screens[0].Status == model.ScreenPlaying {
			require.NotNil(t, panel.screens[0].CurrentContent)
			assert.Equal(t, "Demo Advertisement", *panel.screens[0].CurrentContent)
			return
		}
	}
	t.Fatal("screen never started playing")
}

func TestHeartbeatMirrorsBroadcastActivity(t *testing.T) {
	panel := newFakePanel()
	panel.anyActive = true
	driver := New(panel, rand.New(rand.NewSource(1)))

	driver.HeartbeatOnce()

	require.Len(t, panel.subsystems, 1)
	assert.True(t, panel.subsystems[0][1], "stream indicator should mirror the active broadcast")
}

func TestGaugesStayWithinFormulaBounds(t *testing.T) {
	panel := newFakePanel(
		model.Screen{ID: "SCREEN-0001", Status: model.ScreenOnline},
		model.Screen{ID: "SCREEN-0002", Status: model.ScreenPlaying},
		model.Screen{ID: "SCREEN-0003", Status: model.ScreenOffline},
	)
	driver := New(panel, rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		driver.GaugesOnce()
	}

	// two non-offline screens feed the load formulas
	for _, g := range panel.gauges {
		assert.GreaterOrEqual(t, g[0], 21.0)
		assert.Less(t, g[0], 31.0)
		assert.GreaterOrEqual(t, g[1], 30.6)
		assert.Less(t, g[1], 45.6)
		assert.GreaterOrEqual(t, g[2], 10.4)
		assert.Less(t, g[2], 15.4)
	}
}

func TestGaugesClampAtNinetyFive(t *testing.T) {
	screens := make([]model.Screen, 300)
	for i := range screens {
		screens[i] = model.Screen{ID: "S", Status: model.ScreenOnline}
	}
	panel := newFakePanel(screens...)
	driver := New(panel, rand.New(rand.NewSource(1)))

	driver.GaugesOnce()

	require.Len(t, panel.gauges, 1)
	assert.Equal(t, 95.0, panel.gauges[0][0])
	assert.Equal(t, 95.0, panel.gauges[0][1])
}

func TestTicksHonorSimulationToggle(t *testing.T) {
	panel := newFakePanel(model.Screen{ID: "SCREEN-0001", Status: model.ScreenOnline})
	panel.settings.SimulateNetwork = false
	driver := New(panel, nil)
	driver.churnEvery = time.Millisecond
	driver.heartbeatEvery = time.Millisecond
	driver.gaugeEvery = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	driver.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	// the ticks fired but the toggle gated every one of them
	assert.Zero(t, panel.totalCalls())
}

func TestStartDrivesThePanel(t *testing.T) {
	panel := newFakePanel(model.Screen{ID: "SCREEN-0001", Status: model.ScreenOnline})
	driver := New(panel, nil)
	driver.churnEvery = time.Millisecond
	driver.heartbeatEvery = time.Millisecond
	driver.gaugeEvery = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	driver.Start(ctx)

	assert.Eventually(t, func() bool {
		return panel.totalCalls() > 0
	}, time.Second, 5*time.Millisecond)
}
