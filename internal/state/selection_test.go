package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/ledcast/internal/model"
)

func TestSelectScreenRejectsOffline(t *testing.T) {
	ctl, _ := newTestController()
	screen := ctl.AddScreen(nil)
	require.NoError(t, ctl.SetScreenStatus(screen.ID, model.ScreenOffline, nil))

	assert.ErrorIs(t, ctl.SelectScreen(screen.ID), ErrScreenOffline)
	assert.ErrorIs(t, ctl.SelectScreen("SCREEN-9999"), ErrScreenNotFound)
	assert.Empty(t, ctl.SelectedScreens())
}

func TestSelectAllSkipsOffline(t *testing.T) {
	ctl, _ := newTestController()
	online := ctl.AddScreen(nil)
	offline := ctl.AddScreen(nil)
	require.NoError(t, ctl.SetScreenStatus(offline.ID, model.ScreenOffline, nil))

	ctl.SelectAllScreens()

	selected := ctl.SelectedScreens()
	assert.Contains(t, selected, online.ID)
	assert.NotContains(t, selected, offline.ID)
}

func TestSelectedScreensAreSorted(t *testing.T) {
	ctl, _ := newTestController()
	ctl.SelectAllScreens()
	selected := ctl.SelectedScreens()
	require.NotEmpty(t, selected)
	assert.IsIncreasing(t, selected)
}

func TestDeselectAndClear(t *testing.T) {
	ctl, _ := newTestController()
	a := ctl.AddScreen(nil)
	b := ctl.AddScreen(nil)
	require.NoError(t, ctl.SelectScreen(a.ID))
	require.NoError(t, ctl.SelectScreen(b.ID))

	ctl.DeselectScreen(a.ID)
	assert.Equal(t, []string{b.ID}, ctl.SelectedScreens())

	ctl.ClearSelection()
	assert.Empty(t, ctl.SelectedScreens())
}
