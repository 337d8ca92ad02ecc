package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/ledcast/internal/model"
)

func TestSnapshotNullsUploadedURLs(t *testing.T) {
	ctl, _ := newTestController()
	ctl.AddContent(uploadedItem("video_a"))

	snap := ctl.Snapshot()

	byID := make(map[string]model.Content)
	for _, item := range snap.Content {
		byID[item.ID] = item
	}
	assert.Empty(t, byID["video_a"].URL)
	assert.NotEmpty(t, byID["sample1"].URL)

	// the live catalog keeps its handle
	got, err := ctl.ContentByID("video_a")
	require.NoError(t, err)
	assert.NotEmpty(t, got.URL)
}

func TestRestoreDropsSelectionAndPatchesThumbnails(t *testing.T) {
	ctl, _ := newTestController()
	ctl.AddContent(uploadedItem("video_a"))
	ctl.SelectAllScreens()
	require.NoError(t, ctl.SelectContent("video_a"))
	snap := ctl.Snapshot()

	restored := New(DefaultConfig(), &fakeStorage{}, nil)
	restored.Bootstrap(snap)

	assert.Empty(t, restored.SelectedScreens())
	assert.Empty(t, restored.SelectedContent())

	// the upload lost its media handle, so it gets a placeholder thumbnail
	got, err := restored.ContentByID("video_a")
	require.NoError(t, err)
	assert.Empty(t, got.URL)
	assert.True(t, strings.HasPrefix(got.Thumbnail, "data:image/png;base64,"))

	// samples survive untouched
	sample, err := restored.ContentByID("sample1")
	require.NoError(t, err)
	assert.NotEmpty(t, sample.URL)
}

func TestRestoreAdvancesScreenCounter(t *testing.T) {
	ctl, _ := newTestController()
	snap := ctl.Snapshot()

	restored := New(DefaultConfig(), &fakeStorage{}, nil)
	restored.Bootstrap(snap)

	ids := make(map[string]bool)
	for _, s := range restored.Screens() {
		ids[s.ID] = true
	}
	added := restored.AddScreen(nil)
	assert.False(t, ids[added.ID], "restored counter must not reissue %s", added.ID)
	assert.Equal(t, "SCREEN-0006", added.ID)
}

func TestResetReturnsToFirstRunState(t *testing.T) {
	ctl, _ := newTestController()
	ctl.AddContent(uploadedItem("video_a"))
	ctl.SelectAllScreens()
	ctl.BulkAddScreens(3)

	ctl.Reset()

	assert.Len(t, ctl.Screens(), 5)
	assert.Len(t, ctl.ContentList(), 2)
	assert.Empty(t, ctl.Broadcasts())
	assert.Empty(t, ctl.SelectedScreens())
	assert.Empty(t, ctl.SelectedContent())
	assert.Equal(t, model.DefaultSettings(), ctl.Settings())
	stats := ctl.Statistics()
	assert.Zero(t, stats.TotalUploads)
	assert.Zero(t, stats.TotalBroadcasts)
}

func TestExportWrapsSnapshot(t *testing.T) {
	ctl, _ := newTestController()

	export := ctl.Export("LED Broadcast Control", "1.0.0")

	assert.Equal(t, "LED Broadcast Control", export.App)
	assert.Equal(t, "1.0.0", export.Version)
	assert.NotEmpty(t, export.ExportDate)
	assert.Len(t, export.State.Screens, 5)
}

func TestStats(t *testing.T) {
	ctl, _ := newTestController()
	for _, s := range ctl.Screens() {
		require.NoError(t, ctl.SetScreenStatus(s.ID, model.ScreenOnline, nil))
	}
	name := "Demo Advertisement"
	playing := ctl.AddScreen(nil)
	require.NoError(t, ctl.SetScreenStatus(playing.ID, model.ScreenPlaying, &name))
	offline := ctl.AddScreen(nil)
	require.NoError(t, ctl.SetScreenStatus(offline.ID, model.ScreenOffline, nil))

	stats := ctl.Stats()
	assert.Equal(t, 7, stats.TotalScreens)
	assert.Equal(t, 6, stats.OnlineScreens)
	assert.Equal(t, 2, stats.TotalContent)
	// 5.2 + 8.7 from the two sample items
	assert.InDelta(t, 13.9, stats.StorageUsedMB, 0.001)
}
