package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/ledcast/internal/model"
)

func uploadedItem(id string) model.Content {
	return model.Content{
		ID:         id,
		Name:       "clip",
		Filename:   "clip.mp4",
		URL:        "/uploads/clip.mp4",
		Duration:   20,
		Size:       "12.5 MB",
		Resolution: "1920x1080",
		Format:     "mp4",
	}
}

func TestAddContentCountsUploads(t *testing.T) {
	ctl, _ := newTestController()

	ctl.AddContent(uploadedItem("video_a"))
	assert.Equal(t, 1, ctl.Statistics().TotalUploads)
	assert.Len(t, ctl.ContentList(), 3)

	got, err := ctl.ContentByID("video_a")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", got.Filename)
}

func TestSelectContent(t *testing.T) {
	ctl, _ := newTestController()

	assert.ErrorIs(t, ctl.SelectContent("nope"), ErrContentNotFound)
	require.NoError(t, ctl.SelectContent("sample2"))
	assert.Equal(t, "sample2", ctl.SelectedContent())
}

func TestDeleteContentRefusesSamples(t *testing.T) {
	ctl, st := newTestController()

	assert.ErrorIs(t, ctl.DeleteContent("sample1"), ErrSampleContent)
	assert.Len(t, ctl.ContentList(), 2)
	assert.Empty(t, st.deleted)
}

func TestDeleteContentReleasesHandleOnce(t *testing.T) {
	ctl, st := newTestController()
	ctl.AddContent(uploadedItem("video_a"))
	require.NoError(t, ctl.SelectContent("video_a"))

	require.NoError(t, ctl.DeleteContent("video_a"))
	assert.Equal(t, []string{"/uploads/clip.mp4"}, st.deleted)
	assert.Empty(t, ctl.SelectedContent())

	// a second delete finds nothing and must not release again
	assert.ErrorIs(t, ctl.DeleteContent("video_a"), ErrContentNotFound)
	assert.Len(t, st.deleted, 1)
}

func TestSetContentPlayable(t *testing.T) {
	ctl, _ := newTestController()
	ctl.AddContent(uploadedItem("video_a"))

	ctl.SetContentPlayable("video_a", false)

	got, err := ctl.ContentByID("video_a")
	require.NoError(t, err)
	require.NotNil(t, got.Playable)
	assert.False(t, *got.Playable)

	warnings := ctl.Logs(model.LogWarning)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[len(warnings)-1].Message, "Playback test failed")
}

func TestRandomContentName(t *testing.T) {
	ctl, _ := newTestController()
	name, ok := ctl.RandomContentName()
	require.True(t, ok)
	assert.Contains(t, []string{"Demo Advertisement", "Product Promo"}, name)
}
