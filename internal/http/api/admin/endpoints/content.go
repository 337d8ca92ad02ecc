package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/api/admin/packets"
	"github.com/lumengrid/ledcast/internal/media"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/state"
)

// how long after ingest the best-effort playback check runs
const playbackCheckDelay = time.Second

type ContentController struct {
	ctl      *state.Controller
	pipeline *media.Pipeline
}

func newContentController(ctl *state.Controller, pipeline *media.Pipeline) *ContentController {
	return &ContentController{ctl: ctl, pipeline: pipeline}
}

// ContentModule mounts all authenticated /content endpoints.
func ContentModule(ctl *state.Controller, pipeline *media.Pipeline) api.Module {
	c := newContentController(ctl, pipeline)
	return api.ModuleFunc(func(m *api.Controller) {
		c.mount(m)
	})
}

func (c *ContentController) mount(m *api.Controller) {
	m.GET("/content", c.listContent)
	m.GET("/content/:id", c.getContent)
	m.POST("/content", c.uploadContent)
	m.POST("/content/:id/select", c.selectContent)
	m.DELETE("/content/:id", c.deleteContent)
}

// GET /api/admin/content
func (c *ContentController) listContent(ctx *gin.Context) (any, *api.APIError) {
	return c.ctl.ContentList(), nil
}

// GET /api/admin/content/:id
func (c *ContentController) getContent(ctx *gin.Context) (any, *api.APIError) {
	item, err := c.ctl.ContentByID(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	return item, nil
}

// POST /api/admin/content
//
// Multipart batch upload. Each file settles independently: a rejected file is
// logged against the event log and reported in the per-file results, and the
// rest of the batch continues.
func (c *ContentController) uploadContent(ctx *gin.Context) (any, *api.APIError) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "multipart form required"}
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no files supplied"}
	}

	results := make([]packets.UploadResult, 0, len(files))
	for _, fh := range files {
		item, err := c.pipeline.Process(ctx.Request.Context(), fh)
		if err != nil {
			c.ctl.Log(uploadFailureMessage(fh.Filename, err), model.LogError)
			results = append(results, packets.UploadResult{Filename: fh.Filename, Error: err.Error()})
			continue
		}

		c.ctl.AddContent(*item)
		results = append(results, packets.UploadResult{Filename: fh.Filename, ID: item.ID})

		// secondary playability check, detached from the request
		id, location := item.ID, item.URL
		time.AfterFunc(playbackCheckDelay, func() {
			if err := c.pipeline.TestPlayback(context.Background(), location); err != nil {
				log.Warn().Err(err).Str("content", id).Msg("playback check failed")
				c.ctl.SetContentPlayable(id, false)
			}
		})
	}

	return packets.UploadResponse{Results: results}, nil
}

func uploadFailureMessage(filename string, err error) string {
	switch {
	case errors.Is(err, media.ErrUnsupportedFormat):
		return "Unsupported format: " + filename
	case errors.Is(err, media.ErrFileTooLarge):
		return "File too large: " + filename
	case errors.Is(err, media.ErrInvalidExtension):
		return "Invalid file extension: " + filename
	case errors.Is(err, media.ErrProcessingTimeout):
		return "Processing timed out: " + filename
	default:
		return "Could not process media: " + filename
	}
}

// POST /api/admin/content/:id/select
func (c *ContentController) selectContent(ctx *gin.Context) (any, *api.APIError) {
	if err := c.ctl.SelectContent(ctx.Param("id")); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	return packets.MessageResponse{Message: "content selected"}, nil
}

// DELETE /api/admin/content/:id
func (c *ContentController) deleteContent(ctx *gin.Context) (any, *api.APIError) {
	err := c.ctl.DeleteContent(ctx.Param("id"))
	switch {
	case errors.Is(err, state.ErrContentNotFound):
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	case errors.Is(err, state.ErrSampleContent):
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "sample content cannot be deleted"}
	case err != nil:
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return packets.MessageResponse{Message: "content deleted"}, nil
}
