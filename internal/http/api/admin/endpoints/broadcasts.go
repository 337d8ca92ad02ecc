package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/api/admin/packets"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/state"
)

type BroadcastController struct {
	ctl *state.Controller
}

// BroadcastModule mounts all authenticated /broadcasts endpoints.
func BroadcastModule(ctl *state.Controller) api.Module {
	b := &BroadcastController{ctl: ctl}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/broadcasts", b.listBroadcasts)
		c.GET("/broadcasts/active", b.listActive)
		c.POST("/broadcasts", b.startBroadcast)
	})
}

// GET /api/admin/broadcasts
func (b *BroadcastController) listBroadcasts(ctx *gin.Context) (any, *api.APIError) {
	return b.ctl.Broadcasts(), nil
}

// GET /api/admin/broadcasts/active
func (b *BroadcastController) listActive(ctx *gin.Context) (any, *api.APIError) {
	active := b.ctl.ActiveBroadcasts()
	if active == nil {
		active = []model.Broadcast{}
	}
	return active, nil
}

// POST /api/admin/broadcasts
func (b *BroadcastController) startBroadcast(ctx *gin.Context) (any, *api.APIError) {
	var request packets.StartBroadcastRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	broadcast, err := b.ctl.StartBroadcast(
		request.ContentID,
		model.ScheduleType(request.ScheduleType),
		request.ScheduleTime,
	)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoContentSelected):
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: "please select content first"}
		case errors.Is(err, state.ErrNoScreensSelected):
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: "please select at least one screen"}
		case errors.Is(err, state.ErrNoScheduleTime):
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: "please select schedule time"}
		case errors.Is(err, state.ErrContentNotFound):
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "selected content not found"}
		default:
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not start broadcast"}
		}
	}
	return broadcast, nil
}
