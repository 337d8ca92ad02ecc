package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/api/admin/packets"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/state"
)

type ScreenController struct {
	ctl *state.Controller
}

func newScreenController(ctl *state.Controller) *ScreenController {
	return &ScreenController{ctl: ctl}
}

// ScreenModule mounts all authenticated /screens endpoints.
func ScreenModule(ctl *state.Controller) api.Module {
	s := newScreenController(ctl)
	return api.ModuleFunc(func(c *api.Controller) {
		// registry
		c.GET("/screens", s.listScreens)
		c.POST("/screens", s.createScreen)
		c.POST("/screens/bulk", s.bulkAdd)
		c.GET("/screens/:id", s.getScreen)
		c.POST("/screens/:id/toggle", s.toggleStatus)
		c.DELETE("/screens/:id", s.removeScreen)
		c.POST("/screens/:id/simulate", s.simulateEvent)

		// selection set
		c.GET("/selection", s.getSelection)
		c.POST("/selection", s.selectScreen)
		c.DELETE("/selection/:id", s.deselectScreen)
		c.POST("/selection/all", s.selectAll)
		c.DELETE("/selection", s.clearSelection)
	})
}

// GET /api/admin/screens
func (s *ScreenController) listScreens(ctx *gin.Context) (any, *api.APIError) {
	return s.ctl.Screens(), nil
}

// POST /api/admin/screens
func (s *ScreenController) createScreen(ctx *gin.Context) (any, *api.APIError) {
	// an empty body means "generate everything"
	var request packets.CreateScreenRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	}

	var custom *model.Screen
	if request.Name != "" {
		custom = &model.Screen{
			Name:       request.Name,
			Location:   request.Location,
			Type:       request.Type,
			Resolution: request.Resolution,
			IP:         request.IP,
		}
		if custom.Location == "" {
			custom.Location = "Location not set"
		}
		if custom.Type == "" {
			custom.Type = "led"
		}
		if custom.Resolution == "" {
			custom.Resolution = "1920x1080"
		}
	}

	screen := s.ctl.AddScreen(custom)
	return screen, nil
}

// POST /api/admin/screens/bulk
func (s *ScreenController) bulkAdd(ctx *gin.Context) (any, *api.APIError) {
	var request packets.BulkAddRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	added := s.ctl.BulkAddScreens(request.Count)
	return packets.BulkAddResponse{Added: added, Total: len(s.ctl.Screens())}, nil
}

// GET /api/admin/screens/:id
func (s *ScreenController) getScreen(ctx *gin.Context) (any, *api.APIError) {
	screen, err := s.ctl.ScreenByID(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return screen, nil
}

// POST /api/admin/screens/:id/toggle
func (s *ScreenController) toggleStatus(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := s.ctl.ToggleScreenStatus(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	screen, err := s.ctl.ScreenByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return screen, nil
}

// DELETE /api/admin/screens/:id
func (s *ScreenController) removeScreen(ctx *gin.Context) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := s.ctl.RemoveScreen(id); err != nil {
		log.Error().Err(err).Str("screen_id", id).Msg("could not remove screen")
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	return packets.MessageResponse{Message: "screen removed"}, nil
}

// POST /api/admin/screens/:id/simulate
func (s *ScreenController) simulateEvent(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SimulateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.ctl.SimulateScreenEvent(ctx.Param("id"), request.Event); err != nil {
		if errors.Is(err, state.ErrScreenNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		}
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	screen, _ := s.ctl.ScreenByID(ctx.Param("id"))
	return screen, nil
}

// GET /api/admin/selection
func (s *ScreenController) getSelection(ctx *gin.Context) (any, *api.APIError) {
	selected := s.ctl.SelectedScreens()
	return packets.SelectionResponse{Selected: selected, Count: len(selected)}, nil
}

// POST /api/admin/selection
func (s *ScreenController) selectScreen(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SelectScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.ctl.SelectScreen(request.ID); err != nil {
		switch {
		case errors.Is(err, state.ErrScreenNotFound):
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
		case errors.Is(err, state.ErrScreenOffline):
			return nil, &api.APIError{Code: http.StatusConflict, Message: "offline screens cannot be selected"}
		default:
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
	}
	selected := s.ctl.SelectedScreens()
	return packets.SelectionResponse{Selected: selected, Count: len(selected)}, nil
}

// DELETE /api/admin/selection/:id
func (s *ScreenController) deselectScreen(ctx *gin.Context) (any, *api.APIError) {
	s.ctl.DeselectScreen(ctx.Param("id"))
	selected := s.ctl.SelectedScreens()
	return packets.SelectionResponse{Selected: selected, Count: len(selected)}, nil
}

// POST /api/admin/selection/all
func (s *ScreenController) selectAll(ctx *gin.Context) (any, *api.APIError) {
	s.ctl.SelectAllScreens()
	selected := s.ctl.SelectedScreens()
	return packets.SelectionResponse{Selected: selected, Count: len(selected)}, nil
}

// DELETE /api/admin/selection
func (s *ScreenController) clearSelection(ctx *gin.Context) (any, *api.APIError) {
	s.ctl.ClearSelection()
	return packets.SelectionResponse{Selected: []string{}, Count: 0}, nil
}
