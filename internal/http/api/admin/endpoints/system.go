package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/api/admin/packets"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/state"
	"github.com/lumengrid/ledcast/internal/store"
)

type SystemController struct {
	ctl       *state.Controller
	snapshots store.SnapshotStore
}

// SystemModule mounts stats, status, logs, reset and the network simulation
// trigger.
func SystemModule(ctl *state.Controller, snapshots store.SnapshotStore) api.Module {
	s := &SystemController{ctl: ctl, snapshots: snapshots}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/system/stats", s.stats)
		c.GET("/system/status", s.status)
		c.GET("/system/statistics", s.statistics)
		c.PUT("/system/settings", s.updateSettings)

		c.GET("/logs", s.listLogs)
		c.DELETE("/logs", s.clearLogs)

		c.POST("/simulate/network", s.simulateNetwork)
		c.POST("/reset", s.reset)
	})
}

// GET /api/admin/system/stats
func (s *SystemController) stats(ctx *gin.Context) (any, *api.APIError) {
	return s.ctl.Stats(), nil
}

// GET /api/admin/system/status
func (s *SystemController) status(ctx *gin.Context) (any, *api.APIError) {
	return s.ctl.System(), nil
}

// GET /api/admin/system/statistics
func (s *SystemController) statistics(ctx *gin.Context) (any, *api.APIError) {
	return s.ctl.Statistics(), nil
}

// PUT /api/admin/system/settings
func (s *SystemController) updateSettings(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	settings := model.Settings{
		AutoConnect:       request.AutoConnect,
		SimulateNetwork:   request.SimulateNetwork,
		ShowNotifications: request.ShowNotifications,
	}
	s.ctl.UpdateSettings(settings)
	return settings, nil
}

// GET /api/admin/logs?type=
func (s *SystemController) listLogs(ctx *gin.Context) (any, *api.APIError) {
	filter := model.LogType(ctx.Query("type"))
	switch filter {
	case "", model.LogInfo, model.LogSuccess, model.LogWarning, model.LogError:
	default:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown log type"}
	}
	return s.ctl.Logs(filter), nil
}

// DELETE /api/admin/logs
func (s *SystemController) clearLogs(ctx *gin.Context) (any, *api.APIError) {
	s.ctl.ClearLogs()
	return packets.MessageResponse{Message: "logs cleared"}, nil
}

// POST /api/admin/simulate/network
func (s *SystemController) simulateNetwork(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SimulateEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Event != "disconnect" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown network event"}
	}
	s.ctl.SimulateNetworkDisconnect()
	return packets.MessageResponse{Message: "network disruption simulated"}, nil
}

// POST /api/admin/reset
func (s *SystemController) reset(ctx *gin.Context) (any, *api.APIError) {
	if err := s.snapshots.Clear(ctx.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("could not clear persisted snapshot")
	}
	s.ctl.Reset()
	return packets.MessageResponse{Message: "reset complete"}, nil
}

// ExportModule mounts the export download. It bypasses the JSON envelope so
// it can set a download filename.
func ExportModule(ctl *state.Controller, appName, version string) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Group.GET("/export", func(ctx *gin.Context) {
			export := ctl.Export(appName, version)
			filename := fmt.Sprintf("led-broadcast-export-%s.json", time.Now().Format("2006-01-02"))
			ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			ctx.JSON(http.StatusOK, export)
			ctl.Log("Demo data exported", model.LogSuccess)
		})
	})
}
