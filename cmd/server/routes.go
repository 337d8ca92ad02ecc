package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lumengrid/ledcast/internal/config"
	"github.com/lumengrid/ledcast/internal/http/api"
	adminapi "github.com/lumengrid/ledcast/internal/http/api/admin/endpoints"
	"github.com/lumengrid/ledcast/internal/media"
	"github.com/lumengrid/ledcast/internal/state"
	"github.com/lumengrid/ledcast/internal/store"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	passwordHash string,
	ctl *state.Controller,
	pipeline *media.Pipeline,
	snapshots store.SnapshotStore,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Disposition",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthModule(env.SecretKey, passwordHash),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.ScreenModule(ctl),
		adminapi.ContentModule(ctl, pipeline),
		adminapi.BroadcastModule(ctl),
		adminapi.SystemModule(ctl, snapshots),
		adminapi.ExportModule(ctl, config.AppName, config.Version),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", env.UploadDir)
	}
}
