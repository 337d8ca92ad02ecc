package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/http/middleware"
)

// Module is one slice of the admin surface (screens, content, broadcasts...)
// that knows how to register its own endpoints.
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc adapts a plain function to Module.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig describes one mount point: the path prefix, whether an operator
// session token is required, and any extra middleware to run first.
type GroupConfig struct {
	Prefix     string
	Auth       bool
	SecretKey  string // required when Auth is set
	Middleware []gin.HandlerFunc
}

// MountGroup registers modules under a shared prefix. Extra middleware runs
// before the JWT guard; both run before any module endpoint.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var group *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		group = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			group = v.Group(cfg.Prefix)
		} else {
			group = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("cannot mount on this router type")
	}

	for _, handler := range cfg.Middleware {
		group.Use(handler)
	}
	if cfg.Auth {
		if cfg.SecretKey == "" {
			log.Fatal().Str("prefix", cfg.Prefix).Msg("authenticated group mounted without a secret key")
		}
		group.Use(middleware.JWTMiddleware(cfg.SecretKey))
	}

	c := &Controller{Group: group}
	for _, m := range modules {
		m.Mount(c)
	}
}
