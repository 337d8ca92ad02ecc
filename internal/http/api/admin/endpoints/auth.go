package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/api/admin/packets"
	"github.com/lumengrid/ledcast/internal/http/middleware"
)

type AuthController struct {
	secret       string
	passwordHash string
}

// AuthModule mounts the public operator login endpoint.
func AuthModule(secret, passwordHash string) api.Module {
	ctl := &AuthController{secret: secret, passwordHash: passwordHash}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/login", ctl.login)
	})
}

// POST /api/admin/auth/login
func (a *AuthController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !middleware.CheckPassword(a.passwordHash, request.Password) {
		log.Warn().Msg("operator login rejected")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	token, err := middleware.GenerateJWT(a.secret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not issue token"}
	}
	return packets.TokenResponse{Token: token}, nil
}
