package handler

import (
	"warehouse/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler in this package.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authenticator)
}

// Register mounts each handler's routes on router.
func Register(router *gin.RouterGroup, auth *middleware.Authenticator, handlers ...RouteRegistrar) {
	for _, h := range handlers {
		h.RegisterRoutes(router, auth)
	}
}
