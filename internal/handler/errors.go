package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/service"
	"warehouse/pkg/apperror"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the response envelope. Unknown errors
// are attached to the context for the request log and reported generically.
func respondError(c *gin.Context, err error) {
	status := apperror.StatusCode(err)
	if !apperror.IsClientError(err) {
		_ = c.Error(err)
		c.JSON(status, response.Error(status, "Internal server error"))
		return
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, message))
}

// actorFrom converts the authenticated principal into the service-level actor.
func actorFrom(c *gin.Context) (service.Actor, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authentication required"))
		return service.Actor{}, false
	}
	return service.Actor{UserID: p.UserID, Role: p.Role, Permissions: p.Permissions}, true
}

func paged(c *gin.Context, status int, data interface{}, page, limit int, total int64) {
	c.JSON(status, response.SuccessWithPagination(status, data, page, limit, total))
}
