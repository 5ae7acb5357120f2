package handler

import (
	"net/http"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// MyPermissionsResponse lists the permission codes of the caller's role
type MyPermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer) {
	router.GET("/api/permissions/me", auth.RequirePermission(), h.MyPermissions)
}

// MyPermissions returns the permission codes granted to the caller
// @Summary      My permissions
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=MyPermissionsResponse}
// @Router       /api/permissions/me [get]
func (h *RoleHandler) MyPermissions(c *gin.Context) {
	role := c.GetString(middleware.ContextUserRole)

	codes, err := h.roleService.PermissionsForRole(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, MyPermissionsResponse{Role: role, Permissions: codes}))
}
