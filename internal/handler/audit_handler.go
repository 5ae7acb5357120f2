package handler

import (
	"net/http"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/model"
	"mro-inventory/internal/service"
	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer) {
	group := router.Group("/api/audit-logs")
	group.Use(auth.RequirePermission(model.PermInventoryRead))
	{
		group.GET("/:entity_id", h.GetEntityHistory)
	}
}

// GetEntityHistory lists the audit trail of any catalog record or document
// @Summary      Get audit logs of an entity
// @Description  Retrieves the audit records of one entity in the order they were written
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        entity_id  path      string  true  "Entity ID"
// @Success      200        {object}  response.Response{data=[]service.AuditLogResponse}
// @Router       /api/audit-logs/{entity_id} [get]
func (h *AuditHandler) GetEntityHistory(c *gin.Context) {
	logs, err := h.auditService.History(c.Request.Context(), c.Param("entity_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, logs))
}
