package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/handler"
	"github.com/simecdev/simec-api/internal/model"
	alertsvc "github.com/simecdev/simec-api/internal/service/alert"
)

type Handler struct {
	service *alertsvc.Service
}

func NewHandler(service *alertsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	alerts := r.Group("/alerts")
	{
		alerts.GET("", h.ListAlerts)
		alerts.GET("/unseen-count", h.CountUnseen)
		alerts.POST("/:id/seen", h.MarkSeen)
		alerts.POST("/seen-all", h.MarkAllSeen)
	}
}

func (h *Handler) ListAlerts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := &model.AlertFilters{
		Category: model.AlertCategory(c.Query("category")),
		Priority: model.AlertPriority(c.Query("priority")),
		Unseen:   c.Query("unseen") == "true",
	}

	alerts, err := h.service.ListForUser(c.Request.Context(), userID, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list alerts"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(alerts))
}

func (h *Handler) CountUnseen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.service.CountUnseen(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to count unseen alerts"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"count": count}))
}

func (h *Handler) MarkSeen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alertID := c.Param("id")
	if alertID == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("alert ID is required"))
		return
	}

	if err := h.service.MarkSeen(c.Request.Context(), alertID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to mark alert as seen"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) MarkAllSeen(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllSeen(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to mark alerts as seen"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID"))
		return uuid.Nil, false
	}
	return userID, true
}
