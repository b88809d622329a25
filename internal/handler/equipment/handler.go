package equipment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/handler"
	"github.com/simecdev/simec-api/internal/model"
	equipsvc "github.com/simecdev/simec-api/internal/service/equipment"
	"github.com/simecdev/simec-api/pkg/validator"
)

type Handler struct {
	service   *equipsvc.Service
	validator *validator.Validator
}

func NewHandler(service *equipsvc.Service, validator *validator.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	equipment := r.Group("/equipment")
	{
		equipment.POST("", h.CreateEquipment)
		equipment.GET("", h.ListEquipment)
		equipment.GET("/:id", h.GetEquipment)
		equipment.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var equipment model.Equipment
	if err := c.ShouldBindJSON(&equipment); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request body"))
		return
	}

	if err := h.service.Create(c.Request.Context(), &equipment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(equipment))
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid equipment ID"))
		return
	}

	equipment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("equipment not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(equipment))
}

func (h *Handler) ListEquipment(c *gin.Context) {
	filters := &model.EquipmentFilters{
		Sector:     c.Query("sector"),
		SearchTerm: c.Query("search"),
	}

	if op := c.Query("operational"); op != "" {
		operational, err := strconv.ParseBool(op)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid operational filter"))
			return
		}
		filters.Operational = &operational
	}

	equipment, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list equipment"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(equipment))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid equipment ID"))
		return
	}

	var req model.UpdateEquipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request body"))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SetOperational(c.Request.Context(), id, req.Operational); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update equipment status"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
