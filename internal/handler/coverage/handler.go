package coverage

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simecdev/simec-api/internal/handler"
	"github.com/simecdev/simec-api/internal/model"
	covsvc "github.com/simecdev/simec-api/internal/service/coverage"
)

type Handler struct {
	service *covsvc.Service
}

func NewHandler(service *covsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contracts := r.Group("/contracts")
	{
		contracts.POST("", h.CreateContract)
		contracts.GET("", h.ListContracts)
		contracts.GET("/:id", h.GetContract)
	}

	insurance := r.Group("/insurance-policies")
	{
		insurance.POST("", h.CreateInsurancePolicy)
		insurance.GET("", h.ListInsurancePolicies)
		insurance.GET("/:id", h.GetInsurancePolicy)
	}
}

func (h *Handler) CreateContract(c *gin.Context) {
	var contract model.ServiceContract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request body"))
		return
	}

	if err := h.service.CreateContract(c.Request.Context(), &contract); err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(contract))
}

func (h *Handler) GetContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid contract ID"))
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("contract not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(contract))
}

func (h *Handler) ListContracts(c *gin.Context) {
	contracts, err := h.service.ListContracts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list contracts"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(contracts))
}

func (h *Handler) CreateInsurancePolicy(c *gin.Context) {
	var policy model.InsurancePolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request body"))
		return
	}

	if err := h.service.CreateInsurancePolicy(c.Request.Context(), &policy); err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(policy))
}

func (h *Handler) GetInsurancePolicy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid policy ID"))
		return
	}

	policy, err := h.service.GetInsurancePolicy(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("insurance policy not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(policy))
}

func (h *Handler) ListInsurancePolicies(c *gin.Context) {
	policies, err := h.service.ListInsurancePolicies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list insurance policies"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(policies))
}
