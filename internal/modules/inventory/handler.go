package inventory

import (
	"errors"
	"net/http"

	"bhavan/internal/availability"
	"bhavan/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public inventory endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources", h.List)
	rg.POST("/resources/check-availability", h.CheckAvailability)
}

// RegisterAdminRoutes mounts endpoints that require the admin role.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/resources", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CreateResource(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create resource")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"resource": res})
}

func (h *Handler) List(c *gin.Context) {
	resources, err := h.service.List(c.Request.Context(), c.Query("facilityType"), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list resources")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.CheckAvailability(c.Request.Context(), req, false)
	if err != nil {
		writeAvailabilityError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// writeAvailabilityError maps the availability error taxonomy onto the
// response envelope.
func writeAvailabilityError(c *gin.Context, err error) {
	var rule *availability.RuleError
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInactive):
		response.Error(c, http.StatusUnprocessableEntity, "RESOURCE_INACTIVE", err.Error())
	case errors.As(err, &rule):
		response.Error(c, http.StatusUnprocessableEntity, "BOOKING_WINDOW", rule.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability")
	}
}
