package catalog

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/packages", h.List)
	rg.GET("/packages/:id", h.Get)
	rg.POST("/packages/:id/calculate-price", h.CalculatePrice)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/packages", h.Create)
	rg.PUT("/packages/:id", h.Update)
	rg.DELETE("/packages/:id", h.Delete)
}

func packageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid package ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	packages, err := h.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list packages")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := packageID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load package")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": p})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.CreatePackage(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create package")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"package": p})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := packageID(c)
	if !ok {
		return
	}
	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	p, err := h.service.UpdatePackage(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update package")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": p})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := packageID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePackage(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete package")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CalculatePrice(c *gin.Context) {
	id, ok := packageID(c)
	if !ok {
		return
	}
	var req CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	res, err := h.service.CalculatePrice(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to calculate price")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var rule *availability.RuleError
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Package not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrRoomQuantityRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrPackageInUse):
		response.Error(c, http.StatusConflict, "PACKAGE_IN_USE", "Package has active bookings")
	case errors.As(err, &rule):
		response.Error(c, http.StatusUnprocessableEntity, "BOOKING_WINDOW", rule.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
