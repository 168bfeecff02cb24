package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RomeshCG/Zentra/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/plan-managers")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.GetDetail)
		group.PUT("/:id", h.Update)
		group.POST("/:id/renew", h.Renew)
		group.GET("/:id/history", h.History)
	}
}

// RegisterAdminRoutes holds the destructive endpoints; main.go mounts them
// behind the admin-only middleware.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.DELETE("/plan-managers/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Platform: c.Query("platform"),
		Sort:     c.Query("slots"),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list plan managers")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	manager, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create plan manager")
		return
	}
	response.Success(c, http.StatusCreated, manager)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Plan manager not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DETAIL_FAILED", "Failed to load plan manager")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	manager, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Plan manager not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update plan manager")
		}
		return
	}
	response.Success(c, http.StatusOK, manager)
}

func (h *Handler) Renew(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Renew(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Plan manager not found")
		case errors.Is(err, ErrNoRenewal):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Plan manager has no renewal date to advance")
		default:
			response.Error(c, http.StatusInternalServerError, "RENEW_FAILED", "Failed to renew plan manager")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) History(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	history, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Plan manager not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "HISTORY_FAILED", "Failed to load financial history")
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Plan manager not found")
		case errors.Is(err, ErrHasCustomers):
			response.Error(c, http.StatusConflict, "HAS_CUSTOMERS", "Reassign or remove its customers first")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete plan manager")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, err
	}
	return id, nil
}
