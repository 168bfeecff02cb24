package subscriptions

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
	protected.GET("/customers/:id/subscriptions", h.ListByCustomer)
	protected.POST("/customers/:id/subscriptions", h.Create)
	protected.GET("/customers/:id/payments", h.ListPayments)
	protected.POST("/customers/:id/payments", h.CreatePayment)

	group := protected.Group("/subscriptions")
	{
		group.PUT("/:id", h.Update)
	}
}

// RegisterAdminRoutes holds the hard delete; main.go mounts it behind the
// admin-only middleware.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.DELETE("/subscriptions/:id", h.Delete)
}

func (h *Handler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	items, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list subscriptions")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			response.NotFound(c, "Customer not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create subscription")
		}
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Subscription not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update subscription")
		}
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Subscription not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete subscription")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListPayments(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list payments")
		return
	}
	response.Success(c, http.StatusOK, payments)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	customerID, ok := parseID(c)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			response.NotFound(c, "Customer not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to record payment")
		}
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
