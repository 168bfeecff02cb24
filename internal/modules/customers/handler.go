package customers

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
	protected.POST("/plan-managers/:id/customers", h.Assign)

	group := protected.Group("/customers")
	{
		group.GET("", h.List)
		group.GET("/export", h.Export)
		group.GET("/:id", h.GetDetail)
		group.PUT("/:id", h.Update)
		group.POST("/:id/renew", h.Renew)
		group.POST("/:id/transfer", h.Transfer)
		group.POST("/:id/deactivate", h.Deactivate)
		group.POST("/:id/flag", h.Flag)
		group.GET("/:id/months", h.Months)
	}
}

// RegisterAdminRoutes holds the hard delete; main.go mounts it behind the
// admin-only middleware.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.DELETE("/customers/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list customers")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Export(c *gin.Context) {
	filter, ok := parseListFilter(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export customers")
		return
	}

	workbook, err := BuildExportWorkbook(items)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to build workbook")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="customers_export.xlsx"`)
	if err := workbook.Write(c.Writer); err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to stream workbook")
	}
}

func (h *Handler) Assign(c *gin.Context) {
	managerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Assign(c.Request.Context(), managerID, req)
	if err != nil {
		switch {
		case respondValidation(c, err):
		case errors.Is(err, ErrManagerNotFound):
			response.NotFound(c, "Plan manager not found")
		case errors.Is(err, ErrNoCapacity):
			response.Error(c, http.StatusConflict, "NO_CAPACITY", "Plan manager has no free slots")
		case errors.Is(err, ErrLedgerConflict):
			response.Error(c, http.StatusConflict, "LEDGER_CONFLICT", "A ledger row already exists for that month")
		default:
			response.Error(c, http.StatusInternalServerError, "ASSIGN_FAILED", "Failed to assign customer")
		}
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DETAIL_FAILED", "Failed to load customer")
		return
	}
	response.Success(c, http.StatusOK, detail)
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

	customer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case respondValidation(c, err):
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Customer not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update customer")
		}
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) Renew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Renew(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case respondValidation(c, err):
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Customer not found")
		case errors.Is(err, ErrLedgerConflict):
			response.Error(c, http.StatusConflict, "LEDGER_CONFLICT", "A ledger row already exists for that month")
		default:
			response.Error(c, http.StatusInternalServerError, "RENEW_FAILED", "Failed to renew customer")
		}
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Transfer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, err := h.service.Transfer(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c, "Customer not found")
		case errors.Is(err, ErrManagerNotFound):
			response.NotFound(c, "Plan manager not found")
		case errors.Is(err, ErrPlatformMismatch):
			response.Error(c, http.StatusConflict, "PLATFORM_MISMATCH", "Target plan manager is on a different platform")
		case errors.Is(err, ErrNoCapacity):
			response.Error(c, http.StatusConflict, "NO_CAPACITY", "Target plan manager has no free slots")
		default:
			response.Error(c, http.StatusInternalServerError, "TRANSFER_FAILED", "Failed to transfer customer")
		}
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// Default is deactivation; {"active": true} reactivates.
	req := DeactivateRequest{Active: false}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, err := h.service.SetActive(c.Request.Context(), id, req.Active)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update customer")
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) Flag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req := FlagRequest{Flagged: true}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, err := h.service.SetFlagged(c.Request.Context(), id, req.Flagged)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update customer")
		return
	}
	response.Success(c, http.StatusOK, customer)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete customer")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Months(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	months, err := h.service.Months(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "MONTHS_FAILED", "Failed to load subscription months")
		return
	}
	response.Success(c, http.StatusOK, months)
}

func parseListFilter(c *gin.Context) (ListFilter, bool) {
	filter := ListFilter{
		Query:       c.Query("q"),
		Platform:    c.Query("platform"),
		RenewalDate: c.Query("renewal_date"),
		DueThisWeek: c.Query("due_this_week") == "true",
	}
	if raw := c.Query("manager_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid manager_id")
			return filter, false
		}
		filter.ManagerID = id
	}
	return filter, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func respondValidation(c *gin.Context, err error) bool {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErr.Messages)
		return true
	}
	return false
}
