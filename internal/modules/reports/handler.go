package reports

import (
	"net/http"
	"time"

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
	group := protected.Group("/reports")
	{
		group.GET("/profit-expenses", h.ProfitExpenses)
		group.GET("/overview", h.Overview)
	}
}

func (h *Handler) ProfitExpenses(c *gin.Context) {
	from, ok := parseMonthParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseMonthParam(c, "to")
	if !ok {
		return
	}

	report, err := h.service.ProfitExpenses(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to build profit report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to build overview")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

func parseMonthParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", name+" must be YYYY-MM")
		return nil, false
	}
	return &t, true
}
