package prices

import (
	"errors"
	"net/http"

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
	group := protected.Group("/platform-prices")
	{
		group.GET("", h.History)
		group.GET("/current", h.Current)
		group.POST("", h.Create)
	}
}

func (h *Handler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to load price history")
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) Current(c *gin.Context) {
	current, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to resolve current prices")
		return
	}
	response.Success(c, http.StatusOK, current)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to record price")
		return
	}
	response.Success(c, http.StatusCreated, row)
}
