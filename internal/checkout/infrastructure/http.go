package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-checkout/pkg/errors"
	"go-checkout/pkg/middleware"
)

// HTTPHandler handles HTTP requests for checkouts
type HTTPHandler struct {
	processor *Processor
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(processor *Processor) *HTTPHandler {
	return &HTTPHandler{processor: processor}
}

// RegisterRoutes registers the checkout routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkouts := r.Group("/checkouts")
	{
		checkouts.POST("", h.CreateCheckout)
	}
}

// SuccessResponse is the standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	TraceID string      `json:"trace_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CreateCheckout runs a checkout
// @Summary Run a checkout
// @Description Build an order, apply discount rules in order, then pay, deliver and notify
// @Tags checkouts
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Checkout request"
// @Success 201 {object} SuccessResponse{data=CheckoutResponse} "Checkout completed"
// @Failure 400 {object} errors.ErrorResponse "Unknown method or rule type"
// @Failure 502 {object} errors.ErrorResponse "Payment, delivery or notification failed"
// @Failure 500 {object} errors.ErrorResponse "Internal server error"
// @Router /api/v1/checkouts [post]
func (h *HTTPHandler) CreateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	resp, err := h.processor.Process(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Data:    resp,
		TraceID: c.GetString(middleware.TraceIDKey),
	})
}
