package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/service"
)

type PaymentHandler struct {
	sessions *service.SessionService
	payments *service.PaymentService
}

func NewPaymentHandler(sessions *service.SessionService, payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{sessions: sessions, payments: payments}
}

func (h *PaymentHandler) Configured(c *gin.Context) {
	configured, err := h.payments.IsConfigured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configured": configured})
}

func (h *PaymentHandler) Configure(c *gin.Context) {
	var req dto.PaymentConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	cfg := model.PaymentConfiguration{SecretKey: req.SecretKey, AllowedCountries: req.AllowedCountries}
	if err := h.payments.Configure(ctx, sess, cfg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment processor configured"})
}
