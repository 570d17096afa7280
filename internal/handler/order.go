package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/service"
)

type OrderHandler struct {
	sessions *service.SessionService
	orders   *service.OrderService
}

func NewOrderHandler(sessions *service.SessionService, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{sessions: sessions, orders: orders}
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := h.orders.ListMine(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orders.Get(ctx, sess, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	orders, err := h.orders.ListAll(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req dto.UpdateOrderStatusRequest
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

	if err := h.orders.UpdateStatus(ctx, sess, orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
