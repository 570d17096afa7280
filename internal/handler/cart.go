package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/service"
)

type CartHandler struct {
	sessions *service.SessionService
	carts    *service.CartService
}

func NewCartHandler(sessions *service.SessionService, carts *service.CartService) *CartHandler {
	return &CartHandler{sessions: sessions, carts: carts}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	lines, total, err := h.carts.Get(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.CartResponse{Lines: make([]dto.PricedLineResponse, 0, len(lines)), Total: total}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.PricedLineResponse{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Variant:   line.Variant,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
			LineTotal: line.LineTotal,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddCartLineRequest
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

	line := model.CartLine{ProductID: req.ProductID, Quantity: req.Quantity, Variant: req.Variant}
	if err := h.carts.AddLine(ctx, sess, line); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "line added"})
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.carts.RemoveLine(ctx, sess, productID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
