package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/service"
)

type CatalogHandler struct {
	sessions *service.SessionService
	catalog  *service.CatalogService
}

func NewCatalogHandler(sessions *service.SessionService, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{sessions: sessions, catalog: catalog}
}

func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
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

	id, err := h.catalog.Add(ctx, sess, req.Product())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req dto.ProductRequest
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

	product := req.Product()
	product.ID = id
	if err := h.catalog.Update(ctx, sess, product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
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

	if err := h.catalog.Remove(ctx, sess, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
