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

type SubmissionHandler struct {
	sessions *service.SessionService
	approval *service.ApprovalService
}

func NewSubmissionHandler(sessions *service.SessionService, approval *service.ApprovalService) *SubmissionHandler {
	return &SubmissionHandler{sessions: sessions, approval: approval}
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
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

	id, err := h.approval.Submit(ctx, sess, req.Product())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *SubmissionHandler) Decide(c *gin.Context) {
	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	var req dto.DecideSubmissionRequest
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

	if err := h.approval.Decide(ctx, sess, submissionID, model.ApprovalStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "decision recorded"})
}

func (h *SubmissionHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	subs, err := h.approval.ListMine(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

func (h *SubmissionHandler) ListBySeller(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	subs, err := h.approval.ListBySeller(ctx, sess, c.Param("seller"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

func (h *SubmissionHandler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	subs, err := h.approval.ListAll(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

func toSubmissionResponses(subs []model.SellerProductSubmission) []dto.SubmissionResponse {
	resp := make([]dto.SubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, dto.SubmissionResponse{
			ID:             sub.ID,
			Seller:         sub.Seller,
			Product:        sub.Product,
			ApprovalStatus: string(sub.ApprovalStatus),
		})
	}
	return resp
}
