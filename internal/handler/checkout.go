package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/service"
	"github.com/plushmarket/storefront/internal/store"
)

type CheckoutHandler struct {
	sessions *service.SessionService
	checkout *service.CheckoutService
}

func NewCheckoutHandler(sessions *service.SessionService, checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkout: checkout}
}

func (h *CheckoutHandler) Begin(c *gin.Context) {
	var req dto.BeginCheckoutRequest
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

	attempt, err := h.checkout.Begin(ctx, sess, req.Address)
	if err != nil {
		respondBeginError(c, err, attempt)
		return
	}
	c.JSON(http.StatusCreated, toAttemptResponse(attempt))
}

// respondBeginError hands the attempt id back on every halt that leaves a
// resumable attempt behind, so clients can Resume without listing attempts.
// An unconfigured processor additionally carries a code that routes the UI
// to setup instead of a retry.
func respondBeginError(c *gin.Context, err error, attempt *model.CheckoutAttempt) {
	if attempt == nil {
		respondError(c, err)
		return
	}

	switch {
	case errors.Is(err, service.ErrPaymentNotConfigured):
		c.JSON(http.StatusConflict, gin.H{
			"error":      err.Error(),
			"code":       "payment_not_configured",
			"attempt_id": attempt.ID,
		})
	case errors.Is(err, service.ErrSessionWithoutURL):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "attempt_id": attempt.ID})
	default:
		var storeErr *store.Error
		if errors.As(err, &storeErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": storeErr.Message, "attempt_id": attempt.ID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "attempt_id": attempt.ID})
	}
}

func (h *CheckoutHandler) Resume(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	attempt, err := h.checkout.Resume(ctx, sess, attemptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) GetAttempt(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}

	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	attempt, err := h.checkout.Attempt(ctx, sess, attemptID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) ListAttempts(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	attempts, err := h.checkout.ListAttempts(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CheckoutAttemptResponse, 0, len(attempts))
	for i := range attempts {
		resp = append(resp, toAttemptResponse(&attempts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// PaymentReturn serves both redirect targets the processor sends the buyer
// back to. Arrival is not proof of anything: the attempt is settled by asking
// the store for the session's terminal status.
func (h *CheckoutHandler) PaymentReturn(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Query("attempt"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return
	}

	attempt, err := h.checkout.Resolve(c.Request.Context(), attemptID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAttemptResponse(attempt))
}

func (h *CheckoutHandler) SessionStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")

	status, err := h.checkout.SessionStatus(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	switch st := status.(type) {
	case model.SessionCompleted:
		c.JSON(http.StatusOK, dto.SessionStatusResponse{Status: "completed", Caller: st.Caller, Response: st.Response})
	case model.SessionFailed:
		c.JSON(http.StatusOK, dto.SessionStatusResponse{Status: "failed", Error: st.Error})
	}
}

func toAttemptResponse(attempt *model.CheckoutAttempt) dto.CheckoutAttemptResponse {
	return dto.CheckoutAttemptResponse{
		ID:          attempt.ID,
		State:       attempt.State.String(),
		OrderID:     attempt.OrderID,
		RedirectURL: attempt.SessionURL,
		LastError:   attempt.LastError,
		CreatedAt:   attempt.CreatedAt,
		UpdatedAt:   attempt.UpdatedAt,
	}
}
