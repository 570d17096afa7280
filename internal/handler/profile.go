package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plushmarket/storefront/internal/dto"
	"github.com/plushmarket/storefront/internal/middleware"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/service"
)

type ProfileHandler struct {
	sessions *service.SessionService
}

func NewProfileHandler(sessions *service.SessionService) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.sessions.Profile(ctx, sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Save(c *gin.Context) {
	var req dto.ProfileRequest
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

	if err := h.sessions.SaveProfile(ctx, sess, model.UserProfile{Name: req.Name}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}

// Logout drops everything cached for the caller so the next identity on this
// client starts from fresh reads.
func (h *ProfileHandler) Logout(c *gin.Context) {
	caller := middleware.GetCaller(c)
	if caller == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.sessions.Invalidate(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
