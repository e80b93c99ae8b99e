package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"industry-lens/internal/models"
	"industry-lens/internal/services"
)

// AdminHandler serves everything under /api/admin. Routes are registered
// behind AuthMiddleware plus AdminOnly.
type AdminHandler struct {
	users         *services.UserService
	moderation    *services.ModerationService
	flags         *services.FlagService
	professionals *services.ProfessionalService
}

func NewAdminHandler(
	users *services.UserService,
	moderation *services.ModerationService,
	flags *services.FlagService,
	professionals *services.ProfessionalService,
) *AdminHandler {
	return &AdminHandler{
		users:         users,
		moderation:    moderation,
		flags:         flags,
		professionals: professionals,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Public())
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	details, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var upd services.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (h *AdminHandler) ToggleBlockUser(c *gin.Context) {
	user, err := h.users.ToggleBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	if err := h.users.ResetPassword(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset email sent"})
}

func (h *AdminHandler) UserReviews(c *gin.Context) {
	reviews, err := h.users.UserReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	reviews, err := h.moderation.ListReviews(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *AdminHandler) SetReviewStatus(c *gin.Context) {
	var input struct {
		Status        string `json:"status" binding:"required"`
		DenialReason  string `json:"denialReason"`
		DenialDetails string `json:"denialDetails"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.moderation.SetReviewStatus(c.Request.Context(), c.Param("id"), models.ReviewStatus(input.Status), input.DenialReason, input.DenialDetails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *AdminHandler) DenialReasons(c *gin.Context) {
	c.JSON(http.StatusOK, h.moderation.DenialReasons())
}

func (h *AdminHandler) ListFlags(c *gin.Context) {
	flags, err := h.flags.ListFlags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

func (h *AdminHandler) ResolveFlag(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flag, err := h.flags.ResolveFlag(c.Request.Context(), c.Param("id"), models.FlagStatus(input.Status), input.Action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flag)
}

func (h *AdminHandler) ListProfessionals(c *gin.Context) {
	professionals, err := h.professionals.AdminList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, professionals)
}

func (h *AdminHandler) GetProfessional(c *gin.Context) {
	details, err := h.professionals.AdminGet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *AdminHandler) CreateProfessional(c *gin.Context) {
	var input services.CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof, err := h.professionals.Create(c.Request.Context(), c.GetString("userId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prof)
}

func (h *AdminHandler) UpdateProfessional(c *gin.Context) {
	var upd services.ProfessionalUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof, err := h.professionals.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h *AdminHandler) ToggleProfessionalReviews(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional when re-enabling.
	_ = c.ShouldBindJSON(&input)

	prof, err := h.professionals.ToggleReviews(c.Request.Context(), c.Param("id"), input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h *AdminHandler) SetProfessionalIMDB(c *gin.Context) {
	var input struct {
		IMDBLink string `json:"imdbLink" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof, err := h.professionals.SetIMDBLink(c.Request.Context(), c.Param("id"), input.IMDBLink)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h *AdminHandler) VerifyProfessional(c *gin.Context) {
	prof, err := h.professionals.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h *AdminHandler) RefreshProfessionalMetadata(c *gin.Context) {
	prof, err := h.professionals.RefreshMetadata(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.moderation.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
