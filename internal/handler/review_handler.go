package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"industry-lens/internal/models"
	"industry-lens/internal/services"
)

type ReviewHandler struct {
	reviews *services.ReviewService
	flags   *services.FlagService
}

func NewReviewHandler(reviews *services.ReviewService, flags *services.FlagService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, flags: flags}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var input services.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.CreateReview(c.Request.Context(), c.GetString("userId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var upd models.ReviewUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviews.UpdateReview(c.Request.Context(), c.Param("id"), c.GetString("userId"), isAdmin(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviews.DeleteReview(c.Request.Context(), c.Param("id"), c.GetString("userId"), isAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	count, err := h.reviews.MarkHelpful(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"helpfulCount": count})
}

func (h *ReviewHandler) Flag(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flag, err := h.flags.FlagReview(c.Request.Context(), c.Param("id"), c.GetString("userId"), input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flag)
}

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	reviews, err := h.reviews.MyReviews(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CheckReviewed(c *gin.Context) {
	check, err := h.reviews.CheckReviewed(c.Request.Context(), c.Param("professionalId"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == "admin"
}
