package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"industry-lens/internal/services"
)

type ProfessionalHandler struct {
	professionals *services.ProfessionalService
}

func NewProfessionalHandler(professionals *services.ProfessionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionals: professionals}
}

func (h *ProfessionalHandler) Search(c *gin.Context) {
	results, err := h.professionals.Search(c.Request.Context(), c.Query("q"), c.Query("department"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *ProfessionalHandler) Departments(c *gin.Context) {
	c.JSON(http.StatusOK, h.professionals.Departments())
}

func (h *ProfessionalHandler) Profile(c *gin.Context) {
	profile, err := h.professionals.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// FindOrCreate lets an authenticated user add a professional as part of
// writing a review. Returns 200 with the existing profile when the person is
// already listed.
func (h *ProfessionalHandler) FindOrCreate(c *gin.Context) {
	var input services.CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prof, created, err := h.professionals.FindOrCreate(c.Request.Context(), c.GetString("userId"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, prof)
}

func (h *ProfessionalHandler) Project(c *gin.Context) {
	project, err := h.professionals.GetProject(c.Request.Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
