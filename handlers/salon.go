package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salonRepo "salora/database/repository/salon"
	"salora/config"
	"salora/models"
	"salora/utils"
)

// SalonHandler provides the thin CRUD surface over salon records.
type SalonHandler struct {
	Repo salonRepo.SalonRepository
}

func NewSalonHandler(repo salonRepo.SalonRepository) *SalonHandler {
	return &SalonHandler{Repo: repo}
}

// CreateSalon handles POST /api/salons.
func (h *SalonHandler) CreateSalon(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Address  string `json:"address"`
		Phone    string `json:"phone"`
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	tz := input.Timezone
	if tz == "" {
		tz = config.AppConfig.DefaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "timezone must be an IANA zone name")
		return
	}

	now := time.Now()
	salon := &models.Salon{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Timezone:  tz,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Repo.Create(c.Request.Context(), salon); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, salon)
}

// GetSalon handles GET /api/salons/:id.
func (h *SalonHandler) GetSalon(c *gin.Context) {
	salon, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == salonRepo.ErrSalonNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "salon not found")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, salon)
}

// UpdateSalon handles PATCH /api/salons/:id.
func (h *SalonHandler) UpdateSalon(c *gin.Context) {
	var input struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		Phone    *string `json:"phone"`
		Timezone *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "timezone must be an IANA zone name")
			return
		}
		updates["timezone"] = *input.Timezone
	}
	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "no fields to update")
		return
	}

	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), updates); err != nil {
		if err == salonRepo.ErrSalonNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "salon not found")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteSalon handles DELETE /api/salons/:id.
func (h *SalonHandler) DeleteSalon(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == salonRepo.ErrSalonNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "salon not found")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
