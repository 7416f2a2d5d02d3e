package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scheduleRepo "salora/database/repository/schedule"
	"salora/models"
	"salora/utils"
)

// ScheduleHandler reads and replaces a salon's weekly work hours.
type ScheduleHandler struct {
	Schedules scheduleRepo.ScheduleRepository
}

func NewScheduleHandler(schedules scheduleRepo.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{Schedules: schedules}
}

// GetSchedule handles GET /api/salons/:id/schedule.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	salonID := c.Param("id")

	ws, err := h.Schedules.Read(c.Request.Context(), salonID)
	if err != nil {
		if err == scheduleRepo.ErrScheduleNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "no schedule for salon")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

// PutSchedule handles PUT /api/salons/:id/schedule. The payload replaces the
// whole week; days cannot be patched individually.
func (h *ScheduleHandler) PutSchedule(c *gin.Context) {
	salonID := c.Param("id")

	var input struct {
		Days [7]models.DaySchedule `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ws := &models.WeeklySchedule{SalonID: salonID, Days: input.Days}
	if err := ws.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid schedule", err.Error())
		return
	}

	if err := h.Schedules.Write(c.Request.Context(), ws); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}
