package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appointmentRepo "salora/database/repository/appointment"
	"salora/models"
	"salora/services/scheduling"
	"salora/utils"
)

// AppointmentHandler covers staff-facing appointment operations.
type AppointmentHandler struct {
	Coordinator *scheduling.Coordinator
	Store       appointmentRepo.AppointmentRepository
}

func NewAppointmentHandler(coordinator *scheduling.Coordinator, store appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Coordinator: coordinator, Store: store}
}

// TransitionStatus handles PATCH /api/salons/:id/appointments/:apptID/status.
func (h *AppointmentHandler) TransitionStatus(c *gin.Context) {
	salonID := c.Param("id")
	apptID := c.Param("apptID")

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	status, err := models.ParseAppointmentStatus(input.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Coordinator.Transition(c.Request.Context(), salonID, apptID, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAppointments handles GET /api/salons/:id/appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	salonID := c.Param("id")

	var f appointmentRepo.Filters
	if s := c.Query("status"); s != "" {
		status, err := models.ParseAppointmentStatus(s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		f.Status = status
	}
	f.EmployeeID = c.Query("employeeId")
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "from must be RFC3339")
			return
		}
		f.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "to must be RFC3339")
			return
		}
		f.To = t
	}

	appts, err := h.Store.ListBySalon(c.Request.Context(), salonID, f)
	if err != nil {
		respondError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}
