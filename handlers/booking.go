package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salora/services/scheduling"
	"salora/utils"
)

// BookingHandler exposes the booking commit path.
type BookingHandler struct {
	Coordinator *scheduling.Coordinator
}

func NewBookingHandler(coordinator *scheduling.Coordinator) *BookingHandler {
	return &BookingHandler{Coordinator: coordinator}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		SalonID         string `json:"salonId" binding:"required"`
		ServiceID       string `json:"serviceId" binding:"required"`
		StartAt         string `json:"startAt" binding:"required"`
		DurationMinutes int    `json:"durationMinutes" binding:"required"`
		EmployeeID      string `json:"employeeId"`
		CustomerRef     string `json:"customerRef"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	startAt, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "startAt must be RFC3339 with timezone")
		return
	}

	appt, err := h.Coordinator.Book(c.Request.Context(), scheduling.BookingRequest{
		SalonID:         input.SalonID,
		ServiceID:       input.ServiceID,
		EmployeeID:      input.EmployeeID,
		CustomerRef:     input.CustomerRef,
		StartAt:         startAt,
		DurationMinutes: input.DurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}
