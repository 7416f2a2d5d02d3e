package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	salonRepo "salora/database/repository/salon"
	scheduleRepo "salora/database/repository/schedule"
	"salora/models"
	"salora/services/scheduling"
	"salora/utils"
)

// AvailabilityHandler serves conflict-aware time slots for a salon day.
type AvailabilityHandler struct {
	Schedules   scheduleRepo.ScheduleRepository
	Salons      salonRepo.SalonRepository
	Checker     *scheduling.Checker
	Cache       *scheduling.WeekCache
	Granularity int // default step in minutes
}

func NewAvailabilityHandler(schedules scheduleRepo.ScheduleRepository, salons salonRepo.SalonRepository,
	checker *scheduling.Checker, cache *scheduling.WeekCache, granularity int) *AvailabilityHandler {
	return &AvailabilityHandler{
		Schedules:   schedules,
		Salons:      salons,
		Checker:     checker,
		Cache:       cache,
		Granularity: granularity,
	}
}

// GetAvailability handles GET /api/availability.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	salonID := c.Query("salonId")
	if salonID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "salonId is required")
		return
	}
	duration, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "durationMinutes must be a positive integer")
		return
	}
	employeeID := c.Query("employeeId")

	granularity := h.Granularity
	if g := c.Query("granularityMinutes"); g != "" {
		granularity, err = strconv.Atoi(g)
		if err != nil || granularity <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "granularityMinutes must be a positive integer")
			return
		}
	}

	salon, err := h.Salons.GetByID(c.Request.Context(), salonID)
	if err != nil {
		if err == salonRepo.ErrSalonNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "salon not found")
			return
		}
		respondError(c, err)
		return
	}
	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		loc = time.UTC
	}

	forDate, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	ws, err := h.Schedules.Read(c.Request.Context(), salonID)
	if err != nil {
		if err == scheduleRepo.ErrScheduleNotFound {
			utils.JSONError(c, http.StatusNotFound, "not found", "no schedule for salon")
			return
		}
		respondError(c, err)
		return
	}

	day := ws.DayFor(models.WeekdayFromTime(forDate.Weekday()))
	slots := scheduling.GenerateSlots(day, granularity, forDate, time.Now().In(loc))
	if len(slots) == 0 {
		c.JSON(http.StatusOK, []models.TimeSlot{})
		return
	}

	appts, err := h.Cache.GetDay(c.Request.Context(), salonID, forDate)
	if err != nil {
		// Same policy switch as the conflict checker: fail open leaves the
		// provisional availability in place, fail closed surfaces the error.
		utils.GetLogger().Error("availability day fetch failed",
			zap.String("salonID", salonID), zap.Bool("failOpen", h.Checker.FailOpen), zap.Error(err))
		if !h.Checker.FailOpen {
			respondError(c, err)
			return
		}
		appts = nil
	}

	resolved := scheduling.AnnotateSlots(slots, appts, forDate, duration, employeeID)

	// Warm the following week while the customer browses this one.
	h.Cache.Preload(salonID, h.Cache.WeekOffsetOf(forDate, loc)+1, loc)

	c.JSON(http.StatusOK, resolved)
}
