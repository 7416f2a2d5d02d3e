package routes

import (
	"github.com/gin-gonic/gin"

	"salora/handlers"
)

// RegisterBookingRoutes registers the scheduling engine's public endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api")
	{
		api.POST("/bookings", bh.CreateBooking)
		api.GET("/availability", ah.GetAvailability)
	}
}

// RegisterSalonRoutes registers salon management endpoints: the record
// itself, its weekly work hours and its appointment book.
func RegisterSalonRoutes(r *gin.Engine, sh *handlers.SalonHandler, sch *handlers.ScheduleHandler, aph *handlers.AppointmentHandler) {
	api := r.Group("/api/salons")
	{
		api.POST("", sh.CreateSalon)
		api.GET("/:id", sh.GetSalon)
		api.PATCH("/:id", sh.UpdateSalon)
		api.DELETE("/:id", sh.DeleteSalon)

		api.GET("/:id/schedule", sch.GetSchedule)
		api.PUT("/:id/schedule", sch.PutSchedule)

		api.GET("/:id/appointments", aph.ListAppointments)
		api.PATCH("/:id/appointments/:apptID/status", aph.TransitionStatus)
	}
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}
