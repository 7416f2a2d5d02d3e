package scheduleRepo

import (
	"context"

	"salora/models"
)

// ScheduleRepository reads and writes a salon's recurring weekly work hours.
// Writes replace the whole week.
type ScheduleRepository interface {
	Read(ctx context.Context, salonID string) (*models.WeeklySchedule, error)
	Write(ctx context.Context, ws *models.WeeklySchedule) error
}
