package scheduling

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"salora/models"
	"salora/utils"
)

// DayLister is the slice of the appointment store the week cache needs.
type DayLister interface {
	ListByDay(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error)
}

// WeekCache memoizes per-(salon, week-offset) appointment fetches. It lives
// for the process and is only ever emptied through Invalidate; there is no
// expiry. All access goes through the internal mutex.
//
// A generation counter per key guards the invalidate+get race: a fetch that
// began before an Invalidate observes a stale generation and is not stored,
// so a get after the invalidate can never be served data from before it.
type WeekCache struct {
	store DayLister

	mu      sync.Mutex
	entries map[string][]models.Appointment
	gens    map[string]uint64

	now func() time.Time
}

func NewWeekCache(store DayLister) *WeekCache {
	return &WeekCache{
		store:   store,
		entries: make(map[string][]models.Appointment),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
}

func weekKey(salonID string, weekOffset int) string {
	return fmt.Sprintf("%s|%d", salonID, weekOffset)
}

// WeekStart returns the salon-local midnight opening week weekOffset. Week 0
// starts today.
func (c *WeekCache) WeekStart(weekOffset int, loc *time.Location) time.Time {
	now := c.now().In(loc)
	weekZero := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return weekZero.AddDate(0, 0, weekOffset*7)
}

// WeekOffsetOf buckets an instant into its week offset relative to today.
func (c *WeekCache) WeekOffsetOf(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	days := int(math.Round(day.Sub(c.WeekStart(0, loc)).Hours() / 24))
	if days >= 0 {
		return days / 7
	}
	return -((-days + 6) / 7)
}

// GetWeek returns the week's appointments, fetching each of the 7 days in
// parallel on a miss and storing the concatenation in day order.
func (c *WeekCache) GetWeek(ctx context.Context, salonID string, weekOffset int, loc *time.Location) ([]models.Appointment, error) {
	key := weekKey(salonID, weekOffset)

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	gen := c.gens[key]
	c.mu.Unlock()

	weekStart := c.WeekStart(weekOffset, loc)

	var (
		wg       sync.WaitGroup
		days     [7][]models.Appointment
		firstErr error
		errOnce  sync.Once
	)
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dayStart := weekStart.AddDate(0, 0, i)
			dayEnd := dayStart.AddDate(0, 0, 1)
			appts, err := c.store.ListByDay(ctx, salonID, dayStart, dayEnd)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			days[i] = appts
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, NewTransientStoreError("week fetch", firstErr)
	}

	var week []models.Appointment
	for _, day := range days {
		week = append(week, day...)
	}

	c.mu.Lock()
	if c.gens[key] == gen {
		c.entries[key] = week
	}
	c.mu.Unlock()

	return week, nil
}

// GetDay slices one salon-local day out of the cached week.
func (c *WeekCache) GetDay(ctx context.Context, salonID string, date time.Time) ([]models.Appointment, error) {
	loc := date.Location()
	week, err := c.GetWeek(ctx, salonID, c.WeekOffsetOf(date, loc), loc)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appts []models.Appointment
	for _, a := range week {
		if !a.StartAt.Before(dayStart) && a.StartAt.Before(dayEnd) {
			appts = append(appts, a)
		}
	}
	return appts, nil
}

// Invalidate drops the week's entry. It is the only mutation entry point
// exposed to other components.
func (c *WeekCache) Invalidate(salonID string, weekOffset int) {
	key := weekKey(salonID, weekOffset)
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()
}

// Preload warms the week's entry in the background. Best effort: it never
// blocks the caller and its result is advisory.
func (c *WeekCache) Preload(salonID string, weekOffset int, loc *time.Location) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := c.GetWeek(ctx, salonID, weekOffset, loc); err != nil {
			utils.GetLogger().Debug("week preload failed",
				zap.String("salonID", salonID), zap.Int("weekOffset", weekOffset), zap.Error(err))
		}
	}()
}
