package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salora/models"
)

// countingLister serves a fixed set of appointments filtered by day range and
// counts every ListByDay call. An optional before hook runs first, letting
// tests hold a fetch open.
type countingLister struct {
	mu     sync.Mutex
	calls  int
	appts  []models.Appointment
	err    error
	before func()
}

func (l *countingLister) ListByDay(ctx context.Context, salonID string, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	if l.before != nil {
		l.before()
	}
	l.mu.Lock()
	l.calls++
	err := l.err
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []models.Appointment
	for _, a := range l.appts {
		if !a.StartAt.Before(dayStart) && a.StartAt.Before(dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (l *countingLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func newTestWeekCache(lister *countingLister) *WeekCache {
	c := NewWeekCache(lister)
	c.now = func() time.Time { return testDay }
	return c
}

func TestWeekCache_MissFetchesSevenDays(t *testing.T) {
	monday := appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed)
	wednesday := appt("a2", "emp-1", at(9, 0).AddDate(0, 0, 2), 30, models.StatusConfirmed)
	lister := &countingLister{appts: []models.Appointment{wednesday, monday}}
	cache := newTestWeekCache(lister)

	week, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC)
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if lister.callCount() != 7 {
		t.Errorf("ListByDay calls = %d, want 7", lister.callCount())
	}
	if len(week) != 2 || week[0].ID != "a1" || week[1].ID != "a2" {
		t.Errorf("week = %+v, want [a1 a2] in day order", week)
	}
}

func TestWeekCache_HitSkipsStore(t *testing.T) {
	lister := &countingLister{}
	cache := newTestWeekCache(lister)

	for i := 0; i < 3; i++ {
		if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
			t.Fatalf("GetWeek: %v", err)
		}
	}
	if lister.callCount() != 7 {
		t.Errorf("ListByDay calls = %d, want 7 (single fetch)", lister.callCount())
	}

	// A different week is its own entry.
	if _, err := cache.GetWeek(context.Background(), "salon-1", 1, time.UTC); err != nil {
		t.Fatalf("GetWeek offset 1: %v", err)
	}
	if lister.callCount() != 14 {
		t.Errorf("ListByDay calls = %d, want 14 after second week", lister.callCount())
	}
}

func TestWeekCache_InvalidateForcesRefetch(t *testing.T) {
	lister := &countingLister{}
	cache := newTestWeekCache(lister)

	if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	cache.Invalidate("salon-1", 0)
	if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
		t.Fatalf("GetWeek after invalidate: %v", err)
	}
	if lister.callCount() != 14 {
		t.Errorf("ListByDay calls = %d, want 14", lister.callCount())
	}
}

// A fetch that started before an Invalidate must not repopulate the entry,
// otherwise a reader after the invalidation could see pre-invalidation data.
func TestWeekCache_InvalidateDuringFetchNotStored(t *testing.T) {
	var started sync.Once
	fetching := make(chan struct{})
	release := make(chan struct{})
	lister := &countingLister{before: func() {
		started.Do(func() { close(fetching) })
		<-release
	}}
	cache := newTestWeekCache(lister)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
			t.Errorf("in-flight GetWeek: %v", err)
		}
	}()

	<-fetching
	cache.Invalidate("salon-1", 0)
	close(release)
	<-done

	// The stale result was discarded, so this get fetches again.
	if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
		t.Fatalf("GetWeek after stale fetch: %v", err)
	}
	if lister.callCount() != 14 {
		t.Errorf("ListByDay calls = %d, want 14 (stale fetch not cached)", lister.callCount())
	}
}

func TestWeekCache_FetchErrorSurfaces(t *testing.T) {
	lister := &countingLister{err: errors.New("mongo down")}
	cache := newTestWeekCache(lister)

	_, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC)
	var tErr *TransientStoreError
	if !errors.As(err, &tErr) {
		t.Fatalf("error = %v (%T), want *TransientStoreError", err, err)
	}

	// Errors are not cached.
	lister.mu.Lock()
	lister.err = nil
	lister.mu.Unlock()
	if _, err := cache.GetWeek(context.Background(), "salon-1", 0, time.UTC); err != nil {
		t.Errorf("GetWeek after store recovery: %v", err)
	}
}

func TestWeekCache_GetDaySlices(t *testing.T) {
	monday := appt("a1", "emp-1", at(10, 0), 60, models.StatusConfirmed)
	tuesday := appt("a2", "emp-1", at(10, 0).AddDate(0, 0, 1), 60, models.StatusConfirmed)
	lister := &countingLister{appts: []models.Appointment{monday, tuesday}}
	cache := newTestWeekCache(lister)

	day, err := cache.GetDay(context.Background(), "salon-1", testDay)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if len(day) != 1 || day[0].ID != "a1" {
		t.Errorf("monday = %+v, want just a1", day)
	}

	day, err = cache.GetDay(context.Background(), "salon-1", testDay.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetDay tuesday: %v", err)
	}
	if len(day) != 1 || day[0].ID != "a2" {
		t.Errorf("tuesday = %+v, want just a2", day)
	}

	// Both days come from the one cached week.
	if lister.callCount() != 7 {
		t.Errorf("ListByDay calls = %d, want 7", lister.callCount())
	}
}

func TestWeekCache_WeekOffsetOf(t *testing.T) {
	cache := newTestWeekCache(&countingLister{})

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"today", testDay.Add(13 * time.Hour), 0},
		{"end of week zero", testDay.AddDate(0, 0, 6).Add(23 * time.Hour), 0},
		{"first day of next week", testDay.AddDate(0, 0, 7), 1},
		{"yesterday", testDay.Add(-time.Hour), -1},
		{"a week ago", testDay.AddDate(0, 0, -7), -1},
		{"eight days ago", testDay.AddDate(0, 0, -8), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cache.WeekOffsetOf(tt.t, time.UTC); got != tt.want {
				t.Errorf("WeekOffsetOf(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
}

func TestWeekCache_PreloadWarmsEntry(t *testing.T) {
	lister := &countingLister{}
	cache := newTestWeekCache(lister)

	cache.Preload("salon-1", 1, time.UTC)

	deadline := time.Now().Add(2 * time.Second)
	for lister.callCount() < 7 {
		if time.Now().After(deadline) {
			t.Fatalf("preload never completed, calls = %d", lister.callCount())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := cache.GetWeek(context.Background(), "salon-1", 1, time.UTC); err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if lister.callCount() != 7 {
		t.Errorf("ListByDay calls = %d, want 7 (served from preload)", lister.callCount())
	}
}
