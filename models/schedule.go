package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday is the closed set of day names used across schedules and the API.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the seven days in schedule order, Monday first.
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday maps a lowercase english day name to its Weekday value.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if Weekday(strings.ToLower(s)) == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", s)
}

// WeekdayFromTime maps the stdlib weekday to the schedule's lowercase set.
func WeekdayFromTime(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Index returns the day's position in the Monday-first week, or -1.
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// WorkInterval is a working window within a day, in minutes from midnight.
type WorkInterval struct {
	Start int `bson:"start" json:"start"` // e.g., 540 for 09:00
	End   int `bson:"end" json:"end"`     // e.g., 1080 for 18:00
}

// ParseMinuteOfDay converts an "HH:MM" string to minutes from midnight.
func ParseMinuteOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatMinuteOfDay renders minutes from midnight as "HH:MM".
func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NewWorkInterval builds a validated interval from "HH:MM" bounds.
func NewWorkInterval(start, end string) (WorkInterval, error) {
	s, err := ParseMinuteOfDay(start)
	if err != nil {
		return WorkInterval{}, err
	}
	e, err := ParseMinuteOfDay(end)
	if err != nil {
		return WorkInterval{}, err
	}
	iv := WorkInterval{Start: s, End: e}
	return iv, iv.Validate()
}

func (iv WorkInterval) Validate() error {
	if iv.Start < 0 || iv.End > 24*60 {
		return fmt.Errorf("interval [%d, %d) out of day range", iv.Start, iv.End)
	}
	if iv.Start >= iv.End {
		return fmt.Errorf("interval start %s must precede end %s",
			FormatMinuteOfDay(iv.Start), FormatMinuteOfDay(iv.End))
	}
	return nil
}

// DaySchedule describes one weekday's working windows.
type DaySchedule struct {
	Day       Weekday        `bson:"day" json:"day"`
	IsOpen    bool           `bson:"isOpen" json:"isOpen"`
	Intervals []WorkInterval `bson:"intervals,omitempty" json:"intervals,omitempty"`
}

// Validate rejects malformed and overlapping intervals. Closed days may carry
// intervals in the payload; they are ignored downstream but still validated
// so a later reopen does not surface garbage.
func (ds DaySchedule) Validate() error {
	if ds.Day.Index() < 0 {
		return fmt.Errorf("invalid weekday %q", ds.Day)
	}
	ivs := append([]WorkInterval(nil), ds.Intervals...)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
	for i, iv := range ivs {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ds.Day, err)
		}
		if i > 0 && ivs[i-1].End > iv.Start {
			return fmt.Errorf("%s: intervals [%s, %s) and [%s, %s) overlap",
				ds.Day,
				FormatMinuteOfDay(ivs[i-1].Start), FormatMinuteOfDay(ivs[i-1].End),
				FormatMinuteOfDay(iv.Start), FormatMinuteOfDay(iv.End))
		}
	}
	return nil
}

// WeeklySchedule is a salon's recurring week, one DaySchedule per weekday.
// Writes replace the whole week; there is no partial patching below the day.
type WeeklySchedule struct {
	SalonID string         `bson:"_id" json:"salonId"`
	Days    [7]DaySchedule `bson:"days" json:"days"`
}

// Validate checks every day is present exactly once, Monday first.
func (ws WeeklySchedule) Validate() error {
	for i, ds := range ws.Days {
		if ds.Day != Weekdays[i] {
			return fmt.Errorf("day %d: got %q, want %q", i, ds.Day, Weekdays[i])
		}
		if err := ds.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DayFor returns the DaySchedule for the given weekday.
func (ws WeeklySchedule) DayFor(d Weekday) DaySchedule {
	idx := d.Index()
	if idx < 0 {
		return DaySchedule{Day: d}
	}
	return ws.Days[idx]
}
