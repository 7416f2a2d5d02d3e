package models

// Slot unavailability reasons.
const (
	SlotReasonPast   = "past"
	SlotReasonBooked = "booked"
)

// TimeSlot is a candidate appointment start time projected from a salon's
// working hours. It is computed fresh per request and never persisted.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM" in the salon's local day
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
