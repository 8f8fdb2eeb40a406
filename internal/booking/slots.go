package booking

import (
	"fmt"
	"time"
)

const (
	firstSlotMinute = 9 * 60
	lastSlotMinute  = 20 * 60
	slotStep        = 30

	// DateLayout is how dates travel on the wire.
	DateLayout = "2006-01-02"
	// BookingWindowDays is how far ahead a visit may be booked.
	BookingWindowDays = 30
)

// TimeSlots is the half-hour grid from 09:00 to 20:00, both included.
func TimeSlots() []string {
	slots := make([]string, 0, (lastSlotMinute-firstSlotMinute)/slotStep+1)
	for m := firstSlotMinute; m <= lastSlotMinute; m += slotStep {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

func validSlot(slot string) bool {
	for _, s := range TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotLabel renders "13:30" as "1:30 PM".
func SlotLabel(slot string) string {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return slot
	}
	return t.Format("3:04 PM")
}

// DateWindow returns the first and last bookable days for now, at midnight
// in now's location.
func DateWindow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return first, first.AddDate(0, 0, BookingWindowDays)
}
