package booking

import (
	"strconv"
	"strings"
	"time"
)

// Business hours: 30-minute slots from 09:00 up to but excluding 17:00,
// i.e. 09:00, 09:30, ... 16:30.
const (
	OpenHour   = 9
	CloseHour  = 17
	SlotLength = 30 * time.Minute
)

const (
	dateLayout = "2006-01-02"
	slotLayout = "15:04"
)

// SlotGrid returns the full business-hours grid in ascending order.
func SlotGrid() []string {
	open := time.Date(0, 1, 1, OpenHour, 0, 0, 0, time.UTC)
	close := time.Date(0, 1, 1, CloseHour, 0, 0, 0, time.UTC)

	var slots []string
	for t := open; t.Before(close); t = t.Add(SlotLength) {
		slots = append(slots, t.Format(slotLayout))
	}
	return slots
}

// ValidSlot reports whether slot is one of the grid values. 17:00 and later
// are never bookable.
func ValidSlot(slot string) bool {
	for _, s := range SlotGrid() {
		if s == slot {
			return true
		}
	}
	return false
}

// ValidDate checks the YYYY-MM-DD calendar date format.
func ValidDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// SlotTime combines a date and a slot into a wall-clock time in loc.
func SlotTime(date, slot string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+slotLayout, date+" "+slot, loc)
}

// NormalizeDoctorName produces the canonical "Dr. Name" form used for lookups,
// accepting "lee", "dr lee" and "Dr. Lee" alike.
func NormalizeDoctorName(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	lower = strings.TrimPrefix(lower, "dr.")
	lower = strings.TrimPrefix(lower, "dr")
	lower = strings.TrimSpace(lower)
	if lower == "" {
		return trimmed
	}

	words := strings.Fields(lower)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return "Dr. " + strings.Join(words, " ")
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
