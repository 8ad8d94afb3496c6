package enums

import "fmt"

// TimeSlot is one of the fixed hourly pickup windows the shop offers.
type TimeSlot string

const (
	TimeSlot0900 TimeSlot = "09:00-10:00"
	TimeSlot1000 TimeSlot = "10:00-11:00"
	TimeSlot1100 TimeSlot = "11:00-12:00"
	TimeSlot1200 TimeSlot = "12:00-13:00"
	TimeSlot1300 TimeSlot = "13:00-14:00"
	TimeSlot1400 TimeSlot = "14:00-15:00"
	TimeSlot1500 TimeSlot = "15:00-16:00"
	TimeSlot1600 TimeSlot = "16:00-17:00"
	TimeSlot1700 TimeSlot = "17:00-18:00"
)

var validTimeSlots = []TimeSlot{
	TimeSlot0900,
	TimeSlot1000,
	TimeSlot1100,
	TimeSlot1200,
	TimeSlot1300,
	TimeSlot1400,
	TimeSlot1500,
	TimeSlot1600,
	TimeSlot1700,
}

// TimeSlots returns the full ordered slot set.
func TimeSlots() []TimeSlot {
	slots := make([]TimeSlot, len(validTimeSlots))
	copy(slots, validTimeSlots)
	return slots
}

// String implements fmt.Stringer.
func (s TimeSlot) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TimeSlot.
func (s TimeSlot) IsValid() bool {
	for _, candidate := range validTimeSlots {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTimeSlot converts raw input into a TimeSlot.
func ParseTimeSlot(value string) (TimeSlot, error) {
	for _, candidate := range validTimeSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pickup time slot %q", value)
}
