package enums

import "fmt"

// PointEventType classifies a point ledger entry.
type PointEventType string

const (
	PointEventTypeEarned  PointEventType = "earned"
	PointEventTypeUsed    PointEventType = "used"
	PointEventTypeExpired PointEventType = "expired"
	PointEventTypeBonus   PointEventType = "bonus"
)

var validPointEventTypes = []PointEventType{
	PointEventTypeEarned,
	PointEventTypeUsed,
	PointEventTypeExpired,
	PointEventTypeBonus,
}

// IsValid reports whether the value matches the canonical point event enum.
func (t PointEventType) IsValid() bool {
	for _, candidate := range validPointEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsCredit reports whether entries of this type carry a positive delta.
// used and expired entries always record a decrease.
func (t PointEventType) IsCredit() bool {
	return t == PointEventTypeEarned || t == PointEventTypeBonus
}

// ParsePointEventType converts raw input into a PointEventType.
func ParsePointEventType(value string) (PointEventType, error) {
	for _, candidate := range validPointEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid point event type %q", value)
}
