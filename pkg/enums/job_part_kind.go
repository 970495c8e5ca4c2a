package enums

import "fmt"

// JobPartKind distinguishes inventory-backed line items from custom
// (non-inventory) ones. Only inventory items touch stock.
type JobPartKind string

const (
	JobPartKindInventory JobPartKind = "inventory"
	JobPartKindCustom    JobPartKind = "custom"
)

var validJobPartKinds = []JobPartKind{
	JobPartKindInventory,
	JobPartKindCustom,
}

// String implements fmt.Stringer.
func (k JobPartKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known JobPartKind.
func (k JobPartKind) IsValid() bool {
	for _, candidate := range validJobPartKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseJobPartKind converts raw input into a JobPartKind.
func ParseJobPartKind(value string) (JobPartKind, error) {
	for _, candidate := range validJobPartKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job part kind %q", value)
}
