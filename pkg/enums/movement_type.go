package enums

import "fmt"

// MovementType describes why a product's stock changed.
type MovementType string

const (
	MovementTypeSale       MovementType = "Sale"
	MovementTypeAdjustment MovementType = "Adjustment"
	MovementTypeRestock    MovementType = "Restock"
)

var validMovementTypes = []MovementType{
	MovementTypeSale,
	MovementTypeAdjustment,
	MovementTypeRestock,
}

// String implements fmt.Stringer.
func (m MovementType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MovementType.
func (m MovementType) IsValid() bool {
	for _, candidate := range validMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovementType converts raw input into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	for _, candidate := range validMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement type %q", value)
}
