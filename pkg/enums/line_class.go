package enums

import "fmt"

// LineClass tags an expanded sales line with its resolution outcome.
type LineClass string

const (
	LineClassSingle         LineClass = "Single"
	LineClassComboComponent LineClass = "Combo_Component"
	LineClassUnknown        LineClass = "Unknown"
)

var validLineClasses = []LineClass{
	LineClassSingle,
	LineClassComboComponent,
	LineClassUnknown,
}

// String implements fmt.Stringer.
func (c LineClass) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LineClass.
func (c LineClass) IsValid() bool {
	for _, candidate := range validLineClasses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLineClass converts raw input into a LineClass.
func ParseLineClass(value string) (LineClass, error) {
	for _, candidate := range validLineClasses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line class %q", value)
}
