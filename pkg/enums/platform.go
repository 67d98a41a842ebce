package enums

import "fmt"

// Platform identifies the marketplace a sales export came from.
type Platform string

const (
	PlatformAmazon   Platform = "Amazon"
	PlatformFlipkart Platform = "Flipkart"
	PlatformMeesho   Platform = "Meesho"
	// PlatformUnknown is a valid detection result, not a failure.
	PlatformUnknown Platform = "Unknown"
)

var validPlatforms = []Platform{
	PlatformAmazon,
	PlatformFlipkart,
	PlatformMeesho,
	PlatformUnknown,
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Platform.
func (p Platform) IsValid() bool {
	for _, candidate := range validPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlatform converts raw input into a Platform.
func ParsePlatform(value string) (Platform, error) {
	for _, candidate := range validPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q", value)
}
