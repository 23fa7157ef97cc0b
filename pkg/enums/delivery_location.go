package enums

import "fmt"

// DeliveryLocation distinguishes on-campus deliveries from outside ones.
// The wire values match what the front-end sends ("emsi" for on-campus,
// "outside" for anywhere else).
type DeliveryLocation string

const (
	DeliveryLocationCampus  DeliveryLocation = "emsi"
	DeliveryLocationOutside DeliveryLocation = "outside"
)

var validDeliveryLocations = []DeliveryLocation{
	DeliveryLocationCampus,
	DeliveryLocationOutside,
}

// String implements fmt.Stringer.
func (d DeliveryLocation) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryLocation.
func (d DeliveryLocation) IsValid() bool {
	for _, candidate := range validDeliveryLocations {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeliveryLocation converts raw input into a DeliveryLocation.
func ParseDeliveryLocation(value string) (DeliveryLocation, error) {
	for _, candidate := range validDeliveryLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery location %q", value)
}
