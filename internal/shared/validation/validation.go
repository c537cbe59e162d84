package validation

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var uuidRegex = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// ValidateCoordinates validates latitude and longitude values
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateUUID validates that a string is a valid UUID
func ValidateUUID(id string) error {
	if !uuidRegex.MatchString(id) {
		return errors.New("invalid UUID format")
	}
	return nil
}

// ValidateTimezone validates that a string is a loadable IANA timezone identifier
func ValidateTimezone(tz string) error {
	if tz == "" {
		return errors.New("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone identifier: %s", tz)
	}
	return nil
}

// ValidateStringNotEmpty validates that a string is not empty
func ValidateStringNotEmpty(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveInt validates that an int is positive
func ValidatePositiveInt(value int, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ValidateCalendarDays validates the day-window parameter for the activity calendar
func ValidateCalendarDays(days int) error {
	if days < 1 {
		return errors.New("days must be >= 1")
	}
	if days > 366 {
		return errors.New("days must be <= 366")
	}
	return nil
}
