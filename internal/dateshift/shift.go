// Package dateshift implements calendar-exact day offsets for DICOM
// date (DA) and date-time (DT) values.
package dateshift

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// ShiftDate shifts a DA value (YYYYMMDD) by the given number of days.
// The value must be exactly eight digits and name a real calendar date;
// anything else is an error.
func ShiftDate(value string, days int) (string, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return "", fmt.Errorf("could not parse date %q: %w", value, err)
	}
	return t.AddDate(0, 0, days).Format(dateLayout), nil
}

// ShiftDateTime shifts the YYYYMMDDHHMMSS prefix of a DT value by the
// given number of days. Whatever follows the first fourteen characters
// (fractional seconds, UTC offset) is carried over byte for byte.
func ShiftDateTime(value string, days int) (string, error) {
	if len(value) < len(dateTimeLayout) {
		return "", fmt.Errorf("date-time %q is shorter than %d characters", value, len(dateTimeLayout))
	}
	prefix, suffix := value[:len(dateTimeLayout)], value[len(dateTimeLayout):]
	t, err := time.Parse(dateTimeLayout, prefix)
	if err != nil {
		return "", fmt.Errorf("could not parse date-time %q: %w", value, err)
	}
	return t.AddDate(0, 0, days).Format(dateTimeLayout) + suffix, nil
}
