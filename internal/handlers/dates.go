package handlers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// parseDate accepts "YYYY-MM-DD" or an empty string (no date).
func parseDate(value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", value)

	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}

	date := datatypes.Date(t)
	return &date, nil
}
