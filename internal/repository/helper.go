package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the formats stored by the various tables: bare dates,
// RFC3339, and the SQLite datetime default with or without fractional seconds.
var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTime parses a stored date/datetime string in any supported layout.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
