package utils

import (
	"fmt"
	"regexp"
	"time"
)

var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ParseDateOnly parse chuỗi "YYYY-MM-DD"
func ParseDateOnly(dateStr string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s", dateStr)
	}
	return t, nil
}

// IsValidTimeOfDay kiểm tra chuỗi giờ dạng "HH:MM" (24h)
func IsValidTimeOfDay(timeStr string) bool {
	return timeOfDayRegex.MatchString(timeStr)
}

// CombineDateTime ghép ngày + giờ "HH:MM" thành một mốc thời gian
func CombineDateTime(date time.Time, timeStr string) time.Time {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
