package common

import (
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

func GetKeysStringMap(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys

}

const dateLayout = "2006-01-02"

// ParseDateWindow parses the from/to query dates. The returned end is
// exclusive: the day after to, so the final day is fully included.
func ParseDateWindow(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", from, err)
	}

	lastDay, err := time.Parse(dateLayout, to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	end := lastDay.AddDate(0, 0, 1)
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %q precedes from date %q", to, from)
	}

	return start, end, nil
}
