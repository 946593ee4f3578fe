package runlog

import "time"

const timeLayout = "2006-01-02T15:04:05.000Z"

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func asDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
