package utils

import "time"

// East Africa Time (+03:00), the timezone of every tenant we serve.
var eatLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Africa/Mogadishu"); err == nil {
		return loc
	}
	return time.FixedZone("EAT", 3*3600)
}()

func NowEAT() time.Time { return time.Now().In(eatLoc) }

// FormatEAT renders a timestamp for notifications and API responses.
// Returns "" for zero/nil-ish times so callers can omit the field.
func FormatEAT(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(eatLoc).Format(time.RFC3339)
}

func FormatEATPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatEAT(*t)
}
