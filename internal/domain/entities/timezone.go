package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseAnchorZone resolves the configured anchor time zone into a
// *time.Location. It accepts:
//   - IANA names such as "Europe/Moscow"
//   - "UTC" / "GMT"
//   - fixed offsets: "UTC+3", "UTC-7", "UTC+5:30", "+3", "-03:30"
//
// Fixed offsets produce a time.FixedZone, which ignores DST.
func ParseAnchorZone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil, fmt.Errorf("anchor time zone must be set")
	}
	if strings.EqualFold(tz, "UTC") || strings.EqualFold(tz, "GMT") || strings.EqualFold(tz, "Etc/UTC") {
		return time.UTC, nil
	}

	if loc, err := time.LoadLocation(tz); err == nil {
		return loc, nil
	}

	offset, ok := parseFixedOffset(tz)
	if !ok {
		return nil, fmt.Errorf("unsupported time zone %q", tz)
	}
	return time.FixedZone(offsetZoneName(offset), offset), nil
}

// parseFixedOffset converts "+3", "-03:30", "UTC+5:30" style strings into an
// offset in seconds east of UTC.
func parseFixedOffset(tz string) (int, bool) {
	s := strings.TrimSpace(tz)
	if u := strings.ToUpper(s); strings.HasPrefix(u, "UTC") {
		s = strings.TrimSpace(s[3:])
		if s == "" {
			return 0, true
		}
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}

	hh, mm, cut := strings.Cut(s[1:], ":")
	if !cut {
		mm = "0"
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 14 || m < 0 || m >= 60 {
		return 0, false
	}

	return sign * (h*3600 + m*60), true
}

func offsetZoneName(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, (offset%3600)/60)
}
