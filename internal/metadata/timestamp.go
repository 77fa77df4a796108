package metadata

import (
	"regexp"
	"strings"
	"time"

	"github.com/bradfitz/latlong"
)

var (
	reDateHasColons  = regexp.MustCompile(`^\d{4}:\d{2}:\d{2}`)
	reEndsWithOffset = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
)

// Accepted forms once EXIF colons in the date are replaced. Fractional
// seconds are accepted after any seconds field.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interprets an EXIF or XMP date. Values without a UTC offset
// are read in zone when it is non-nil, otherwise at defaultOffset (±HH:MM).
func ParseTimestamp(value, defaultOffset string, zone *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	if reDateHasColons.MatchString(v) {
		v = strings.Replace(v, ":", "-", 2)
	}
	if strings.HasSuffix(v, "Z") {
		v = strings.TrimSuffix(v, "Z") + "+00:00"
	}

	if !reEndsWithOffset.MatchString(v) {
		if zone != nil {
			for _, layout := range timestampLayouts {
				if t, err := time.ParseInLocation(layout, v, zone); err == nil {
					return t, true
				}
			}
			return time.Time{}, false
		}
		v += defaultOffset
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout+"-07:00", v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// zoneAt returns the IANA time zone at a position, or nil when the position
// is at sea or the zone database lacks the name.
func zoneAt(gps *GPSCoordinates) *time.Location {
	if gps == nil {
		return nil
	}
	name := latlong.LookupZoneName(gps.Latitude, gps.Longitude)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}
