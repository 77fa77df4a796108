package metadata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GPSCoordinates is a position in signed decimal degrees together with the
// hemisphere references it was recorded with.
type GPSCoordinates struct {
	Latitude     float64
	Longitude    float64
	LatitudeRef  string
	LongitudeRef string
}

// String renders the position in degrees, minutes and seconds, for example
// 41° 24' 30.50" N 2° 10' 26.50" E.
func (g GPSCoordinates) String() string {
	return fmt.Sprintf("%s %s %s %s",
		formatDMS(math.Abs(g.Latitude)), g.LatitudeRef,
		formatDMS(math.Abs(g.Longitude)), g.LongitudeRef)
}

func formatDMS(degrees float64) string {
	d := math.Trunc(degrees)
	rest := (degrees - d) * 60
	m := math.Trunc(rest)
	s := (rest - m) * 60
	return fmt.Sprintf("%d° %d' %.2f\"", int(d), int(m), s)
}

// parseGPSPart parses a rational such as 3050/100 or a plain decimal.
func parseGPSPart(part string) (float64, error) {
	num, den, isRational := strings.Cut(part, "/")
	if !isRational {
		return strconv.ParseFloat(part, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, fmt.Errorf("zero denominator in %q", part)
	}
	return n / d, nil
}

// parseDegrees accepts one to three space separated components: degrees,
// minutes and seconds.
func parseDegrees(value string) (float64, error) {
	parts := strings.Fields(value)
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("expected 1 to 3 components, got %q", value)
	}
	var total float64
	scale := 1.0
	for i, part := range parts {
		v, err := parseGPSPart(part)
		if err != nil {
			return 0, err
		}
		if i > 0 && v < 0 {
			return 0, fmt.Errorf("negative component in %q", value)
		}
		total += v / scale
		scale *= 60
	}
	return total, nil
}

func signedDegrees(value, ref, positive, negative string) (float64, string, error) {
	deg, err := parseDegrees(value)
	if err != nil {
		return 0, "", err
	}
	ref = strings.ToUpper(strings.TrimSpace(ref))
	switch {
	case strings.HasPrefix(ref, positive):
		return math.Abs(deg), positive, nil
	case strings.HasPrefix(ref, negative):
		return -math.Abs(deg), negative, nil
	default:
		return 0, "", fmt.Errorf("unknown reference %q", ref)
	}
}

// gpsFromTags returns the position when all four GPS tags are present and
// parse cleanly.
func gpsFromTags(t Tags) *GPSCoordinates {
	if !t.Has(TagGPSLatitude, TagGPSLatitudeRef, TagGPSLongitude, TagGPSLongitudeRef) {
		return nil
	}
	lat, latRef, err := signedDegrees(t[TagGPSLatitude], t[TagGPSLatitudeRef], "N", "S")
	if err != nil || math.Abs(lat) > 90 {
		return nil
	}
	lon, lonRef, err := signedDegrees(t[TagGPSLongitude], t[TagGPSLongitudeRef], "E", "W")
	if err != nil || math.Abs(lon) > 180 {
		return nil
	}
	return &GPSCoordinates{
		Latitude:     lat,
		Longitude:    lon,
		LatitudeRef:  latRef,
		LongitudeRef: lonRef,
	}
}

// parseXMPCoordinate converts an XMP GPSCoordinate ("41,24.5083N" or
// "41,24,30.5N") or a signed decimal into space separated components and a
// reference letter.
func parseXMPCoordinate(value, positive, negative string) (string, string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", false
	}

	last := strings.ToUpper(value[len(value)-1:])
	if last == positive || last == negative {
		parts := strings.Split(value[:len(value)-1], ",")
		if len(parts) > 3 {
			return "", "", false
		}
		for _, p := range parts {
			if _, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
				return "", "", false
			}
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return strings.Join(parts, " "), last, true
	}

	deg, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", "", false
	}
	ref := positive
	if deg < 0 {
		ref = negative
	}
	return strconv.FormatFloat(math.Abs(deg), 'f', -1, 64), ref, true
}
