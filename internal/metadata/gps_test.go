package metadata

import (
	"math"
	"testing"
)

func TestGPSFromTags(t *testing.T) {
	tests := []struct {
		name    string
		tags    Tags
		wantNil bool
		lat     float64
		lon     float64
		text    string
	}{
		{
			name: "EXIF rationals",
			tags: Tags{
				TagGPSLatitude:     "41/1 24/1 3050/100",
				TagGPSLatitudeRef:  "N",
				TagGPSLongitude:    "2/1 10/1 2650/100",
				TagGPSLongitudeRef: "E",
			},
			lat:  41.408472,
			lon:  2.174028,
			text: `41° 24' 30.50" N 2° 10' 26.50" E`,
		},
		{
			name: "southern and western hemispheres",
			tags: Tags{
				TagGPSLatitude:     "33.8568",
				TagGPSLatitudeRef:  "S",
				TagGPSLongitude:    "151.2153",
				TagGPSLongitudeRef: "W",
			},
			lat:  -33.8568,
			lon:  -151.2153,
			text: `33° 51' 24.48" S 151° 12' 55.08" W`,
		},
		{
			name: "reference missing",
			tags: Tags{
				TagGPSLatitude:    "41/1 24/1 3050/100",
				TagGPSLatitudeRef: "N",
				TagGPSLongitude:   "2/1 10/1 2650/100",
			},
			wantNil: true,
		},
		{
			name: "zero denominator",
			tags: Tags{
				TagGPSLatitude:     "41/0 24/1 3050/100",
				TagGPSLatitudeRef:  "N",
				TagGPSLongitude:    "2/1 10/1 2650/100",
				TagGPSLongitudeRef: "E",
			},
			wantNil: true,
		},
		{
			name: "garbage",
			tags: Tags{
				TagGPSLatitude:     "north-ish",
				TagGPSLatitudeRef:  "N",
				TagGPSLongitude:    "2",
				TagGPSLongitudeRef: "E",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gpsFromTags(tt.tags)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("gpsFromTags() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("gpsFromTags() = nil")
			}
			if math.Abs(got.Latitude-tt.lat) > 1e-5 || math.Abs(got.Longitude-tt.lon) > 1e-5 {
				t.Errorf("position = %f,%f; want %f,%f", got.Latitude, got.Longitude, tt.lat, tt.lon)
			}
			if s := got.String(); s != tt.text {
				t.Errorf("String() = %q, want %q", s, tt.text)
			}
		})
	}
}

func TestParseXMPCoordinate(t *testing.T) {
	tests := []struct {
		value  string
		want   string
		ref    string
		wantOK bool
	}{
		{"41,24.5083N", "41 24.5083", "N", true},
		{"41,24,30.5S", "41 24 30.5", "S", true},
		{"-33.8568", "33.8568", "S", true},
		{"151.2", "151.2", "N", true},
		{"41,x,3N", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ref, ok := parseXMPCoordinate(tt.value, "N", "S")
			if got != tt.want || ref != tt.ref || ok != tt.wantOK {
				t.Errorf("parseXMPCoordinate(%q) = %q, %q, %v; want %q, %q, %v",
					tt.value, got, ref, ok, tt.want, tt.ref, tt.wantOK)
			}
		})
	}
}
