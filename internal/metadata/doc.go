// Package metadata resolves the caption, timestamp, location, GPS position
// and orientation of album files.
//
// Tag values from every source are collected into a Tags map keyed by
// exiv2-style names such as "Exif.Photo.DateTimeOriginal" or "Xmp.dc.title".
// Each attribute is then looked up with Tags.First over a fixed, ordered list
// of names, so the first present, non-blank value wins:
//
//	caption:     Xmp.dc.title, Xmp.acdsee.caption, Iptc.Application2.ObjectName
//	timestamp:   Exif.Photo.DateTimeOriginal, Exif.Image.DateTime, Exif.Photo.DateTimeDigitized
//	location:    Exif.Image.ImageDescription, Iptc.Application2.Caption, Xmp.acdsee.notes,
//	             Xmp.dc.description, Xmp.exif.UserComment, Xmp.tiff.ImageDescription
//	orientation: Exif.Image.Orientation
//
// Images are read with an embedded EXIF decoder, an embedded XMP packet
// reader and, when the exiftool binary is available, exiftool for IPTC and
// anything the pure Go readers miss. Videos are never opened; everything
// about a video comes from its FILENAME.xmp sidecar.
//
// Missing or malformed values are treated as absent. Resolve never fails.
package metadata
