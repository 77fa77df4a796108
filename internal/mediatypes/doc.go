// Package mediatypes classifies album files by extension.
//
// It has no dependencies beyond the standard library so that the config,
// metadata and media packages can all import it without cycles.
//
// # File Types
//
//	mediatypes.FileTypeImage // bmp, gif, jfif, jpeg, jpg, png, tif, tiff, webp
//	mediatypes.FileTypeVideo // 3gp, avi, m4v, mp4, mkv, mov, mpeg, mpg, webm, wmv
//	mediatypes.FileTypeOther // everything else, including .xmp sidecars
//
// Matching is case-insensitive when going through TypeOf:
//
//	switch mediatypes.TypeOf(entry.Name()) {
//	case mediatypes.FileTypeImage:
//	    // resize and thumbnail
//	case mediatypes.FileTypeVideo:
//	    // copy, metadata from mediatypes.SidecarPath(path)
//	}
package mediatypes
