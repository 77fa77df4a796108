// Package render writes the static HTML of album and gallery indexes.
//
// Templates are embedded in the binary and executed with html/template, so
// captions, locations and file names are escaped for the context they
// appear in. An album lists thumbnails in a navigation column linking to
// #file-N anchors; each file shows its caption, capture date and a map
// link for its location.
package render
