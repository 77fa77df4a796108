// Package manifest lets repeated runs skip files whose outputs are already
// up to date.
//
// Each album output directory holds a .generate-album.json that maps source
// file names to an imohash fingerprint of the source, the Signature of the
// settings used and the names of the outputs. A file is regenerated when
// any of these differ, when an output is missing, or when --force is given.
package manifest
