// Package outdir derives album output directories.
//
// Unless an album names its output directory explicitly, the directory is the
// lowercase hex SHA-256 of the album's hash_value, or of the album
// directory's base name when hash_value is unset. The result is stable across
// runs as long as those inputs do not change.
package outdir

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Hash returns the hex encoded SHA-256 of value.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Resolve returns the output directory for an album.
//
// explicit is the configured output_directory (blank means unset),
// hashValue the configured hash_value and dirName the album directory's base
// name. With appendHash set and an explicit directory, the hash is appended
// to the explicit name.
func Resolve(explicit, hashValue, dirName string, appendHash bool) string {
	explicit = strings.TrimSpace(explicit)
	input := dirName
	if hashValue != "" {
		input = hashValue
	}

	switch {
	case explicit == "":
		return Hash(input)
	case appendHash:
		return explicit + Hash(input)
	default:
		return explicit
	}
}

// Join places dir under base unless dir is absolute.
func Join(base, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

// IsListed reports whether an album with this output directory may appear in
// the gallery index. Albums written to absolute paths live outside the
// gallery and are never linked from it.
func IsListed(dir string) bool {
	return !filepath.IsAbs(dir)
}

// Href returns the gallery-relative link to an album's index page.
func Href(dir string) string {
	return filepath.ToSlash(dir) + "/index.html"
}
