// Package config reads gallery.toml and album.toml files.
//
// A gallery directory holds gallery.toml plus one subdirectory per album,
// each with its own album.toml. Album settings start as a copy of the
// gallery settings; every key present in album.toml replaces the inherited
// value. The title, output_directory and hash_value keys belong to a single
// directory and are never inherited.
//
// Missing settings files are reported as ErrNoSettings, which callers treat
// as "skip this directory". Any other problem (TOML syntax, wrong types,
// out-of-range values) is returned as an *Error naming the file and key.
package config
