// Package progress prints a per-album status line on interactive terminals.
package progress
