// Package ordering decides the order in which an album shows its files.
package ordering
