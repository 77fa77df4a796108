// Package logging provides leveled logging for generate-album.
//
// Messages go to the standard logger with a level prefix:
//   - DEBUG: per-file decisions such as metadata sources and skipped outputs
//   - INFO: progress per gallery and album
//   - WARN: unreadable media and ignored configuration keys
//   - ERROR: albums or galleries that failed
//   - FATAL: errors that terminate the process
//
// The initial level comes from the DEBUG and LOG_LEVEL environment
// variables and can be replaced with SetLevel.
package logging
