// Package memory bounds the Go heap of a generate-album run.
//
// Decoding a full-size photo takes tens of megabytes, and --jobs multiplies
// that by the number of albums in flight. When the run is confined by a
// container or a cron job memory limit, set GENERATE_ALBUM_MEMORY_LIMIT
// (for example 2GiB) and the garbage collector keeps the heap below
// GENERATE_ALBUM_MEMORY_RATIO of it (default 0.85). The remainder is left to
// ffmpeg, exiftool and libvips.
//
// An explicit GOMEMLIMIT always wins.
package memory
