/*
Package workers sizes the pool that processes media files within an album.

Counts are derived from runtime.GOMAXPROCS rather than runtime.NumCPU, so a
container CPU limit is honoured:

	// one worker per available CPU, at most 8
	n := workers.ForCPU(8)

	// value of --jobs; 0 means one per CPU
	n := workers.Jobs(jobs)

# Environment Variable Override

The automatic calculation can be replaced by setting GENERATE_ALBUM_WORKERS
to a positive integer. An explicit --jobs value always wins over it.
*/
package workers
