package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	tm "github.com/buger/goterm"
	"golang.org/x/term"
)

// Stats counts the outcome of an album's files.
type Stats struct {
	Processed int
	Unchanged int
	Skipped   int
}

// Reporter draws a single, continuously rewritten status line per album.
// A disabled Reporter does nothing, which keeps piped output and parallel
// runs free of control sequences.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	width   int
}

// New returns a Reporter writing to stdout when it is a terminal and
// enabled is set.
func New(enabled bool) *Reporter {
	return NewWriter(os.Stdout, enabled && IsTerminal(os.Stdout))
}

// NewWriter returns a Reporter writing to w without checking for a terminal.
func NewWriter(w io.Writer, enabled bool) *Reporter {
	width := 0
	if enabled {
		width = tm.Width()
	}
	return &Reporter{out: w, enabled: enabled, width: width}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether the reporter writes anything.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Update shows that file number done of total in album is being processed.
func (r *Reporter) Update(album string, done, total int, file string) {
	if !r.Enabled() {
		return
	}
	line := fmt.Sprintf("%s [%d/%d] %s", tm.Bold(album), done, total, file)
	r.rewrite(line)
}

// Finish replaces the status line with the album summary.
func (r *Reporter) Finish(album string, stats Stats, err error) {
	if !r.Enabled() {
		return
	}
	status := tm.Color("done", tm.GREEN)
	if err != nil {
		status = tm.Color("failed", tm.RED)
	}
	summary := fmt.Sprintf("%d processed / %d unchanged / %d skipped", stats.Processed, stats.Unchanged, stats.Skipped)
	r.rewrite(fmt.Sprintf("%s %s %s", tm.Bold(album), status, tm.Color(summary, tm.YELLOW)))

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out)
}

func (r *Reporter) rewrite(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width > 0 {
		line = truncate(line, r.width)
	}
	// carriage return, then erase to end of line
	fmt.Fprintf(r.out, "\r\033[K%s", line)
}

// truncate shortens line to width runes. Escape sequences count towards
// the width, so coloured lines are cut a little early.
func truncate(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…" + resetColor
}

const resetColor = "\033[0m"
