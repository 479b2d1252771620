package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger writing to w at the given level.
// Timestamps carry hundredths of a second so scan and build timings stay
// readable next to the progress messages.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one long-running step, typically a workspace scan or a
// graph build, and reports the elapsed time when the step finishes. It is
// meant for a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock for one step.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message with the elapsed time appended, rounded
// to milliseconds, e.g. "Built dependency graph for 12 packages (84ms)".
func (p *progress) done(format string, args ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof(format+" (%s)", append(args, elapsed)...)
}

// ctxKey guards the context values owned by this package against
// collisions with other packages.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to the context for retrieval by subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger. When no
// logger was attached it falls back to log.Default(), so commands always
// have a usable logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
