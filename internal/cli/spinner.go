package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle shown while a slow step,
// such as an SVG render, is in flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on stderr until Stop is called or the parent
// context is cancelled, whichever comes first. The line is cleared on exit
// so subsequent output starts at the left margin.
type Spinner struct {
	message  string
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

func newSpinner(ctx context.Context, message string) *Spinner {
	spCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		ctx:      spCtx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start launches the animation goroutine. Stop must be called afterwards,
// even when the context has already been cancelled.
func (s *Spinner) Start() {
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation, waits for the goroutine to exit, and clears the
// line. Calling Stop again is a no-op.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.finished
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
