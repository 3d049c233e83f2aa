package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status on w until stopped or until its context
// ends. The message may change while it runs, e.g. to report carved cells.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	shown   int // runes on the terminal line, for clearing
	frame   int

	once    sync.Once
	stopped chan struct{}
}

// newSpinner creates a spinner writing to w. Call Start to show it.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation in a new goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw()
			}
		}
	}()
}

// SetMessage replaces the status text from the next frame on.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// Progress reports generation progress. It matches the pipeline progress
// callback signature.
func (s *Spinner) Progress(visited, total int) {
	pct := 0
	if total > 0 {
		pct = visited * 100 / total
	}
	s.SetMessage(fmt.Sprintf("Carving %d/%d cells (%d%%)", visited, total, pct))
}

// Stop ends the animation and clears the line. It is safe to call more than
// once and blocks until Start's goroutine has exited.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

func (s *Spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	s.frame++
	pad := ""
	if n := utf8.RuneCountInString(s.message); n < s.shown {
		pad = strings.Repeat(" ", s.shown-n)
	}
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), pad)
	s.shown = max(s.shown, utf8.RuneCountInString(s.message))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shown == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.shown+2))
	s.shown = 0
}
