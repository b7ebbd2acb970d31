package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Spinner renders an animated status line from a background goroutine.
// Start and Stop are called by the session; Update and Stop may also be
// called from a progress callback running on another goroutine.
type Spinner struct {
	out      io.Writer
	interval time.Duration
	frames   []string
	glyph    *color.Color

	mu      sync.Mutex
	label   string
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that draws on out
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{
		out:      out,
		interval: SpinnerInterval,
		frames:   SpinnerFrames,
		glyph:    color.New(color.FgBlue),
	}
}

// Start begins rendering label. Starting a running spinner is a caller error
// and is ignored.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.label = label
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(s.stop, s.done)
}

// Update replaces the label shown on the next frame
func (s *Spinner) Update(label string) {
	s.mu.Lock()
	s.label = label
	s.mu.Unlock()
}

// Running reports whether the spinner is drawing
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop signals the rendering goroutine and waits until it has exited and the
// cursor is restored. It is a no-op on a spinner that was never started.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	if done == nil {
		s.mu.Unlock()
		return
	}
	if s.running {
		s.running = false
		close(s.stop)
	}
	s.mu.Unlock()

	<-done
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	fmt.Fprint(s.out, HideCursor)
	defer fmt.Fprint(s.out, "\r"+ClearLine+ShowCursor)

	for frame := 0; ; frame++ {
		s.draw(frame)
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw(frame int) {
	s.mu.Lock()
	label := s.label
	s.mu.Unlock()

	glyph := s.frames[frame%len(s.frames)]
	fmt.Fprintf(s.out, "\r%s %s...  ", s.glyph.Sprint(glyph), label)
}
