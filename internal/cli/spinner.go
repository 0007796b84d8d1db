package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/autogrid/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on w while a layout or render runs. Once
// tracking, the line follows the pipeline stage and the grid's passes.
type spinner struct {
	w   io.Writer
	out printer
	ctx context.Context

	mu      sync.Mutex
	message string
	drawn   int // display width of the last frame, for clearing

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
	started bool
}

func newSpinner(ctx context.Context, w io.Writer, out printer, message string) *spinner {
	return &spinner{
		w:       w,
		out:     out,
		ctx:     ctx,
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. The spinner stops on its own when ctx is done.
func (s *spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := markSpin.Render(frame) + " " + StyleDim.Render(s.message)
	fmt.Fprintf(s.w, "\r%s", line)
	s.drawn = max(s.drawn, len(s.message)+2)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.drawn))
	}
}

// SetMessage replaces the text shown next to the spinner.
func (s *spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the current spinner text.
func (s *spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.clear()
	})
}

// StopWithSuccess stops the spinner and reports msg on the command output.
func (s *spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	s.out.success(format, args...)
}

// StopWithError stops the spinner and reports msg as a failure.
func (s *spinner) StopWithError(format string, args ...any) {
	s.Stop()
	s.out.failure(format, args...)
}

// track points the global grid and pipeline hooks at the spinner until the
// returned func restores the previous hooks.
func (s *spinner) track() (restore func()) {
	prevGrid, prevPipeline := observability.Grid(), observability.Pipeline()
	h := spinnerHooks{s: s}
	observability.SetGridHooks(h)
	observability.SetPipelineHooks(h)
	return func() {
		observability.SetGridHooks(prevGrid)
		observability.SetPipelineHooks(prevPipeline)
	}
}

// spinnerHooks turns pipeline and grid events into spinner messages.
type spinnerHooks struct {
	observability.NoopGridHooks
	observability.NoopPipelineHooks
	s *spinner
}

func (h spinnerHooks) OnLayoutStart(_ context.Context, board string, cells int) {
	h.s.SetMessage(fmt.Sprintf("Laying out %s (%d cells)...", board, cells))
}

func (h spinnerHooks) OnRestart(_ context.Context, from, to float64) {
	h.s.SetMessage(fmt.Sprintf("Width moved %gpx → %gpx, restarting pass...", from, to))
}

func (h spinnerHooks) OnPass(_ context.Context, columns, blocks, _ int, _ time.Duration) {
	h.s.SetMessage(fmt.Sprintf("Placed %d cells in %d columns", blocks, columns))
}

func (h spinnerHooks) OnRenderStart(_ context.Context, format string) {
	h.s.SetMessage(fmt.Sprintf("Rendering %s...", format))
}
