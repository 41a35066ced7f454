package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"github.com/g5becks/docsect/internal/manifest"
)

const renderPollInterval = 10 * time.Millisecond

func NewProgressWriter() progress.Writer {
	writer := progress.NewWriter()
	writer.SetAutoStop(false)
	writer.SetTrackerLength(30)
	writer.SetStyle(progress.StyleBlocks)
	writer.Style().Visibility.ETA = true
	writer.Style().Visibility.Value = true

	return writer
}

// ProgressPrinter shows one progress bar per source while a manifest is
// generated. Call Stop once generation returns.
type ProgressPrinter struct {
	pw       progress.Writer
	mu       sync.Mutex
	trackers map[string]*progress.Tracker
	failed   map[string]int
}

func NewProgressPrinter(w io.Writer) *ProgressPrinter {
	pw := NewProgressWriter()
	pw.SetOutputWriter(w)

	p := &ProgressPrinter{
		pw:       pw,
		trackers: make(map[string]*progress.Tracker),
		failed:   make(map[string]int),
	}
	go pw.Render()
	for !pw.IsRenderInProgress() {
		time.Sleep(renderPollInterval)
	}

	return p
}

func (p *ProgressPrinter) HandleEvent(e manifest.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case manifest.EventSourceStart:
		tracker := &progress.Tracker{
			Message: e.Source,
			Total:   int64(e.Files),
			Units:   progress.UnitsDefault,
		}
		p.trackers[e.Source] = tracker
		p.pw.AppendTracker(tracker)
		if e.Files == 0 {
			tracker.MarkAsDone()
		}

	case manifest.EventFileDone:
		p.advance(e.Source, false)

	case manifest.EventFileFailed:
		p.advance(e.Source, true)
	}
}

func (p *ProgressPrinter) advance(source string, failed bool) {
	tracker, ok := p.trackers[source]
	if !ok {
		return
	}

	if failed {
		p.failed[source]++
		tracker.UpdateMessage(fmt.Sprintf("%s (%d failed)", source, p.failed[source]))
	}
	tracker.Increment(1)

	if tracker.Value() >= tracker.Total {
		tracker.MarkAsDone()
	}
}

// Stop marks every tracker done and waits for the final render.
func (p *ProgressPrinter) Stop() {
	p.mu.Lock()
	for _, tracker := range p.trackers {
		if !tracker.IsDone() {
			tracker.MarkAsDone()
		}
	}
	p.mu.Unlock()

	p.pw.Stop()
	for p.pw.IsRenderInProgress() {
		time.Sleep(renderPollInterval)
	}
}
