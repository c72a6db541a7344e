package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// endlessSource always has another event ready.
type endlessSource struct{}

func (endlessSource) PollEvent() tcell.Event { return tcell.NewEventInterrupt(nil) }

// finishedSource behaves like a finalised screen.
type finishedSource struct{}

func (finishedSource) PollEvent() tcell.Event { return nil }

func TestPollEventsReturnsWhenDone(t *testing.T) {
	events := make(chan tcell.Event, 4)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		pollEvents(endlessSource{}, events, done)
		close(finished)
	}()

	// Nobody drains events, so the poller fills the buffer and waits.
	deadline := time.After(2 * time.Second)
	for len(events) < cap(events) {
		select {
		case <-deadline:
			t.Fatalf("buffer holds %d events, want %d", len(events), cap(events))
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents still blocked after done was closed")
	}
}

func TestPollEventsReturnsOnFinalisedScreen(t *testing.T) {
	finished := make(chan struct{})
	go func() {
		pollEvents(finishedSource{}, make(chan tcell.Event), make(chan struct{}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents did not return on a nil event")
	}
}
