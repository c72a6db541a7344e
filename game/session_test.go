package game

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/lambda/config"
)

func newTestSession() *Session {
	u := NewUniverse(config.Default(), planeCaster{w: 100, h: 100}, rand.New(rand.NewSource(1)))
	return NewSession(u)
}

func TestSessionIntroThenPlay(t *testing.T) {
	s := newTestSession()
	if s.State() != StateTitle {
		t.Fatalf("initial state = %v, want title", s.State())
	}

	// Releases on the title screen do nothing
	s.PointerReleased()
	if s.State() != StateTitle {
		t.Fatalf("state = %v after stray release", s.State())
	}

	if !s.Start() {
		t.Fatal("Start from title should be accepted")
	}
	for page := range IntroPages {
		if s.State() != StateIntro || s.Page() != page {
			t.Fatalf("state = %v page = %d, want intro page %d", s.State(), s.Page(), page)
		}
		if s.IntroText() != IntroPages[page] {
			t.Errorf("IntroText = %q", s.IntroText())
		}
		if s.Start() {
			t.Error("Start should be ignored during the intro")
		}
		s.PointerReleased()
	}

	if s.State() != StatePlaying {
		t.Fatalf("state = %v after intro, want playing", s.State())
	}
	if s.IntroText() != "" {
		t.Error("no intro text while playing")
	}
	if s.Start() {
		t.Error("Start should be ignored while playing")
	}
}

func TestSessionIntroShownOnce(t *testing.T) {
	s := newTestSession()
	s.Start()
	for range IntroPages {
		s.PointerReleased()
	}
	s.Stop()
	if s.State() != StateTitle {
		t.Fatalf("state = %v after Stop, want title", s.State())
	}

	s.Start()
	if s.State() != StatePlaying {
		t.Errorf("second Start went to %v, want playing", s.State())
	}
}

func TestSessionSkipIntro(t *testing.T) {
	s := newTestSession()
	s.SkipIntro()
	s.Start()
	if s.State() != StatePlaying {
		t.Errorf("state = %v, want playing", s.State())
	}
}

func TestSessionStopResetsUniverse(t *testing.T) {
	s := newTestSession()
	s.SkipIntro()
	s.Start()

	u := s.Universe()
	u.placeGalaxy(r3.Vec{}, 1)
	if u.Count() != 1 {
		t.Fatal("setup failed")
	}

	s.Stop()
	if u.Count() != 0 {
		t.Errorf("Count = %d after Stop, want 0", u.Count())
	}
}

func TestSessionFinishKeepsResult(t *testing.T) {
	s := newTestSession()
	if _, ok := s.LastResult(); ok {
		t.Fatal("no result before any game")
	}
	s.SkipIntro()
	s.Start()
	s.Finish(Result{Score: 12, MaxBodies: 5})

	res, ok := s.LastResult()
	if !ok || res.Score != 12 || res.MaxBodies != 5 {
		t.Errorf("LastResult = %+v, %v", res, ok)
	}
	if s.State() != StateTitle {
		t.Errorf("state = %v, want title", s.State())
	}
}
