package game

// State is the phase of a play session.
type State uint8

const (
	StateTitle State = iota
	StateIntro
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// IntroPages is the story shown before the first game.
var IntroPages = []string{
	"Ben 'Big' Bang - your oldest brother - has just created the Universe.\nSoon galaxies will spawn and fill the void",
	"Your older sister Gravity is already playing with the new toys,\nand so everything is very attracted to each other.",
	"Your task will be to push the spacetime itself apart\nand make room for new galaxies.",
}

// Session moves between the title screen, the intro and the game.
// The intro is shown once per Session.
type Session struct {
	universe  *Universe
	state     State
	page      int
	introSeen bool
	last      *Result
}

// NewSession creates a session on the title screen.
func NewSession(u *Universe) *Session {
	return &Session{universe: u}
}

// Start leaves the title screen. It is ignored in any other state.
func (s *Session) Start() bool {
	if s.state != StateTitle {
		return false
	}
	if !s.introSeen && len(IntroPages) > 0 {
		s.state = StateIntro
		s.page = 0
		return true
	}
	s.play()
	return true
}

// PointerReleased advances the intro by one page.
func (s *Session) PointerReleased() {
	if s.state != StateIntro {
		return
	}
	s.page++
	if s.page >= len(IntroPages) {
		s.introSeen = true
		s.play()
	}
}

// SkipIntro marks the intro as already seen.
func (s *Session) SkipIntro() {
	s.introSeen = true
}

func (s *Session) play() {
	s.universe.Reset()
	s.state = StatePlaying
}

// Stop ends the game and returns to the title screen.
func (s *Session) Stop() {
	s.universe.Reset()
	s.state = StateTitle
	s.page = 0
}

// Finish records the result of a completed game and stops it.
func (s *Session) Finish(res Result) {
	s.last = &res
	s.Stop()
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Page returns the intro page index.
func (s *Session) Page() int { return s.page }

// IntroText returns the current intro page, or "" outside the intro.
func (s *Session) IntroText() string {
	if s.state != StateIntro || s.page >= len(IntroPages) {
		return ""
	}
	return IntroPages[s.page]
}

// LastResult returns the result of the last completed game, if any.
func (s *Session) LastResult() (Result, bool) {
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Universe returns the universe driven by this session.
func (s *Session) Universe() *Universe { return s.universe }
