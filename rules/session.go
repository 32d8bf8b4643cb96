package rules

// Session owns one game and its latest frame for a single driver. It is not
// safe for concurrent use; callers serialize ticks.
type Session struct {
	game  *Game
	frame *Frame
}

// NewSession creates a game and holds its initial frame.
func NewSession(cfg Config) (*Session, error) {
	game, frame, err := CreateInitialGame(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{game: game, frame: frame}, nil
}

// ResumeSession continues a stored game from its last frame.
func ResumeSession(game *Game, last *Frame) *Session {
	return &Session{game: game, frame: last.Clone()}
}

// Game returns the session's game record.
func (s *Session) Game() *Game {
	return s.game
}

// Advance plays one tick. A frame produced alongside ErrBoardFull is kept so
// the final position can still be shown.
func (s *Session) Advance(move Direction) (MoveOutcome, error) {
	next, outcome, err := GameTick(s.game, s.frame, move)
	if next != nil {
		s.frame = next
	}
	if CheckForGameOver(s.frame) {
		s.game.Status = GameStatusComplete
	}
	return outcome, err
}

// Snapshot returns a copy of the current frame.
func (s *Session) Snapshot() *Frame {
	return s.frame.Clone()
}

// OrientationOf resolves an occupied cell of the current frame.
func (s *Session) OrientationOf(p Point) (Segment, bool) {
	return OrientationOf(s.frame, p)
}

// Segments resolves every occupied cell of the current frame.
func (s *Session) Segments() []Segment {
	return Segments(s.frame)
}
