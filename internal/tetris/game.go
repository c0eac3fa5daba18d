// Package tetris holds the falling-block rules: the piece catalog, the well,
// and the session state machine that moves pieces, locks them, clears lines
// and keeps score. It does no I/O; callers drive it from a timer and input.
package tetris

import "time"

type State int

const (
	Running State = iota
	Paused
	Over
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Result describes what a single operation did. A zero Result means the call
// was rejected or ignored.
type Result struct {
	Moved       bool
	Rotated     bool
	Held        bool
	Locked      bool
	Dropped     int
	ClearedRows []int
	Cleared     int
	ScoreDelta  int
	LevelUp     bool
	GameOver    bool
}

// Game is one play session. It is not safe for concurrent use; every
// operation runs to completion before the next one starts.
type Game struct {
	board   *Board
	current Piece
	next    Piece
	held    Piece
	hasHeld bool
	canHold bool
	score   int
	level   int
	lines   int
	state   State
	source  KindSource

	done       chan int
	doneClosed bool
}

// NewGame returns a running session. A nil source draws kinds uniformly at
// random.
func NewGame(source KindSource) *Game {
	if source == nil {
		source = RandomKinds(nil)
	}
	g := &Game{
		board:  NewBoard(Rows, Cols),
		source: source,
	}
	g.Start()
	return g
}

// Start resets the session and begins a new game. A pending Done channel
// from the previous game is closed.
func (g *Game) Start() {
	g.board.Reset()
	g.score = 0
	g.level = 1
	g.lines = 0
	g.held = Piece{}
	g.hasHeld = false
	g.canHold = true
	g.current = g.spawn()
	g.next = g.spawn()
	g.state = Running
	g.closeDone()
	g.done = make(chan int, 1)
	g.doneClosed = false
}

func (g *Game) TogglePause() {
	switch g.state {
	case Running:
		g.state = Paused
	case Paused:
		g.state = Running
	}
}

// Tick is one step of gravity.
func (g *Game) Tick() Result {
	if g.state != Running {
		return Result{}
	}
	return g.Move(0, 1)
}

// Move shifts the current piece. A blocked downward move locks the piece
// where it is.
func (g *Game) Move(dx, dy int) Result {
	if g.state != Running {
		return Result{}
	}
	candidate := g.current.Translate(dx, dy)
	if !g.collides(candidate) {
		g.current = candidate
		return Result{Moved: true}
	}
	if dy > 0 {
		return g.lockCurrent()
	}
	return Result{}
}

// Rotate turns the current piece clockwise in place. There are no wall
// kicks: a colliding rotation is dropped.
func (g *Game) Rotate() Result {
	if g.state != Running {
		return Result{}
	}
	candidate := g.current.Rotate()
	if g.collides(candidate) {
		return Result{}
	}
	g.current = candidate
	return Result{Rotated: true}
}

// Hold parks the current piece. The first hold pulls in the next piece;
// later holds swap with the parked one. Only one hold is allowed per spawned
// piece.
func (g *Game) Hold() Result {
	if g.state != Running || !g.canHold {
		return Result{}
	}
	outgoing := Piece{Kind: g.current.Kind, Shape: g.current.Shape}
	if !g.hasHeld {
		g.current = g.next
		g.next = g.spawn()
		g.hasHeld = true
	} else {
		g.current = Piece{Kind: g.held.Kind, Shape: g.held.Shape}
	}
	g.held = outgoing
	g.current = g.current.Recenter(g.board.Cols())
	g.canHold = false
	res := Result{Held: true}
	if g.collides(g.current) {
		g.gameOver()
		res.GameOver = true
	}
	return res
}

// QuickDrop sends the current piece straight down and locks it.
func (g *Game) QuickDrop() Result {
	if g.state != Running {
		return Result{}
	}
	dropped := 0
	for {
		candidate := g.current.Translate(0, 1)
		if g.collides(candidate) {
			break
		}
		g.current = candidate
		dropped++
	}
	res := g.lockCurrent()
	res.Dropped = dropped
	return res
}

// GhostY is the row the current piece would lock at if dropped now.
func (g *Game) GhostY() int {
	p := g.current
	for !g.collides(p.Translate(0, 1)) {
		p = p.Translate(0, 1)
	}
	return p.Y
}

func (g *Game) FallInterval() time.Duration {
	return IntervalFor(g.level)
}

func (g *Game) Board() [][]Kind { return g.board.Snapshot() }
func (g *Game) Rows() int { return g.board.Rows() }
func (g *Game) Cols() int { return g.board.Cols() }

func (g *Game) Current() Piece {
	p := g.current
	p.Shape = p.Shape.Clone()
	return p
}

// Next returns the upcoming piece. Its position carries no meaning until it
// is promoted.
func (g *Game) Next() Piece {
	return Piece{Kind: g.next.Kind, Shape: g.next.Shape.Clone()}
}

func (g *Game) Held() (Piece, bool) {
	if !g.hasHeld {
		return Piece{}, false
	}
	return Piece{Kind: g.held.Kind, Shape: g.held.Shape.Clone()}, true
}

func (g *Game) Score() int { return g.score }
func (g *Game) Level() int { return g.level }
func (g *Game) Lines() int { return g.lines }
func (g *Game) State() State { return g.state }
func (g *Game) Paused() bool { return g.state == Paused }
func (g *Game) Over() bool { return g.state == Over }
func (g *Game) CanHold() bool { return g.canHold }

// Done delivers the final score once when the game ends, then closes.
func (g *Game) Done() <-chan int { return g.done }

func (g *Game) lockCurrent() Result {
	res := Result{Locked: true}
	g.board.Lock(g.current.Kind, g.current.Cells())
	res.ClearedRows = g.board.FullRows()
	res.Cleared = g.board.ClearFullRows()
	if res.Cleared > 0 {
		before := g.level
		res.ScoreDelta = Award(res.Cleared, g.level)
		g.score += res.ScoreDelta
		g.lines += res.Cleared
		g.level = LevelFor(g.score)
		res.LevelUp = g.level > before
	}
	g.current = g.next.Recenter(g.board.Cols())
	g.next = g.spawn()
	g.canHold = true
	if g.collides(g.current) {
		g.gameOver()
		res.GameOver = true
	}
	return res
}

func (g *Game) gameOver() {
	g.state = Over
	if g.doneClosed {
		return
	}
	g.done <- g.score
	close(g.done)
	g.doneClosed = true
}

func (g *Game) closeDone() {
	if g.done != nil && !g.doneClosed {
		close(g.done)
	}
}

func (g *Game) spawn() Piece {
	return Spawn(g.source(), g.board.Cols())
}

// collides reports whether p overlaps locked cells or leaves the well.
// Cells above the top edge only collide with the side walls.
func (g *Game) collides(p Piece) bool {
	for _, c := range p.Cells() {
		if c.Y < 0 {
			if c.X < 0 || c.X >= g.board.Cols() {
				return true
			}
			continue
		}
		if g.board.IsOccupied(c.Y, c.X) {
			return true
		}
	}
	return false
}
