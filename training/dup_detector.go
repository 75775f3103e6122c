package training

import "github.com/alphabeth/c4zero/game"

// DupDetector flags self-play games that repeat an earlier game's
// opening: it fingerprints each game by its first MaxMoves moves (as
// a set, order-independent) and compares that fingerprint against
// every previous game's. It exists to catch an evaluator or search
// collapsing onto a single deterministic opening over and over.
type DupDetector struct {
	maxMoves int
	history  []map[game.Move]struct{}

	current  map[game.Move]struct{}
	numMoves int
}

// NewDupDetector builds a detector that fingerprints the first
// maxMoves moves of each game. maxMoves <= 0 defaults to 10.
func NewDupDetector(maxMoves int) *DupDetector {
	if maxMoves <= 0 {
		maxMoves = 10
	}
	return &DupDetector{maxMoves: maxMoves}
}

// NewGame starts fingerprinting a new game. Panics if a previous game
// was started but never ended, mirroring the teacher's assertion-style
// state machine invariant.
func (d *DupDetector) NewGame() {
	if d.current != nil {
		panic("training: NewGame called while a game is already in progress")
	}
	d.current = make(map[game.Move]struct{}, d.maxMoves)
	d.numMoves = 0
}

// EndGame closes out the current game's fingerprint and files it in
// history for future comparisons.
func (d *DupDetector) EndGame() {
	d.history = append(d.history, d.current)
	d.current = nil
}

// AddMove records one move of the current game's opening. It returns
// true the first time the completed maxMoves-move fingerprint matches
// a prior game's fingerprint exactly. Once maxMoves moves have been
// recorded, further calls are no-ops.
func (d *DupDetector) AddMove(m game.Move) bool {
	if d.numMoves >= d.maxMoves {
		return false
	}
	d.current[m] = struct{}{}
	d.numMoves++

	if d.numMoves != d.maxMoves {
		return false
	}

	for _, old := range d.history {
		if sameMoveSet(old, d.current) {
			return true
		}
	}
	return false
}

func sameMoveSet(a, b map[game.Move]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for m := range a {
		if _, ok := b[m]; !ok {
			return false
		}
	}
	return true
}
