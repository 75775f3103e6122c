package mcts

import "github.com/alphabeth/c4zero/game"

// step is one (node, chosen position) pair on a simulation's path,
// used to apply the backup sign rule once the simulation resolves.
type step struct {
	node *Node
	pos  game.Position
}

// backupPath applies the fixed-BLACK-frame sign rule of spec.md §4.4:
// at each node on the path, add the reward matching that node's side
// to move. This avoids perspective-flip errors at odd depths.
func backupPath(path []step, blackReward float32) {
	whiteReward := -blackReward
	for _, s := range path {
		if s.node.Side() == game.Black {
			s.node.Backup(s.pos, blackReward)
		} else {
			s.node.Backup(s.pos, whiteReward)
		}
	}
}

// blackRewardForWinner converts a WinnerAfterLastMove result into the
// fixed black-frame reward: +1 BLACK, -1 WHITE, 0 tie.
func blackRewardForWinner(winner game.Color) float32 {
	switch winner {
	case game.Black:
		return 1
	case game.White:
		return -1
	default:
		return 0
	}
}

// Simulate runs `iterations` sequential simulations from the current
// root, per spec.md §4.5. It requires a root to already exist (see
// NextPosition, which builds one).
func (t *Tree) Simulate(iterations int) error {
	for i := 0; i < iterations; i++ {
		if err := t.simulateOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) simulateOnce() error {
	var path []step

	curNode := t.root
	curBoard := t.board.Deepcopy()

	for {
		pos := curNode.Select(t.cfg.CPuct)
		path = append(path, step{curNode, pos})

		newBoard := curBoard.Deepcopy()
		if err := newBoard.Apply(game.Move{Position: pos, Color: curNode.Side()}); err != nil {
			// The engine only ever selects among legal candidates;
			// reaching an illegal move here is a logic bug and must
			// abort the search (spec.md §7).
			return err
		}

		if winner, ended := newBoard.WinnerAfterLastMove(); ended {
			curNode.markTerminal(pos)
			backupPath(path, blackRewardForWinner(winner))
			return nil
		}

		if child := curNode.childOf(pos); child != nil {
			curNode = child
			curBoard = newBoard
			continue
		}

		child, err := curNode.expand(pos, newBoard, t.evaluator, t.cfg.NoiseSource)
		if err != nil {
			return err
		}
		var blackReward float32
		if child.Side() == game.Black {
			blackReward = child.PredictedValue()
		} else {
			blackReward = -child.PredictedValue()
		}
		backupPath(path, blackReward)
		return nil
	}
}

// NextPosition is the Policy-facing entry point: build or reuse a
// root, run `iterations` simulations, select a move and promote it to
// the new root. explore enables visit-count-proportional sampling,
// but only while fewer than cfg.ExplorePlies plies have been played
// (spec.md §4.4, §4.6).
func (t *Tree) NextPosition(board *game.Board, explore bool) (game.Position, error) {
	if err := t.buildOrReuseRoot(board, explore); err != nil {
		return game.Position{}, err
	}

	if err := t.Simulate(t.cfg.Iterations); err != nil {
		return game.Position{}, err
	}

	doExplore := explore && len(board.Moves()) < t.cfg.ExplorePlies
	var pos game.Position
	if doExplore {
		pos = t.sampleByVisits()
	} else {
		pos = t.root.BestByVisits()
	}

	t.promoteChosen(pos)
	return pos, nil
}

// sampleByVisits samples a legal root position with probability
// proportional to N(a), using the tree's own seeded RNG.
func (t *Tree) sampleByVisits() game.Position {
	counts := t.root.VisitCounts()
	var total uint64
	for _, c := range counts {
		total += uint64(c.Count)
	}
	if total == 0 {
		return counts[0].Position
	}
	r := t.rand.Uint64() % total
	var cum uint64
	for _, c := range counts {
		cum += uint64(c.Count)
		if r < cum {
			return c.Position
		}
	}
	return counts[len(counts)-1].Position
}
