package mcts

import (
	"sync"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// childState tags what lives in an edge's child slot, so that
// "present but terminal" is distinguishable from "never visited"
// without special null semantics.
type childState uint8

const (
	childAbsent childState = iota
	childExpanding
	childTerminal
	childExpanded
)

// edge is the per-legal-move statistics row: prior P(a), visit count
// N(a), accumulated value W(a), and the tagged child slot.
type edge struct {
	pos    game.Position
	prior  float32
	visits uint32
	total  float32

	state    childState
	child    *Node
	expandCh chan struct{} // non-nil only while state == childExpanding
}

// Node is one MCTS node, parameterized by the side to move at that
// node. A single mutex guards all of its edges; this keeps selection,
// virtual loss and backup consistent without per-edge atomics (see
// spec.md §5: "consistency achieved either with a per-node lock or
// with atomic counters").
type Node struct {
	mu sync.Mutex

	side   game.Color
	config game.GameConfig

	edges []edge
	index map[game.Position]int

	totalCount uint32

	// predictedValue is the evaluator's scalar for this node, from
	// the perspective of `side`.
	predictedValue float32

	injectNoise bool
}

// NewNode expands a position: it enumerates legal moves, calls the
// evaluator exactly once, and optionally mixes root noise into the
// resulting priors. It returns game.ErrBoardFull if there are no
// legal moves. injectNoise must be true only for the node currently
// serving as search root, never for newly expanded internal nodes.
func NewNode(board *game.Board, side game.Color, ev eval.Evaluator, noise NoiseSource, injectNoise bool) (*Node, error) {
	legal := board.LegalPositions()
	if len(legal) == 0 {
		return nil, game.ErrBoardFull
	}

	snap := board.Snapshot(false)
	features := game.Features(snap, side)
	policy, value, err := ev.Evaluate(features)
	if err != nil {
		return nil, errors.Wrapf(eval.ErrEvaluatorFailure, "%v", err)
	}

	n := &Node{
		side:           side,
		config:         board.Config(),
		edges:          make([]edge, len(legal)),
		index:          make(map[game.Position]int, len(legal)),
		predictedValue: value,
		injectNoise:    injectNoise,
	}

	for i, pos := range legal {
		idx := board.Config().PositionToIndex(pos)
		prior := float32(0)
		if idx >= 0 && idx < len(policy) {
			prior = policy[idx]
		}
		n.edges[i] = edge{pos: pos, prior: prior}
		n.index[pos] = i
	}

	if injectNoise && noise != nil {
		eta := noise.Sample(len(legal))
		for i := range n.edges {
			n.edges[i].prior = 0.8*n.edges[i].prior + 0.2*eta[i]
		}
	}

	return n, nil
}

// Side returns the color to move at this node.
func (n *Node) Side() game.Color { return n.side }

// PredictedValue returns the evaluator's scalar for this node, from
// the perspective of Side().
func (n *Node) PredictedValue() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.predictedValue
}

// LegalPositions returns the legal positions at this node, in the
// stable order used for tie-breaking.
func (n *Node) LegalPositions() []game.Position {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]game.Position, len(n.edges))
	for i, e := range n.edges {
		out[i] = e.pos
	}
	return out
}

// TotalCount returns the sum of visits across all edges.
func (n *Node) TotalCount() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.totalCount
}

// Visits returns N(a) for the given position, or 0 if absent.
func (n *Node) Visits(pos game.Position) uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i, ok := n.index[pos]; ok {
		return n.edges[i].visits
	}
	return 0
}

// Select applies the PUCT rule:
//
//	Q(a) = W(a) / max(N(a), 1)
//	U(a) = cPuct * P(a) * sqrt(totalCount) / (1 + N(a))
//
// and returns the legal position maximizing Q(a)+U(a), ties broken by
// first occurrence in legal-list order.
func (n *Node) Select(cPuct float32) game.Position {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selectLocked(cPuct)
}

func (n *Node) selectLocked(cPuct float32) game.Position {
	sqrtTotal := math32.Sqrt(float32(n.totalCount))
	best := -1
	bestScore := math32.Inf(-1)
	for i := range n.edges {
		e := &n.edges[i]
		denom := float32(1)
		if e.visits > 0 {
			denom = float32(e.visits)
		}
		q := e.total / denom
		u := cPuct * e.prior * sqrtTotal / (1 + float32(e.visits))
		score := q + u
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return n.edges[best].pos
}

// Backup increments N(a), adds reward to W(a) and increments
// totalCount, for the edge at pos.
func (n *Node) Backup(pos game.Position, reward float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	i, ok := n.index[pos]
	if !ok {
		panic("mcts: backup on unknown edge")
	}
	n.edges[i].visits++
	n.edges[i].total += reward
	n.totalCount++
}

// addVirtualLoss atomically pessimizes the edge at pos: N += vl, W -=
// vl. Must be paired with a later removeVirtualLoss.
func (n *Node) addVirtualLoss(pos game.Position, vl uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := n.index[pos]
	n.edges[i].visits += vl
	n.edges[i].total -= float32(vl)
	n.totalCount += vl
}

// removeVirtualLoss undoes addVirtualLoss for pos.
func (n *Node) removeVirtualLoss(pos game.Position, vl uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := n.index[pos]
	n.edges[i].visits -= vl
	n.edges[i].total += float32(vl)
	n.totalCount -= vl
}

// backupRemovingVirtualLoss removes a previously applied virtual loss
// and applies the real backup in the same critical section, so a
// concurrent selection never observes the edge mid-reconciliation.
func (n *Node) backupRemovingVirtualLoss(pos game.Position, reward float32, vl uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := n.index[pos]
	n.edges[i].visits -= vl
	n.edges[i].total += float32(vl)
	n.totalCount -= vl

	n.edges[i].visits++
	n.edges[i].total += reward
	n.totalCount++
}

// selectWithVirtualLoss selects per PUCT and atomically applies a
// virtual loss to the chosen edge, so other concurrent workers are
// discouraged from piling onto the same branch before this worker's
// evaluation returns (spec.md §4.7).
func (n *Node) selectWithVirtualLoss(cPuct float32, vl uint32) game.Position {
	n.mu.Lock()
	defer n.mu.Unlock()
	pos := n.selectLocked(cPuct)
	i := n.index[pos]
	n.edges[i].visits += vl
	n.edges[i].total -= float32(vl)
	n.totalCount += vl
	return pos
}

// childOrClaim looks up the edge at pos. If it already has a live
// child, that child is returned. If the edge is absent, the caller
// claims exclusive expansion rights (claimed=true) and must follow up
// with finishExpansion or abortExpansion. If another worker is
// already expanding it, the caller must wait on the returned channel
// and then retry.
func (n *Node) childOrClaim(pos game.Position) (child *Node, claimed bool, wait chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := n.index[pos]
	switch n.edges[i].state {
	case childExpanded:
		return n.edges[i].child, false, nil
	case childExpanding:
		return nil, false, n.edges[i].expandCh
	case childTerminal:
		return nil, false, nil
	default: // childAbsent
		ch := make(chan struct{})
		n.edges[i].state = childExpanding
		n.edges[i].expandCh = ch
		return nil, true, ch
	}
}

// finishExpansion installs the child produced by a claimed expansion
// and wakes any workers waiting on it.
func (n *Node) finishExpansion(pos game.Position, child *Node) {
	n.mu.Lock()
	i := n.index[pos]
	ch := n.edges[i].expandCh
	n.edges[i].state = childExpanded
	n.edges[i].child = child
	n.edges[i].expandCh = nil
	n.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

// abortExpansion releases a claimed-but-failed expansion, reverting
// the edge to absent so another worker may retry, and wakes waiters.
func (n *Node) abortExpansion(pos game.Position) {
	n.mu.Lock()
	i := n.index[pos]
	ch := n.edges[i].expandCh
	n.edges[i].state = childAbsent
	n.edges[i].expandCh = nil
	n.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

// childOf returns the live child node at pos, or nil if the edge is
// absent, expanding, or terminal.
func (n *Node) childOf(pos game.Position) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	i, ok := n.index[pos]
	if !ok {
		return nil
	}
	if n.edges[i].state != childExpanded {
		return nil
	}
	return n.edges[i].child
}

// markTerminal tags the edge at pos as a terminal sentinel: the move
// ends the game, so no child node is ever created for it.
func (n *Node) markTerminal(pos game.Position) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.edges[n.index[pos]].state = childTerminal
}

// expand creates and installs the child node for pos, reached by
// playing pos from this node's side to move. The new child never
// receives root noise (noise is injected only at the search root).
func (n *Node) expand(pos game.Position, newBoard *game.Board, ev eval.Evaluator, noise NoiseSource) (*Node, error) {
	child, err := NewNode(newBoard, n.side.Reverse(), ev, noise, false)
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	n.edges[n.index[pos]].state = childExpanded
	n.edges[n.index[pos]].child = child
	n.mu.Unlock()
	return child, nil
}

// BestByVisits returns the legal position with the maximum N(a), ties
// broken by legal-list order. This is the greedy root-move rule.
func (n *Node) BestByVisits() game.Position {
	n.mu.Lock()
	defer n.mu.Unlock()
	best := 0
	for i := 1; i < len(n.edges); i++ {
		if n.edges[i].visits > n.edges[best].visits {
			best = i
		}
	}
	return n.edges[best].pos
}

// VisitCounts returns a copy of (position, N(a)) pairs in legal-list
// order, used for exploration sampling and for testable golden
// vectors.
func (n *Node) VisitCounts() []PositionCount {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]PositionCount, len(n.edges))
	for i, e := range n.edges {
		out[i] = PositionCount{Position: e.pos, Count: e.visits}
	}
	return out
}

// PositionCount pairs a legal position with its visit count.
type PositionCount struct {
	Position game.Position
	Count    uint32
}
