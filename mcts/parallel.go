package mcts

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/hashicorp/go-multierror"
	"gorgonia.org/tensor"
)

// batchItem is one queued evaluator request from a parallel worker.
type batchItem struct {
	features *tensor.Dense
	result   chan batchResult
}

type batchResult struct {
	policy []float32
	value  float32
	err    error
}

// batcher groups concurrent leaf evaluations into calls of at most
// BatchSize leaves (spec.md §4.7: "the evaluator must be called with
// at most B leaves per invocation"). It implements eval.Evaluator
// itself, so Node.expand / NewNode need no parallel-specific variant:
// a batcher stands in for the real evaluator during parallel search.
type batcher struct {
	mu      sync.Mutex
	pending []batchItem
	size    int
	ev      eval.Evaluator

	flushDelay time.Duration
}

func newBatcher(ev eval.Evaluator, size int) *batcher {
	if size <= 0 {
		size = 1
	}
	return &batcher{ev: ev, size: size, flushDelay: 2 * time.Millisecond}
}

// Evaluate implements eval.Evaluator by queuing the request and
// blocking until the batch it lands in has been run.
func (b *batcher) Evaluate(features *tensor.Dense) (policy []float32, value float32, err error) {
	item := batchItem{features: features, result: make(chan batchResult, 1)}

	b.mu.Lock()
	b.pending = append(b.pending, item)
	var toRun []batchItem
	if len(b.pending) >= b.size {
		toRun = b.pending[:b.size]
		b.pending = b.pending[b.size:]
	}
	b.mu.Unlock()

	if toRun != nil {
		b.run(toRun)
	} else {
		go b.flushAfter(b.flushDelay)
	}

	res := <-item.result
	return res.policy, res.value, res.err
}

// flushAfter drains whatever is still pending after a short delay, so
// a trickle of leaves smaller than the batch size doesn't stall
// waiting for a full batch that never arrives.
func (b *batcher) flushAfter(d time.Duration) {
	time.Sleep(d)
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}
	toRun := b.pending
	b.pending = nil
	b.mu.Unlock()
	b.run(toRun)
}

func (b *batcher) run(items []batchItem) {
	if be, ok := b.ev.(eval.BatchEvaluator); ok {
		feats := make([]*tensor.Dense, len(items))
		for i, it := range items {
			feats[i] = it.features
		}
		policies, values, err := be.EvaluateBatch(feats)
		for i, it := range items {
			if err != nil {
				it.result <- batchResult{err: err}
				continue
			}
			it.result <- batchResult{policy: policies[i], value: values[i]}
		}
		return
	}
	for _, it := range items {
		p, v, err := b.ev.Evaluate(it.features)
		it.result <- batchResult{policy: p, value: v, err: err}
	}
}

// ParallelSearch runs `iterations` simulations using a fixed worker
// pool, virtual loss and batched evaluation (spec.md §4.7). Exactly
// `iterations` simulations complete successfully, or the first worker
// error stops the other workers from starting new simulations and the
// errors of all failed workers are returned together; the tree's
// state as of the last fully-backed-up simulation is left intact
// either way.
func (t *Tree) ParallelSearch(iterations int) error {
	workers := t.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	if workers < 1 {
		workers = 1
	}

	vl := t.cfg.VirtualLoss
	if vl == 0 {
		vl = 1
	}

	b := newBatcher(t.evaluator, t.cfg.BatchSize)

	var ticket int32
	var errs error
	var errMu sync.Mutex
	stop := make(chan struct{})
	var stopOnce sync.Once

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := atomic.AddInt32(&ticket, 1)
				if n > int32(iterations) {
					return
				}
				if err := t.simulateOnceParallel(b, vl); err != nil {
					errMu.Lock()
					errs = multierror.Append(errs, err)
					errMu.Unlock()
					stopOnce.Do(func() { close(stop) })
					return
				}
			}
		}()
	}
	wg.Wait()

	return errs
}

// NextPositionParallel is the parallel-search counterpart to
// NextPosition: same root reuse, exploration and promotion semantics,
// but driven by a worker pool instead of a single goroutine.
func (t *Tree) NextPositionParallel(board *game.Board, explore bool) (game.Position, error) {
	if err := t.buildOrReuseRoot(board, explore); err != nil {
		return game.Position{}, err
	}

	if err := t.ParallelSearch(t.cfg.Iterations); err != nil {
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

// simulateOnceParallel is the parallel counterpart to simulateOnce: it
// selects with virtual loss instead of plain PUCT, and resolves
// expansion races via Node's claim/wait/finish protocol instead of
// assuming it is the only writer.
func (t *Tree) simulateOnceParallel(b *batcher, vl uint32) error {
	var path []step

	curNode := t.root
	curBoard := t.board.Deepcopy()

	for {
		pos := curNode.selectWithVirtualLoss(t.cfg.CPuct, vl)
		path = append(path, step{curNode, pos})

		newBoard := curBoard.Deepcopy()
		if err := newBoard.Apply(game.Move{Position: pos, Color: curNode.Side()}); err != nil {
			undoVirtualLosses(path, vl)
			return err
		}

		if winner, ended := newBoard.WinnerAfterLastMove(); ended {
			curNode.markTerminal(pos)
			backupPathRemovingVirtualLoss(path, blackRewardForWinner(winner), vl)
			return nil
		}

		child, claimed, wait := curNode.childOrClaim(pos)
		if child != nil {
			curNode = child
			curBoard = newBoard
			continue
		}
		if !claimed {
			// Another worker owns this edge's expansion (or it
			// resolved to terminal concurrently). Back off the
			// virtual loss we just added for this abandoned step and
			// retry once it's resolved.
			path = path[:len(path)-1]
			curNode.removeVirtualLoss(pos, vl)
			if wait != nil {
				<-wait
			}
			continue
		}

		child, err := NewNode(newBoard, curNode.side.Reverse(), b, t.cfg.NoiseSource, false)
		if err != nil {
			curNode.abortExpansion(pos)
			undoVirtualLosses(path, vl)
			return err
		}
		curNode.finishExpansion(pos, child)

		var blackReward float32
		if child.Side() == game.Black {
			blackReward = child.PredictedValue()
		} else {
			blackReward = -child.PredictedValue()
		}
		backupPathRemovingVirtualLoss(path, blackReward, vl)
		return nil
	}
}

// backupPathRemovingVirtualLoss is backupPath's parallel counterpart:
// each step also reconciles the virtual loss applied during selection.
func backupPathRemovingVirtualLoss(path []step, blackReward float32, vl uint32) {
	whiteReward := -blackReward
	for _, s := range path {
		if s.node.Side() == game.Black {
			s.node.backupRemovingVirtualLoss(s.pos, blackReward, vl)
		} else {
			s.node.backupRemovingVirtualLoss(s.pos, whiteReward, vl)
		}
	}
}

// undoVirtualLosses reconciles virtual losses for a path that will
// never reach backup (an error aborted the simulation partway).
func undoVirtualLosses(path []step, vl uint32) {
	for _, s := range path {
		s.node.removeVirtualLoss(s.pos, vl)
	}
}
