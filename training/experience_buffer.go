package training

import (
	"fmt"

	"github.com/alphabeth/c4zero/game"
	"github.com/pkg/errors"
)

// ErrEpochAlreadyOpen / ErrNoEpochOpen guard the buffer's state
// machine: start_epoch/end_epoch/abort_epoch must alternate correctly.
var (
	ErrEpochAlreadyOpen = errors.New("training: epoch already in progress")
	ErrNoEpochOpen      = errors.New("training: no epoch in progress")
)

// ExperienceBuffer accumulates moves for one self-play game ("epoch"),
// then on EndEpoch replays them against a fresh board to pair each
// move with the board snapshot that preceded it and the terminal
// reward it earned, from the perspective of whichever color made that
// move. It assumes black and white alternate turns and is not safe
// for concurrent use, matching the self-play driver's single-threaded
// per-game loop.
type ExperienceBuffer struct {
	config game.GameConfig

	records      []Record
	epochMoves   []game.Move
	epochRunning bool

	numEpochs        int
	numReported      int
	numBlackWins     int
	numWhiteWins     int
	numTies          int
}

// NewExperienceBuffer builds an empty buffer for the given config.
func NewExperienceBuffer(config game.GameConfig) *ExperienceBuffer {
	return &ExperienceBuffer{config: config}
}

// StartEpoch begins accumulating moves for one game.
func (b *ExperienceBuffer) StartEpoch() error {
	if b.epochRunning {
		return ErrEpochAlreadyOpen
	}
	b.epochRunning = true
	b.epochMoves = nil
	return nil
}

// AbortEpoch discards the in-progress epoch's moves without recording
// any records, e.g. when self-play itself failed.
func (b *ExperienceBuffer) AbortEpoch() error {
	if !b.epochRunning {
		return ErrNoEpochOpen
	}
	b.epochRunning = false
	b.epochMoves = nil
	return nil
}

// AddMove appends one move to the in-progress epoch.
func (b *ExperienceBuffer) AddMove(m game.Move) error {
	if !b.epochRunning {
		return ErrNoEpochOpen
	}
	b.epochMoves = append(b.epochMoves, m)
	return nil
}

// EndEpoch closes the epoch: winner is the game's result (game.NA for
// a tie). It replays the recorded moves against a fresh board,
// recording one Record per move with the snapshot immediately
// preceding it and the reward that color ultimately earned.
func (b *ExperienceBuffer) EndEpoch(winner game.Color) error {
	if !b.epochRunning {
		return ErrNoEpochOpen
	}

	var blackReward, whiteReward float32
	switch winner {
	case game.Black:
		blackReward, whiteReward = 1, -1
		b.numBlackWins++
	case game.White:
		blackReward, whiteReward = -1, 1
		b.numWhiteWins++
	default:
		b.numTies++
	}

	board := b.config.NewBoard()
	for _, m := range b.epochMoves {
		reward := whiteReward
		if m.Color == game.Black {
			reward = blackReward
		}
		b.records = append(b.records, Record{
			Move:     m,
			Reward:   reward,
			Snapshot: board.Snapshot(true),
		})
		if err := board.Apply(m); err != nil {
			return errors.Wrap(err, "training: replaying epoch moves")
		}
	}

	b.numEpochs++
	b.epochRunning = false
	b.epochMoves = nil
	return nil
}

// Report invokes writeLine once per accumulated record (in
// playback order) and then clears the buffer's records, mirroring the
// teacher's writer-callback style rather than returning a slice the
// caller must remember to drain.
func (b *ExperienceBuffer) Report(writeLine func(string)) {
	if writeLine != nil {
		for _, r := range b.records {
			writeLine(r.String())
		}
		b.numReported += len(b.records)
	}
	b.records = nil
}

// Summary returns a human-readable accounting of epochs and outcomes
// reported so far, in the teacher's print-style format.
func (b *ExperienceBuffer) Summary() string {
	avg := 0.0
	if b.numEpochs > 0 {
		avg = float64(b.numReported) / float64(b.numEpochs)
	}
	return fmt.Sprintf(
		"Report %d epochs in total.\nWins: B (%d) - W (%d) - Tie (%d).\nReport %d states in total.\nOn average %.3f states/epoch.",
		b.numEpochs, b.numBlackWins, b.numWhiteWins, b.numTies, b.numReported, avg)
}

// History is the running win/loss/tie tally across all ended epochs.
type History struct {
	BlackWins int
	WhiteWins int
	Ties      int
}

// History returns the buffer's running tally.
func (b *ExperienceBuffer) History() History {
	return History{BlackWins: b.numBlackWins, WhiteWins: b.numWhiteWins, Ties: b.numTies}
}
