// Package training ports the self-play data pipeline: the
// move/reward/snapshot training record format, a per-epoch experience
// buffer that replays moves to compute rewards, and a duplicate-game
// detector. None of it defines an evaluator architecture or a
// training loop; it only prepares and records the data one would feed
// to either (see spec.md §1 Non-goals).
package training

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alphabeth/c4zero/game"
	"github.com/pkg/errors"
)

// ErrInvalidRecordString is returned by ParseRecord when the input
// doesn't match the "<move>_<reward>_<snapshot>" format.
var ErrInvalidRecordString = errors.New("training: invalid record string")

// Record is one training example: the move played, the terminal
// reward it ultimately earned (from the mover's own perspective), and
// the board snapshot immediately before the move.
type Record struct {
	Move     game.Move
	Reward   float32
	Snapshot game.Snapshot
}

// String renders a record as "<move>_<reward>_<snapshot>", matching
// spec.md §6. Reward is formatted with no fractional digits, padded to
// a width of two characters, e.g. " 1", "-1", " 0"; ParseRecord trims
// the padding.
func (r Record) String() string {
	return fmt.Sprintf("%s_%2.0f_%s", r.Move, r.Reward, r.Snapshot)
}

// ParseRecord reverses Record.String. The snapshot field may be the
// empty string (an empty board).
func ParseRecord(config game.GameConfig, s string) (Record, error) {
	parts := strings.SplitN(s, "_", 3)
	var moveStr, rewardStr, snapStr string
	switch len(parts) {
	case 3:
		moveStr, rewardStr, snapStr = parts[0], parts[1], parts[2]
	case 2:
		moveStr, rewardStr = parts[0], parts[1]
	default:
		return Record{}, errors.Wrapf(ErrInvalidRecordString, "got %q", s)
	}

	move, err := game.ParseMove(moveStr)
	if err != nil {
		return Record{}, errors.Wrap(ErrInvalidRecordString, err.Error())
	}
	reward, err := strconv.ParseFloat(strings.TrimSpace(rewardStr), 32)
	if err != nil {
		return Record{}, errors.Wrapf(ErrInvalidRecordString, "bad reward %q", rewardStr)
	}
	snap, err := game.ParseSnapshot(config, snapStr)
	if err != nil {
		return Record{}, errors.Wrap(ErrInvalidRecordString, err.Error())
	}

	return Record{Move: move, Reward: float32(reward), Snapshot: snap}, nil
}
