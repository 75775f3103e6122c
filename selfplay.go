package c4zero

import (
	"log"

	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/training"
	"github.com/pkg/errors"
)

// ErrDuplicateGame is returned by PlayEpoch when the dup detector
// flags the game's opening as a repeat of an earlier game's.
var ErrDuplicateGame = errors.New("c4zero: duplicate game opening detected")

// PlayEpoch plays one game to completion between black and white,
// alternating NextPosition calls per spec.md's turn order, and records
// it into buf as one training.Record per move. It mirrors the
// teacher's self-play arena loop, minus the evaluator-competition
// machinery that loop also handled (out of scope here; see spec.md §1
// Non-goals).
//
// dup, if non-nil, fingerprints the game's first moves and aborts the
// epoch (without recording it) if they match a previously played
// game.
func PlayEpoch(config game.GameConfig, black, white Policy, buf *training.ExperienceBuffer, dup *training.DupDetector, logger *log.Logger) (winner game.Color, err error) {
	board := config.NewBoard()

	if err := buf.StartEpoch(); err != nil {
		return game.NA, err
	}
	if dup != nil {
		dup.NewGame()
	}

	toMove := black
	for {
		pos, err := toMove.NextPosition(board)
		if err != nil {
			_ = buf.AbortEpoch()
			return game.NA, errors.Wrapf(err, "c4zero: %s failed to move", toMove.Name())
		}

		var color game.Color
		if toMove == black {
			color = game.Black
		} else {
			color = game.White
		}
		move := game.Move{Position: pos, Color: color}

		if logger != nil {
			logger.Printf("%s plays %s", toMove.Name(), move)
		}

		if err := board.Apply(move); err != nil {
			_ = buf.AbortEpoch()
			return game.NA, errors.Wrap(err, "c4zero: policy produced an illegal move")
		}
		if err := buf.AddMove(move); err != nil {
			_ = buf.AbortEpoch()
			return game.NA, err
		}

		if dup != nil && dup.AddMove(move) {
			_ = buf.AbortEpoch()
			dup.EndGame()
			return game.NA, ErrDuplicateGame
		}

		if w, ended := board.WinnerAfterLastMove(); ended {
			if err := buf.EndEpoch(w); err != nil {
				return game.NA, err
			}
			if dup != nil {
				dup.EndGame()
			}
			return w, nil
		}

		if toMove == black {
			toMove = white
		} else {
			toMove = black
		}
	}
}
