// Command play lets a human play one game against an MCTS policy from
// the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alphabeth/c4zero"
	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/mcts"
)

var (
	rows       = flag.Int("rows", 6, "board rows")
	columns    = flag.Int("columns", 7, "board columns")
	iterations = flag.Int("iterations", 800, "MCTS simulations per move")
	humanColor = flag.String("color", "b", "human's color: b or w")
	seed       = flag.Int64("seed", 1, "MCTS exploration RNG seed")
)

func main() {
	flag.Parse()

	config := game.NewGameConfig(*rows, *columns)
	evaluator := eval.NewUniform(config.ActionSpace())

	human, err := game.ParseColor(*humanColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -color: %v\n", err)
		os.Exit(1)
	}

	cfg := mcts.DefaultConfig()
	cfg.Iterations = *iterations

	var black, white c4zero.Policy
	if human == game.Black {
		black = c4zero.NewHumanPolicy(game.Black, os.Stdin, os.Stdout, "")
		white = c4zero.NewMCTSPolicy(game.White, evaluator, cfg, uint64(*seed), false, "")
	} else {
		black = c4zero.NewMCTSPolicy(game.Black, evaluator, cfg, uint64(*seed), false, "")
		white = c4zero.NewHumanPolicy(game.White, os.Stdin, os.Stdout, "")
	}

	board := config.NewBoard()
	toMove, opponent := black, white
	for {
		board.Draw(os.Stdout)
		pos, err := toMove.NextPosition(board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to move: %v\n", toMove.Name(), err)
			os.Exit(1)
		}

		color := game.Black
		if toMove == white {
			color = game.White
		}
		move := game.Move{Position: pos, Color: color}
		if err := board.Apply(move); err != nil {
			fmt.Fprintf(os.Stderr, "illegal move %s: %v\n", move, err)
			os.Exit(1)
		}
		fmt.Printf("%s plays %s\n", toMove.Name(), move)

		if winner, ended := board.WinnerAfterLastMove(); ended {
			board.Draw(os.Stdout)
			if winner == game.NA {
				fmt.Println("Tie game.")
			} else {
				fmt.Printf("%s wins.\n", winner)
			}
			return
		}

		toMove, opponent = opponent, toMove
	}
}
