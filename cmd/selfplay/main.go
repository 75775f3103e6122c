// Command selfplay runs repeated games between two MCTS policies,
// writing training records to stdout (or a file) one per line.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/alphabeth/c4zero"
	"github.com/alphabeth/c4zero/eval"
	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/mcts"
	"github.com/alphabeth/c4zero/training"
)

var (
	rows       = flag.Int("rows", 6, "board rows")
	columns    = flag.Int("columns", 7, "board columns")
	games      = flag.Int("games", 1, "number of self-play games to run")
	iterations = flag.Int("iterations", 400, "MCTS simulations per move")
	explore    = flag.Bool("explore", true, "sample root moves proportional to visit count for the opening plies")
	parallel   = flag.Bool("parallel", false, "use the worker-pool parallel search instead of sequential")
	outPath    = flag.String("out", "", "file to append training records to (default: stdout)")
	seed       = flag.Int64("seed", 1, "base RNG seed")
	maxDupPly  = flag.Int("dup_max_moves", 10, "opening-move count used to detect duplicate games (0 disables)")
)

func main() {
	flag.Parse()

	config := game.NewGameConfig(*rows, *columns)
	evaluator := eval.NewUniform(config.ActionSpace())

	out := os.Stdout
	if *outPath != "" {
		f, err := os.OpenFile(*outPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("opening output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	buf := training.NewExperienceBuffer(config)
	var dup *training.DupDetector
	if *maxDupPly > 0 {
		dup = training.NewDupDetector(*maxDupPly)
	}
	logger := log.New(os.Stderr, "[selfplay] ", log.Ltime)

	for i := 0; i < *games; i++ {
		cfg := mcts.DefaultConfig()
		cfg.Iterations = *iterations

		var black, white c4zero.Policy
		if *parallel {
			black = c4zero.NewParallelMCTSPolicy(game.Black, evaluator, cfg, uint64(*seed)+uint64(i)*2, *explore, "")
			white = c4zero.NewParallelMCTSPolicy(game.White, evaluator, cfg, uint64(*seed)+uint64(i)*2+1, *explore, "")
		} else {
			black = c4zero.NewMCTSPolicy(game.Black, evaluator, cfg, uint64(*seed)+uint64(i)*2, *explore, "")
			white = c4zero.NewMCTSPolicy(game.White, evaluator, cfg, uint64(*seed)+uint64(i)*2+1, *explore, "")
		}

		winner, err := c4zero.PlayEpoch(config, black, white, buf, dup, logger)
		if err != nil {
			if err == c4zero.ErrDuplicateGame {
				logger.Printf("game %d: duplicate opening, skipped", i)
				continue
			}
			log.Fatalf("game %d failed: %v", i, err)
		}
		logger.Printf("game %d finished, winner=%s", i, winner)

		buf.Report(func(line string) {
			if _, err := out.WriteString(line + "\n"); err != nil {
				log.Fatalf("writing record: %v", err)
			}
		})
	}

	logger.Print(buf.Summary())
}
