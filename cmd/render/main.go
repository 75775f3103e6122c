// Command render draws a snapshot string (as produced by
// game.Snapshot.String) to a PNG file, for offline inspection of
// self-play output.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/alphabeth/c4zero/game"
	"github.com/alphabeth/c4zero/render"
)

var (
	rows    = flag.Int("rows", 6, "board rows")
	columns = flag.Int("columns", 7, "board columns")
	snapStr = flag.String("snapshot", "", "snapshot string, e.g. 'b(5,3)^w(5,4)'")
	outPath = flag.String("out", "board.png", "output PNG path")
)

func main() {
	flag.Parse()

	config := game.NewGameConfig(*rows, *columns)
	snap, err := game.ParseSnapshot(config, *snapStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -snapshot: %v\n", err)
		os.Exit(1)
	}

	img, err := render.PNG(snap, snap.MoveCount())
	if err != nil {
		fmt.Fprintf(os.Stderr, "rendering board: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "encoding PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}
