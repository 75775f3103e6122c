package game

import "gorgonia.org/tensor"

// FeaturePlanes is the fixed number of encoded planes: black stones,
// white stones, side-to-move.
const FeaturePlanes = 3

// Features encodes a snapshot as a (1, 3, rows, columns) float32
// tensor, channels-first:
//
//	plane 0: 1.0 where BLACK stones sit, else 0.0
//	plane 1: 1.0 where WHITE stones sit, else 0.0
//	plane 2: all 1.0 if BLACK is to move next, else all 0.0
func Features(snap Snapshot, toMove Color) *tensor.Dense {
	conf := snap.config
	planeSize := conf.Rows * conf.Columns
	backing := make([]float32, FeaturePlanes*planeSize)

	for i := 0; i < conf.Rows; i++ {
		for j := 0; j < conf.Columns; j++ {
			idx := i*conf.Columns + j
			switch c, _ := snap.Get(Position{X: i, Y: j}); c {
			case Black:
				backing[idx] = 1.0
			case White:
				backing[planeSize+idx] = 1.0
			}
		}
	}

	if toMove == Black {
		for i := 0; i < planeSize; i++ {
			backing[2*planeSize+i] = 1.0
		}
	}

	return tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(1, FeaturePlanes, conf.Rows, conf.Columns),
	)
}
