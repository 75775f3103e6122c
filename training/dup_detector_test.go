package training

import (
	"testing"

	"github.com/alphabeth/c4zero/game"
	"github.com/stretchr/testify/assert"
)

func TestDupDetectorFlagsRepeatedOpening(t *testing.T) {
	d := NewDupDetector(2)
	opening := []game.Move{
		{Position: game.Position{X: 5, Y: 3}, Color: game.Black},
		{Position: game.Position{X: 5, Y: 4}, Color: game.White},
	}

	d.NewGame()
	for _, m := range opening {
		assert.False(t, d.AddMove(m))
	}
	d.EndGame()

	d.NewGame()
	dup := false
	for _, m := range opening {
		if d.AddMove(m) {
			dup = true
		}
	}
	d.EndGame()

	assert.True(t, dup)
}

func TestDupDetectorDistinctOpeningsNotFlagged(t *testing.T) {
	d := NewDupDetector(2)

	d.NewGame()
	assert.False(t, d.AddMove(game.Move{Position: game.Position{X: 5, Y: 0}, Color: game.Black}))
	assert.False(t, d.AddMove(game.Move{Position: game.Position{X: 5, Y: 1}, Color: game.White}))
	d.EndGame()

	d.NewGame()
	assert.False(t, d.AddMove(game.Move{Position: game.Position{X: 5, Y: 2}, Color: game.Black}))
	dup := d.AddMove(game.Move{Position: game.Position{X: 5, Y: 3}, Color: game.White})
	d.EndGame()

	assert.False(t, dup)
}
