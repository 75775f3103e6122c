package training

import (
	"testing"

	"github.com/alphabeth/c4zero/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceBufferEndEpochAssignsRewardsBySide(t *testing.T) {
	config := game.NewGameConfig(1, 4)
	buf := NewExperienceBuffer(config)

	require.NoError(t, buf.StartEpoch())
	moves := []game.Move{
		{Position: game.Position{X: 0, Y: 0}, Color: game.Black},
		{Position: game.Position{X: 0, Y: 1}, Color: game.White},
		{Position: game.Position{X: 0, Y: 2}, Color: game.Black},
	}
	for _, m := range moves {
		require.NoError(t, buf.AddMove(m))
	}
	require.NoError(t, buf.EndEpoch(game.Black))

	var got []string
	buf.Report(func(line string) { got = append(got, line) })

	require.Len(t, got, 3)
	parsed0, err := ParseRecord(config, got[0])
	require.NoError(t, err)
	assert.Equal(t, float32(1), parsed0.Reward, "black's move gets black's reward")

	parsed1, err := ParseRecord(config, got[1])
	require.NoError(t, err)
	assert.Equal(t, float32(-1), parsed1.Reward, "white's move gets the opposite reward")

	assert.Equal(t, History{BlackWins: 1}, buf.History())
}

func TestExperienceBufferTieRewardsAreZero(t *testing.T) {
	config := game.NewGameConfig(1, 2)
	buf := NewExperienceBuffer(config)

	require.NoError(t, buf.StartEpoch())
	require.NoError(t, buf.AddMove(game.Move{Position: game.Position{X: 0, Y: 0}, Color: game.Black}))
	require.NoError(t, buf.EndEpoch(game.NA))

	var got []string
	buf.Report(func(line string) { got = append(got, line) })
	require.Len(t, got, 1)

	parsed, err := ParseRecord(config, got[0])
	require.NoError(t, err)
	assert.Equal(t, float32(0), parsed.Reward)
}

func TestAbortEpochDiscardsMoves(t *testing.T) {
	config := game.NewGameConfig(1, 2)
	buf := NewExperienceBuffer(config)

	require.NoError(t, buf.StartEpoch())
	require.NoError(t, buf.AddMove(game.Move{Position: game.Position{X: 0, Y: 0}, Color: game.Black}))
	require.NoError(t, buf.AbortEpoch())

	require.NoError(t, buf.StartEpoch())
	require.NoError(t, buf.AddMove(game.Move{Position: game.Position{X: 0, Y: 0}, Color: game.Black}))
	require.NoError(t, buf.EndEpoch(game.Black))

	var got []string
	buf.Report(func(line string) { got = append(got, line) })
	assert.Len(t, got, 1)
}
