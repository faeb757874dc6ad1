package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupTrades(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{Timestamp: 100, Side: SideBuy, Outcome: "Up", Size: 1},
		{Timestamp: 100, Side: SideSell, Outcome: "Up", Size: 2},
		{Timestamp: 102, Side: SideBuy, Outcome: "Down", Size: 3},
	}

	g := GroupTrades(trades)
	assert.Equal(t, 0, g.Dropped)
	assert.Len(t, g.BySecond, 2)
	assert.Len(t, g.At(100), 2)
	assert.Len(t, g.At(102), 1)
	assert.Nil(t, g.At(101))
}

func TestGroupTradesDropsMissingTimestamps(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{Timestamp: 0, Side: SideBuy, Outcome: "Up", Size: 1},
		{Timestamp: 100, Side: SideBuy, Outcome: "Up", Size: 2},
		{Timestamp: 0, Side: SideSell, Outcome: "Down", Size: 3},
	}

	g := GroupTrades(trades)
	assert.Equal(t, 2, g.Dropped)
	assert.Len(t, g.BySecond, 1)
	assert.Len(t, g.At(100), 1)
}

func TestGroupTradesEmpty(t *testing.T) {
	t.Parallel()

	g := GroupTrades(nil)
	assert.Equal(t, 0, g.Dropped)
	assert.Empty(t, g.BySecond)
}
