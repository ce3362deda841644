package dashboard

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSegmentsSumsToHundred(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		stages := make([]FunnelStage, 1+rng.Intn(8))
		for i := range stages {
			stages[i] = FunnelStage{Name: "stage", Count: float64(rng.Intn(500))}
		}
		stages[0].Count++

		segments := ComputeSegments(stages)
		require.Len(t, segments, len(stages))

		total, offset := 0.0, 0.0
		for _, segment := range segments {
			assert.InDelta(t, offset, segment.Offset, 1e-9)
			assert.False(t, math.IsNaN(segment.Width))
			offset += segment.Width
			total += segment.Width
		}
		assert.InDelta(t, 100.0, total, 1e-9)
	}
}

func TestComputeSegmentsFixture(t *testing.T) {
	t.Parallel()
	segments := ComputeSegments(DefaultFunnelCard().Stages)

	require.Len(t, segments, 5)
	assert.InDelta(t, 51.282, segments[0].Width, 0.001)
	assert.Equal(t, 0.0, segments[0].Offset)
	assert.InDelta(t, segments[0].Width+segments[1].Width, segments[2].Offset, 1e-9)
}

func TestComputeSegmentsZeroTotal(t *testing.T) {
	t.Parallel()
	segments := ComputeSegments([]FunnelStage{{Name: "a"}, {Name: "b", Count: -3}, {Name: "c"}})

	for _, segment := range segments {
		assert.Equal(t, 0.0, segment.Width)
		assert.Equal(t, 0.0, segment.Offset)
	}
	assert.Empty(t, ComputeSegments(nil))
}

func TestFunnelViewFormatsBudgetAndTooltip(t *testing.T) {
	t.Parallel()
	card := DefaultFunnelCard()

	view := card.view(context.Background(), renderEnv{theme: DefaultTheme()})

	require.Len(t, view.Stages, 5)
	assert.Equal(t, "$200", view.Stages[0].Budget)
	assert.Equal(t, "2 days", view.Stages[0].DurationLabel)
	assert.False(t, view.Stages[0].HasTooltip)
	assert.True(t, view.Stages[2].HasTooltip)
	assert.Equal(t, "Average time on this stage", view.Stages[2].Explanation)
	assert.Equal(t, "#f87171", view.Stages[0].Color)
	assert.Equal(t, "600", view.MainStat)
	assert.Equal(t, "active leads", view.MainStatLabel)
}
