package bandit

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBandit(seed uint64) *GraphWarmStartedFGTS {
	return New(Config{Source: rand.NewPCG(seed, seed)})
}

func uniformArms(n int) []Arm {
	arms := make([]Arm, n)
	for i := range arms {
		// Identical embeddings: every arm starts with the same prior.
		arms[i] = Arm{ID: string(rune('a' + i%26)), Embedding: []float32{1, 0, 0}}
	}
	return arms
}

func TestInitializeFromEmbeddings(t *testing.T) {
	b := newTestBandit(1)

	arms := []Arm{
		{ID: "team-1", Embedding: []float32{1, 0}},
		{ID: "team-2", Embedding: []float32{0, 1}},
	}
	err := b.InitializeFromEmbeddings(arms, []float32{1, 0})
	require.NoError(t, err)

	assert.Equal(t, 2, b.NumArms())

	// Perfect similarity: alpha = 1 + k, beta = 1.
	alpha, beta := b.Posterior()
	assert.InDelta(t, 1+DefaultWarmStartStrength, alpha[0], 1e-9)
	assert.InDelta(t, 1.0, beta[0], 1e-9)

	// Orthogonal arm: similarity clips to 0.
	assert.InDelta(t, 1.0, alpha[1], 1e-9)
	assert.InDelta(t, 1+DefaultWarmStartStrength, beta[1], 1e-9)

	assert.Equal(t, "team-1", b.ArmID(0))
	assert.InDelta(t, 1.0, b.Similarity(0), 1e-9)
	assert.InDelta(t, 0.0, b.Similarity(1), 1e-9)
}

func TestInitializeEmptyArms(t *testing.T) {
	b := newTestBandit(1)
	err := b.InitializeFromEmbeddings(nil, []float32{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInitializeTwice(t *testing.T) {
	b := newTestBandit(1)
	require.NoError(t, b.InitializeFromEmbeddings(uniformArms(3), []float32{1, 0, 0}))

	err := b.InitializeFromEmbeddings(uniformArms(3), []float32{1, 0, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSelectBeforeInitialize(t *testing.T) {
	b := newTestBandit(1)
	_, err := b.SelectCandidate()
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = b.Update(0, 1.0)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSelectReturnsValidIndex(t *testing.T) {
	for _, n := range []int{1, 2, 5, 30} {
		b := newTestBandit(uint64(n))
		require.NoError(t, b.InitializeFromEmbeddings(uniformArms(n), []float32{1, 0, 0}))

		for i := 0; i < 50; i++ {
			idx, err := b.SelectCandidate()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
		}
	}
}

func TestUpdateValidation(t *testing.T) {
	b := newTestBandit(1)
	require.NoError(t, b.InitializeFromEmbeddings(uniformArms(3), []float32{1, 0, 0}))

	assert.ErrorIs(t, b.Update(-1, 0.5), ErrInvalidArm)
	assert.ErrorIs(t, b.Update(3, 0.5), ErrInvalidArm)
	assert.ErrorIs(t, b.Update(0, -0.1), ErrInvalidArgument)
	assert.ErrorIs(t, b.Update(0, 1.1), ErrInvalidArgument)
}

func TestUpdateIsAdditive(t *testing.T) {
	rewards := []float64{1, 0, 0.5, 1, 0.25, 0, 1}

	apply := func(order []float64) (float64, float64) {
		b := newTestBandit(1)
		_ = b.InitializeFromEmbeddings(uniformArms(2), []float32{1, 0, 0})
		for _, r := range order {
			_ = b.Update(0, r)
		}
		alpha, beta := b.Posterior()
		return alpha[0], beta[0]
	}

	reversed := make([]float64, len(rewards))
	for i, r := range rewards {
		reversed[len(rewards)-1-i] = r
	}

	a1, b1 := apply(rewards)
	a2, b2 := apply(reversed)

	// Same multiset of rewards, same posterior, regardless of order.
	assert.InDelta(t, a1, a2, 1e-9)
	assert.InDelta(t, b1, b2, 1e-9)
}

func TestPullCountMonotone(t *testing.T) {
	b := newTestBandit(1)
	require.NoError(t, b.InitializeFromEmbeddings(uniformArms(2), []float32{1, 0, 0}))

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Update(1, 0.0))
		assert.Equal(t, i+1, b.PullCount(1))
	}
	assert.Equal(t, 0, b.PullCount(0))
}

func TestConvergenceOnRewardedArm(t *testing.T) {
	const (
		numArms  = 30
		rewarded = 7
		rounds   = 100
		seeds    = 5
	)

	var earlyTotal, lateTotal float64

	for seed := uint64(1); seed <= seeds; seed++ {
		b := newTestBandit(seed)
		require.NoError(t, b.InitializeFromEmbeddings(uniformArms(numArms), []float32{1, 0, 0}))

		var early, late int
		for round := 1; round <= rounds; round++ {
			idx, err := b.SelectCandidate()
			require.NoError(t, err)

			reward := 0.0
			if idx == rewarded {
				reward = 1.0
			}
			require.NoError(t, b.Update(idx, reward))

			if round <= 20 && idx == rewarded {
				early++
			}
			if round > 80 && idx == rewarded {
				late++
			}
		}

		earlyTotal += float64(early) / 20
		lateTotal += float64(late) / 20
	}

	assert.GreaterOrEqual(t, lateTotal/seeds, earlyTotal/seeds,
		"late-window selection rate should not fall below the early window")
}

func TestSelectionThroughput(t *testing.T) {
	b := newTestBandit(42)
	require.NoError(t, b.InitializeFromEmbeddings(uniformArms(50), []float32{1, 0, 0}))

	start := time.Now()
	for i := 0; i < 100; i++ {
		_, err := b.SelectCandidate()
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDeterministicWithFixedSeed(t *testing.T) {
	run := func() []int {
		b := newTestBandit(99)
		_ = b.InitializeFromEmbeddings(uniformArms(10), []float32{1, 0, 0})
		out := make([]int, 20)
		for i := range out {
			idx, _ := b.SelectCandidate()
			out[i] = idx
			_ = b.Update(idx, 0.5)
		}
		return out
	}

	assert.Equal(t, run(), run())
}
