package simulation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezelabs/turbine-sim/internal/domain"
	"github.com/breezelabs/turbine-sim/internal/observability"
	"github.com/breezelabs/turbine-sim/internal/simulation"
)

// fixedSource replays a predetermined population, repeating the pattern to
// fill the requested count.
type fixedSource struct {
	speeds []float64
}

func (f *fixedSource) Sample(count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = f.speeds[i%len(f.speeds)]
	}
	return out
}

// fixedFactory returns the same source for every run and counts invocations.
type fixedFactory struct {
	source *fixedSource
	calls  int
}

func (f *fixedFactory) new(_, _ float64) simulation.WindSource {
	f.calls++
	return f.source
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testParams(samples int) domain.SimulationParams {
	p := domain.DefaultParams()
	p.Samples = samples
	return p
}

func newTestRunner(factory *fixedFactory, workers, maxSamples int) *simulation.Runner {
	return simulation.NewRunner(factory.new, discardLogger(), observability.NewMetricsForTesting(), workers, maxSamples)
}

func TestRunner_Run(t *testing.T) {
	speeds := []float64{1, 3, 7, 20, 26}
	factory := &fixedFactory{source: &fixedSource{speeds: speeds}}
	runner := newTestRunner(factory, 0, 0)

	params := testParams(len(speeds))
	result, err := runner.Run(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.WindSpeeds, len(speeds))
	require.Len(t, result.PowerOutputs, len(speeds))
	assert.Equal(t, speeds, result.WindSpeeds)

	// Element-wise contract: below cut-in and above cut-out are zero, the
	// rest are the clipped power curve.
	assert.Equal(t, 0.0, result.PowerOutputs[0], "1 m/s is below cut-in")
	assert.Positive(t, result.PowerOutputs[1], "exactly at cut-in is operating")
	assert.InEpsilon(t, 601_480, result.PowerOutputs[2], 0.001, "7 m/s is unclamped")
	assert.Equal(t, params.Turbine.RatedPower, result.PowerOutputs[3], "20 m/s clamps to rated")
	assert.Equal(t, 0.0, result.PowerOutputs[4], "26 m/s is above cut-out")

	for _, p := range result.PowerOutputs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, params.Turbine.RatedPower)
	}

	assert.GreaterOrEqual(t, result.Metrics.CapacityFactor, 0.0)
	assert.LessOrEqual(t, result.Metrics.CapacityFactor, 1.0)
	assert.NotEmpty(t, result.RunID)
	assert.NoError(t, runner.CheckReadiness(context.Background()))
}

func TestRunner_Run_DeterministicForFixedInputs(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	factory := &fixedFactory{source: &fixedSource{speeds: []float64{2.5, 6.25, 13.0, 24.99}}}
	runner := newTestRunner(factory, 0, 0)
	params := testParams(4)

	r1, err := runner.Run(context.Background(), params)
	require.NoError(t, err)
	r2, err := runner.Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, r1, r2, "identical inputs must produce bit-identical results")
}

func TestRunner_Run_RejectsInvalidParamsBeforeSampling(t *testing.T) {
	factory := &fixedFactory{source: &fixedSource{speeds: []float64{5}}}
	runner := newTestRunner(factory, 0, 0)

	params := testParams(100)
	params.Wind.ShapeFactor = -1

	_, err := runner.Run(context.Background(), params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Zero(t, factory.calls, "no sampling may happen for invalid parameters")
	assert.Error(t, runner.CheckReadiness(context.Background()))
}

func TestRunner_Run_RejectsOversizedPopulation(t *testing.T) {
	factory := &fixedFactory{source: &fixedSource{speeds: []float64{5}}}
	runner := newTestRunner(factory, 0, 50_000)

	_, err := runner.Run(context.Background(), testParams(50_001))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "50001")
	assert.Zero(t, factory.calls)

	_, err = runner.Run(context.Background(), testParams(50_000))
	assert.NoError(t, err, "the bound itself is allowed")
}

func TestRunner_Run_ParallelMapMatchesSequential(t *testing.T) {
	// Enough samples to cross the parallel threshold.
	const n = 120_000
	pattern := make([]float64, 101)
	for i := range pattern {
		pattern[i] = float64(i) * 0.3 // 0 .. 30 m/s
	}
	source := &fixedSource{speeds: pattern}

	parallel := newTestRunner(&fixedFactory{source: source}, 8, 0)
	sequential := newTestRunner(&fixedFactory{source: source}, 1, 0)

	params := testParams(n)
	pr, err := parallel.Run(context.Background(), params)
	require.NoError(t, err)
	sr, err := sequential.Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, sr.PowerOutputs, pr.PowerOutputs, "sharded map must be bit-identical to sequential")
	assert.Equal(t, sr.Metrics, pr.Metrics)
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	factory := &fixedFactory{source: &fixedSource{speeds: []float64{5}}}
	runner := newTestRunner(factory, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, testParams(100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
