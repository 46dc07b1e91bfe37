package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synoptic-core/synoptic/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c, err := config.New()
	require.NoError(t, err)
	require.True(t, c.UseFSMChecker())
	require.False(t, c.NoRefinement())
	require.False(t, c.NoCoarsening())
	require.Equal(t, 1, c.KTailsK())
}

func TestNew_AppliesOptions(t *testing.T) {
	t.Parallel()

	c, err := config.New(
		config.WithNoRefinement(true),
		config.WithKTailsK(3),
		config.WithRandomSeed(42),
	)
	require.NoError(t, err)
	require.True(t, c.NoRefinement())
	require.Equal(t, 3, c.KTailsK())
	require.Equal(t, int64(42), c.RandomSeed())
}

func TestWithKTailsK_RejectsNegative(t *testing.T) {
	t.Parallel()

	_, err := config.New(config.WithKTailsK(-1))
	require.ErrorIs(t, err, config.ErrOptionViolation)
}

func TestWithKTailsK_AcceptsZero(t *testing.T) {
	t.Parallel()

	c, err := config.New(config.WithKTailsK(0))
	require.NoError(t, err)
	require.Equal(t, 0, c.KTailsK())
}

func TestRNG_DeterministicForSameSeed(t *testing.T) {
	t.Parallel()

	c1, err := config.New(config.WithRandomSeed(7))
	require.NoError(t, err)
	c2, err := config.New(config.WithRandomSeed(7))
	require.NoError(t, err)

	r1, r2 := c1.RNG(), c2.RNG()
	for i := 0; i < 10; i++ {
		require.Equal(t, r1.Int63(), r2.Int63())
	}
}

func TestDeriveRNG_DifferentStreamsDiverge(t *testing.T) {
	t.Parallel()

	base, err := config.New(config.WithRandomSeed(7))
	require.NoError(t, err)

	r1 := config.DeriveRNG(base.RNG(), 1)
	r2 := config.DeriveRNG(base.RNG(), 2)
	require.NotEqual(t, r1.Int63(), r2.Int63())
}

func TestShuffleInPlace_PreservesElements(t *testing.T) {
	t.Parallel()

	c, err := config.New(config.WithRandomSeed(3))
	require.NoError(t, err)

	a := []int{1, 2, 3, 4, 5}
	config.ShuffleInPlace(a, c.RNG())
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5}, a)
}

func TestYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	c, err := config.New(config.WithKTailsK(4), config.WithNoCoarsening(true), config.WithRandomSeed(99))
	require.NoError(t, err)

	data, err := c.MarshalYAML()
	require.NoError(t, err)

	loaded, err := config.LoadYAML(data)
	require.NoError(t, err)
	require.Equal(t, c.KTailsK(), loaded.KTailsK())
	require.Equal(t, c.NoCoarsening(), loaded.NoCoarsening())
	require.Equal(t, c.RandomSeed(), loaded.RandomSeed())
}
