package event_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/synoptic-core/synoptic/event"
)

func TestVectorTime_Compare(t *testing.T) {
	t.Parallel()

	a := event.VectorTime{1, 0, 0}
	b := event.VectorTime{1, 1, 0}
	c := event.VectorTime{0, 1, 1}

	require.Equal(t, -1, a.Compare(b), "a strictly precedes b")
	require.Equal(t, 1, b.Compare(a), "b strictly follows a")
	require.Equal(t, 0, a.Compare(c), "a and c are concurrent")
	require.Equal(t, 0, a.Compare(a), "a equals itself")
}

func TestVectorTime_Delta(t *testing.T) {
	t.Parallel()

	a := event.VectorTime{1, 2, 3}
	b := event.VectorTime{4, 0, 3}
	require.Equal(t, event.TimeDelta{Value: 3 + 2 + 0}, a.Delta(b))
}

func TestIntTime_Compare(t *testing.T) {
	t.Parallel()

	a := event.IntTime(5)
	b := event.IntTime(9)
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}

func TestTime_MustSameKind_Panics(t *testing.T) {
	t.Parallel()

	a := event.IntTime(1)
	b := event.FloatTime(1)
	require.Panics(t, func() { a.Compare(b) })
}
