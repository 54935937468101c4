package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofsight/mixsim/internal/traffic"
)

func TestNewUniformSource_Validation(t *testing.T) {
	_, err := NewUniformSource(1, -1, 5)
	require.Error(t, err)
	assert.True(t, traffic.IsInvalidArgument(err))

	_, err = NewUniformSource(1, 5, 4)
	require.Error(t, err)
	assert.True(t, traffic.IsInvalidArgument(err))
}

func TestUniformSource_Bounds(t *testing.T) {
	src, err := NewUniformSource(42, 1, 5)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		n := src.Next()
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 5)
	}
}

func TestUniformSource_Reproducible(t *testing.T) {
	a, err := NewUniformSource(7, 1, 5)
	require.NoError(t, err)
	b, err := NewUniformSource(7, 1, 5)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next(), "same seed should produce same draws")
	}
}

func TestUniformSource_DegenerateRange(t *testing.T) {
	src, err := NewUniformSource(1, 3, 3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 3, src.Next())
	}
}

func TestFixedSource_ReturnsInOrder(t *testing.T) {
	src := NewFixedSource(4, 0, 2)

	assert.Equal(t, 3, src.Len())
	assert.Equal(t, 4, src.Next())
	assert.Equal(t, 0, src.Next())
	assert.Equal(t, 2, src.Next())
}

func TestFixedSource_PanicsWhenExhausted(t *testing.T) {
	src := NewFixedSource(1)
	src.Next()

	assert.Panics(t, func() { src.Next() })
}
