package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zebra": 1,
		"apple": 2,
		"mango": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":3,"zebra":1}`, string(data))
}

func TestMarshalCanonical_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", `"hello"`},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("a<b&c>d")
	require.NoError(t, err)
	assert.Equal(t, `"a<b&c>d"`, string(data))
}

func TestMarshalCanonical_RejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(0.088333)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"p": 0.5})
	assert.Error(t, err)
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)
}

func TestMarshalCanonical_NestedArrays(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"samples": []any{
			map[string]any{"hour": int64(1), "p_link": "0.088333"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"samples":[{"hour":1,"p_link":"0.088333"}]}`, string(data))
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	in := map[string]any{"b": 1, "a": []any{"x", "y"}, "c": true}

	first, err := MarshalCanonical(in)
	require.NoError(t, err)
	second, err := MarshalCanonical(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
