package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofsight/mixsim/internal/driver"
)

func TestFormatProbability(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.08833333333333333, "0.088333"},
		{1.0, "1.000000"},
		{0.0, "0.000000"},
		{0.049242424242424246, "0.049242"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatProbability(tt.in))
	}
}

func sampleSeries() *driver.Series {
	return &driver.Series{Samples: []driver.Sample{
		{Hour: 1, AnonymitySet: 5, Deposits: 4, SyntheticTotal: 6, Linkability: 0.08833333333333333},
		{Hour: 2, AnonymitySet: 7, Deposits: 2, SyntheticTotal: 9, Linkability: 0.063095},
		{Hour: 3, AnonymitySet: 8, Deposits: 1, SyntheticTotal: 11, Linkability: 0.055208},
	}}
}

func TestFormatter_WriteSeries_EveryHour(t *testing.T) {
	var buf strings.Builder
	f := &Formatter{Writer: &buf, Every: 1}

	require.NoError(t, f.WriteSeries(sampleSeries()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Hour 1: Users=5, P(link)=0.088333", lines[0])
	assert.Equal(t, "Hour 2: Users=7, P(link)=0.063095", lines[1])
	assert.Equal(t, "Hour 3: Users=8, P(link)=0.055208", lines[2])
	assert.Equal(t, "Final state: 8 users, 11 synthetic txs, max P(link)=0.088333", lines[3])
}

func TestFormatter_WriteSeries_SkipsPerCadence(t *testing.T) {
	var buf strings.Builder
	f := &Formatter{Writer: &buf, Every: 2}

	require.NoError(t, f.WriteSeries(sampleSeries()))

	out := buf.String()
	assert.Contains(t, out, "Hour 1:")
	assert.NotContains(t, out, "Hour 2:")
	assert.Contains(t, out, "Hour 3:")
	assert.Contains(t, out, "Final state:")
}

func TestFormatter_WriteSeries_Empty(t *testing.T) {
	var buf strings.Builder
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.WriteSeries(&driver.Series{}))
	assert.Equal(t, "No samples recorded.\n", buf.String())
}

func TestMarshalSeries_Canonical(t *testing.T) {
	series := &driver.Series{Samples: []driver.Sample{
		{Hour: 1, AnonymitySet: 5, Deposits: 4, SyntheticTotal: 6, Linkability: 0.08833333333333333},
	}}

	data, err := MarshalSeries("single-burst", series)
	require.NoError(t, err)

	want := `{"samples":[{"anonymity_set":5,"deposits":4,"hour":1,"p_link":"0.088333","synthetic_total":6}],"scenario":"single-burst"}`
	assert.Equal(t, want, string(data))
}

func TestMarshalSeries_Deterministic(t *testing.T) {
	series := sampleSeries()

	first, err := MarshalSeries("s", series)
	require.NoError(t, err)
	second, err := MarshalSeries("s", series)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
