package scenario_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KasperOmsK/pipette/internal/dataset"
	"github.com/KasperOmsK/pipette/internal/logging"
	"github.com/KasperOmsK/pipette/internal/scenario"
	"github.com/KasperOmsK/pipette/maybe"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestEvenTuple(t *testing.T) {
	got, err := scenario.EvenTuple()

	require.NoError(t, err)
	require.Equal(t, [1]int{2}, got)
}

func TestTopActiveValue(t *testing.T) {
	top, err := scenario.TopActiveValue(dataset.Default(), 10)

	require.NoError(t, err)
	require.Equal(t, maybe.Some(90), top)
}

func TestTopActiveValue_Edges(t *testing.T) {
	inactive := []dataset.Item{{ID: 1, Value: 99, Active: false}}

	top, err := scenario.TopActiveValue(inactive, 10)
	require.NoError(t, err)
	require.True(t, top.IsNone())

	top, err = scenario.TopActiveValue(dataset.Default(), 0)
	require.NoError(t, err)
	require.True(t, top.IsNone())

	require.Panics(t, func() {
		_, _ = scenario.TopActiveValue(dataset.Default(), -1)
	})
}

func TestTraverseNested(t *testing.T) {
	flat, err := scenario.TraverseNested()

	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, flat)
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(logging.Config{Level: "debug", Format: "json"}, &buf, "scenario")

	report, err := scenario.Run(log, dataset.Default(), 10)

	require.NoError(t, err)
	require.Equal(t, [1]int{2}, report.Even)
	require.Equal(t, maybe.Some(90), report.Top)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, report.Flat)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], `"top":90`)
}

func TestRun_Quiet(t *testing.T) {
	_, err := scenario.Run(zerolog.Nop(), dataset.Default(), 1)

	require.NoError(t, err)
}
