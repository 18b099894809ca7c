package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezelabs/turbine-sim/internal/domain"
)

func testResult() domain.Result {
	params := domain.DefaultParams()
	params.Samples = 4

	// Speeds chosen to hit both boundary labels: 3 and 25 are inclusive
	// operating, 2.5 and 26 are idle.
	return domain.Result{
		Params:       params,
		WindSpeeds:   []float64{2.5, 3, 25, 26},
		PowerOutputs: []float64{0, 100_000.5, 2_000_000, 0},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testResult()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "header plus one row per sample")

	assert.Equal(t, []string{"Wind_Speed_m_s", "Power_Output_W", "Power_Output_kW", "Operating_Status"}, rows[0])

	assert.Equal(t, []string{"2.5", "0", "0", "Idle"}, rows[1])
	assert.Equal(t, []string{"3", "100000.5", "100.0005", "Operating"}, rows[2])
	assert.Equal(t, []string{"25", "2e+06", "2000", "Operating"}, rows[3])
	assert.Equal(t, []string{"26", "0", "0", "Idle"}, rows[4])
}

func TestWriteCSV_RoundTripsValues(t *testing.T) {
	result := testResult()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	for i, row := range rows[1:] {
		speed, err := strconv.ParseFloat(row[0], 64)
		require.NoError(t, err)
		power, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)

		assert.Equal(t, result.WindSpeeds[i], speed, "row %d speed must round-trip exactly", i+1)
		assert.Equal(t, result.PowerOutputs[i], power, "row %d power must round-trip exactly", i+1)
	}
}

func TestWriteCSV_PreservesPopulationOrder(t *testing.T) {
	result := testResult()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	for i, row := range rows[1:] {
		speed, _ := strconv.ParseFloat(row[0], 64)
		assert.Equal(t, result.WindSpeeds[i], speed)
	}
}

func TestWriteCSV_EmptyPopulation(t *testing.T) {
	result := testResult()
	result.WindSpeeds = nil
	result.PowerOutputs = nil

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}
