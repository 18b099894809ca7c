// Package export encodes simulation results for interchange with external
// tools.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/breezelabs/turbine-sim/internal/domain"
)

// csvHeader is a compatibility surface: downstream spreadsheets and analysis
// scripts key on these exact names and this exact order.
var csvHeader = []string{"Wind_Speed_m_s", "Power_Output_W", "Power_Output_kW", "Operating_Status"}

// WriteCSV encodes the full sample population as CSV with a header row, one
// row per sample in population order. The operating status column uses the
// inclusive cut-in ≤ v ≤ cut-out label, not the strict gating applied to
// power output; see the domain package doc for the distinction.
func WriteCSV(w io.Writer, result domain.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, speed := range result.WindSpeeds {
		power := result.PowerOutputs[i]
		row := []string{
			formatFloat(speed),
			formatFloat(power),
			formatFloat(power / 1_000),
			domain.OperatingStatus(speed, result.Params.Limits),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// formatFloat uses the shortest representation that round-trips, so exports
// preserve the simulated values exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
