package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteDispatchCSV writes one year's hourly dispatch ledger: a row per
// snapshot with per-fuel MW, total generation and total demand.
func WriteDispatchCSV(path string, yr YearResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	fuels := yr.Fuels()
	header := []string{"index", "timestamp"}
	header = append(header, fuels...)
	header = append(header, "total_generation_mw", "total_demand_mw")
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range yr.Snapshots {
		row := []string{
			strconv.Itoa(i),
			fmtTime(yr.Snapshots[i]),
		}
		for _, fuel := range fuels {
			row = append(row, fmtFloat(yr.GenByFuel[fuel][i]))
		}
		row = append(row, fmtFloat(yr.TotalGenerationAt(i)), fmtFloat(yr.Demand[i]))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
