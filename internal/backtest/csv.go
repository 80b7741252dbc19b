package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var ledgerHeader = []string{
	"index",
	"date",
	"irradiance_wh_m2",
	"sunshine_hours",
	"yield_wh",
	"target_wh",
	"surplus_wh",
	"stored_wh",
	"self_sufficient",
	"excess_wh",
	"deficit_wh",
	"savings_wh",
	"cum_excess_wh",
	"cum_deficit_wh",
}

func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeLedgerCSV(f, ledger); err != nil {
		return err
	}
	return f.Close()
}

// WriteResultCSV writes one <year>.csv per year into dir.
func WriteResultCSV(dir string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(res.Years))
	for _, yr := range res.Years {
		p := filepath.Join(dir, fmt.Sprintf("%d.csv", yr.Stats.Year))
		if err := WriteLedgerCSV(p, yr.Ledger); err != nil {
			return paths, fmt.Errorf("year %d: %w", yr.Stats.Year, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func EncodeLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtDate(r.Date),
			fmtFloat(r.IrradianceWhM2),
			fmtFloat(r.SunshineHours),
			fmtFloat(r.YieldWh),
			fmtFloat(r.TargetWh),
			fmtFloat(r.SurplusWh),
			fmtFloat(r.StoredWh),
			strconv.FormatBool(r.SelfSufficient),
			fmtFloat(r.ExcessWh),
			fmtFloat(r.DeficitWh),
			fmtFloat(r.SavingsWh),
			fmtFloat(r.CumExcessWh),
			fmtFloat(r.CumDeficitWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
