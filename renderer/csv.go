package renderer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/etnz/attribution"
)

// WriteCSV exports the per-period attribution table as CSV, one row per
// ticker with weight, return and contribution columns per period plus the
// YTD columns. Values are raw fractions, not formatted percentages, so the
// file feeds spreadsheets without re-parsing.
func WriteCSV(w io.Writer, report *attribution.Report) error {
	cw := csv.NewWriter(w)

	header := []string{"Ticker"}
	for _, p := range report.Periods {
		end := p.To.String()
		header = append(header, end+" weight", end+" return", end+" contribution")
	}
	header = append(header, "YTD return", "YTD contribution")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{row.Ticker}
		for _, cell := range row.Cells {
			record = append(record, ftoa(cell.Weight), ftoa(cell.Return), ftoa(cell.Contribution))
		}
		record = append(record, ftoa(row.YTDReturn), ftoa(row.YTDContribution))
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
