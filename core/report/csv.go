// Package report - CSV export
package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the fixed column set consumed by spreadsheet imports
var csvHeader = []string{
	"organization", "company", "section", "item",
	"count", "duration_seconds",
	"unit_price", "unit_price_ust", "cost", "cost_ust",
}

// WriteCSV renders the assembled report as flat CSV, one row per item
// plus section totals and grand totals. Row order follows the
// assembler's deterministic ordering.
func WriteCSV(w io.Writer, rpt *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, org := range rpt.Organizations {
		for _, company := range org.Companies {
			for _, section := range company.Sections {
				for _, row := range section.Rows {
					if err := cw.Write(csvRecord(org.Name, company.Name, section.Title, row)); err != nil {
						return err
					}
				}
				if err := cw.Write(csvRecord(org.Name, company.Name, section.Title, section.Total)); err != nil {
					return err
				}
			}
			if err := cw.Write(csvRecord(org.Name, company.Name, "", company.GrandTotal)); err != nil {
				return err
			}
		}
		if err := cw.Write(csvRecord(org.Name, "", "", org.GrandTotal)); err != nil {
			return err
		}
	}
	if err := cw.Write(csvRecord("", "", "", rpt.GrandTotal)); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(org, company, section string, row Row) []string {
	return []string{
		org, company, section, row.Label,
		strconv.FormatInt(row.Count, 10),
		strconv.FormatInt(row.DurationSeconds, 10),
		row.UnitPrice.String(),
		row.UnitPriceUst.String(),
		row.Cost.String(),
		row.CostUst.String(),
	}
}
