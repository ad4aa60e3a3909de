// Package cmd - report command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DaniloReis10/TarifadorTest-sub000/core/engine"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/report"
	"github.com/DaniloReis10/TarifadorTest-sub000/core/types"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/config"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
	"github.com/DaniloReis10/TarifadorTest-sub000/store/sqlite"
)

var (
	dbPath       string
	policyPath   string
	monthFlag    string
	startFlag    string
	endFlag      string
	orgID        int64
	companyID    int64
	outputFormat string
	parallel     bool
	withUst      bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the billing report for a period",
	Long: `Rate the period's call records and equipment inventory and print
the aggregated report.

Examples:
  tarifador report --month 2024-06 --policy policy.yml
  tarifador report --month 2024-06 --org 3 --format csv > june.csv
  tarifador report --start 2024-06-01 --end 2024-06-30 --format json`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&dbPath, "db", "", "billing database path (defaults from config)")
	reportCmd.Flags().StringVar(&policyPath, "policy", "", "rating policy document (defaults from config)")
	reportCmd.Flags().StringVar(&monthFlag, "month", "", "billing month (YYYY-MM)")
	reportCmd.Flags().StringVar(&startFlag, "start", "", "period start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&endFlag, "end", "", "period end (YYYY-MM-DD)")
	reportCmd.Flags().Int64Var(&orgID, "org", 0, "restrict to one organization")
	reportCmd.Flags().Int64Var(&companyID, "company", 0, "restrict to one company")
	reportCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, json, csv)")
	reportCmd.Flags().BoolVar(&parallel, "parallel", false, "fold company shards in parallel")
	reportCmd.Flags().BoolVar(&withUst, "ust", true, "derive the UST view")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	if dbPath == "" {
		dbPath = cfg.Store.DatabasePath
	}
	if policyPath == "" {
		policyPath = cfg.Report.PolicyPath
	}

	period, err := resolvePeriod()
	if err != nil {
		return err
	}

	policy, err := config.LoadPolicy(policyPath)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logging.Info("loading report inputs")
	req, err := store.BuildRequest(ctx, period, sqlite.Scope{OrganizationID: orgID, CompanyID: companyID}, policy)
	if err != nil {
		return err
	}
	req.Parallel = parallel
	req.WithUst = withUst

	tree, err := engine.New().Run(ctx, req)
	if err != nil {
		return err
	}

	rpt := report.Assemble(tree)
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rpt)
	case "csv":
		return report.WriteCSV(os.Stdout, rpt)
	default:
		printTable(rpt)
		return nil
	}
}

func resolvePeriod() (types.Period, error) {
	if monthFlag != "" {
		parts := strings.SplitN(monthFlag, "-", 2)
		if len(parts) != 2 {
			return types.Period{}, fmt.Errorf("bad --month %q, want YYYY-MM", monthFlag)
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return types.Period{}, fmt.Errorf("bad --month %q, want YYYY-MM", monthFlag)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return types.Period{}, fmt.Errorf("bad --month %q, want YYYY-MM", monthFlag)
		}
		return types.MonthPeriod(year, time.Month(month)), nil
	}

	start, err := time.Parse("2006-01-02", startFlag)
	if err != nil {
		return types.Period{}, fmt.Errorf("bad --start %q, want YYYY-MM-DD", startFlag)
	}
	end, err := time.Parse("2006-01-02", endFlag)
	if err != nil {
		return types.Period{}, fmt.Errorf("bad --end %q, want YYYY-MM-DD", endFlag)
	}
	return types.NewPeriod(start, end)
}

func printTable(rpt *report.Report) {
	fmt.Printf("Billing report %s\n", rpt.Period)
	for _, org := range rpt.Organizations {
		fmt.Printf("\n%s\n", org.Name)
		for _, company := range org.Companies {
			fmt.Printf("  %s\n", company.Name)
			for _, section := range company.Sections {
				fmt.Printf("    %s\n", section.Title)
				for _, row := range section.Rows {
					printRow("      ", row)
				}
				printRow("      ", section.Total)
			}
			printRow("    ", company.GrandTotal)
		}
		printRow("  ", org.GrandTotal)
	}
	printRow("", rpt.GrandTotal)
}

func printRow(indent string, row report.Row) {
	fmt.Printf("%s%-36s %8d %10ds  R$ %12s  UST %12s\n",
		indent, truncate(row.Label, 36), row.Count, row.DurationSeconds,
		row.Cost.StringFixed(2), row.CostUst.StringFixed(4))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
