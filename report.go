package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"catalog-sim/config"
	"catalog-sim/models"
	"catalog-sim/services"
	"catalog-sim/utils"
)

var (
	reportSource   string
	reportCategory string
	reportProduct  string
	reportPeriod   string
	reportTop      int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Prints insights and an optional pricing simulation for a generated dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("from") {
			reportSource = defaultSource(cfg)
		}
		rows, err := loadRows(cfg, reportSource)
		if err != nil {
			logger.Error("Failed to load dataset from %s: %v", reportSource, err)
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("dataset from %s is empty", reportSource)
		}
		logger.Info("Loaded %d rows from %s", len(rows), reportSource)

		svc := services.NewInsightService(logger)
		report := svc.Generate(rows, reportCategory)
		svc.Print(os.Stdout, report)

		scoped := filterCategory(rows, reportCategory)
		svc.PrintTrend(os.Stdout, svc.Trend(scoped, report.TopByShare))
		leaders, err := svc.TopSellers(scoped, reportPeriod, reportTop)
		if err != nil {
			return err
		}
		svc.PrintTopSellers(os.Stdout, reportPeriod, leaders)

		if reportProduct == "" {
			return nil
		}
		sim, err := svc.OptimizePrice(rows, resolveProductID(rows, reportProduct), cfg.PriceElasticity)
		if err != nil {
			return err
		}
		svc.PrintSimulation(os.Stdout, sim)
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportSource, "from", "", "dataset source: csv, sqlite or postgres (default: the configured sinks)")
	f.StringVar(&cfg.OutputPath, "in", cfg.OutputPath, "time series CSV when --from=csv")
	f.StringVar(&reportCategory, "category", "", "only report on this category")
	f.StringVar(&reportPeriod, "period", services.PeriodWeek, "top seller rollup period: day, week or month")
	f.IntVar(&reportTop, "top", 3, "top sellers listed per period")
	f.StringVar(&reportProduct, "product", "", "product id or exact title to run the pricing optimizer for")
	f.Float64Var(&cfg.PriceElasticity, "elasticity", cfg.PriceElasticity, "price elasticity of demand")
	rootCmd.AddCommand(reportCmd)
}

func filterCategory(rows []*models.DailySimRow, category string) []*models.DailySimRow {
	if category == "" {
		return rows
	}
	var out []*models.DailySimRow
	for _, r := range rows {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// resolveProductID accepts either a product id present in rows or a title.
func resolveProductID(rows []*models.DailySimRow, s string) string {
	ids := utils.NewKeySet()
	for _, r := range rows {
		ids.Add(r.ProductID)
	}
	if ids.Contains(s) {
		return s
	}
	return services.ProductID(s)
}

// defaultSource picks the dataset the last simulate run wrote: the CSV file
// when that sink is enabled, else the first configured database sink.
func defaultSource(cfg *config.Config) string {
	if cfg.HasSink(config.SinkCSV) || len(cfg.Sinks) == 0 {
		return config.SinkCSV
	}
	return cfg.Sinks[0]
}
