package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"catalog-sim/config"
	"catalog-sim/models"
	"catalog-sim/services"
	"catalog-sim/storage"
	"catalog-sim/utils"
)

var sinksFlag string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulates a daily time series for every catalog product and writes it to the configured sinks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("sinks") {
			cfg.Sinks = config.ParseSinks(sinksFlag)
		}
		return runSimulate(cfg, logger)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "catalog CSV to read")
	f.StringVar(&cfg.OutputPath, "out", cfg.OutputPath, "time series CSV to write")
	f.IntVar(&cfg.Days, "days", cfg.Days, "simulation horizon in days")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one from the clock)")
	f.IntVar(&cfg.MaxConcurrency, "workers", cfg.MaxConcurrency, "products simulated in parallel")
	f.StringVar(&sinksFlag, "sinks", strings.Join(cfg.Sinks, ","), "comma separated sinks: csv, postgres, sqlite")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Catalog simulation starting ===")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Config: catalog: %s | days: %d | seed: %d | workers: %d | sinks: %s",
		cfg.CatalogPath, cfg.Days, seed, cfg.MaxConcurrency, strings.Join(cfg.Sinks, ","))

	if len(cfg.Sinks) == 0 {
		return fmt.Errorf("no sinks configured")
	}

	catalog, err := storage.ReadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to read catalog: %v", err)
		return err
	}
	if len(catalog) == 0 {
		logger.Error("Catalog %s has no products. Exiting.", cfg.CatalogPath)
		return fmt.Errorf("empty catalog")
	}
	logger.Info("Loaded %d catalog products", len(catalog))

	sim := services.NewSimulator(logger, services.SimulatorOptions{
		Days:        cfg.Days,
		Concurrency: cfg.MaxConcurrency,
	})
	rows, err := sim.Run(catalog, rand.New(rand.NewSource(seed)))
	if err != nil {
		logger.Error("Simulation failed: %v", err)
		return err
	}

	sinks, err := openSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				logger.Warn("Closing %s sink: %v", s.name, err)
			}
		}
	}()

	var failed []string
	for _, s := range sinks {
		if err := s.Write(rows); err != nil {
			logger.Error("%s write failed: %v", s.name, err)
			failed = append(failed, s.name)
			continue
		}
		logger.Info("Wrote %d rows to %s", len(rows), s.name)
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(os.Stdout, insightSvc.Generate(rows, ""))

	if len(failed) > 0 {
		return fmt.Errorf("sinks failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

type namedSink struct {
	name string
	storage.TimeSeriesWriter
}

func openSinks(cfg *config.Config, logger *utils.Logger) ([]namedSink, error) {
	var sinks []namedSink
	closeAll := func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}

	for _, name := range cfg.Sinks {
		var (
			w   storage.TimeSeriesWriter
			err error
		)
		switch name {
		case config.SinkCSV:
			w, err = storage.NewCSVWriter(cfg.OutputPath)
		case config.SinkPostgres:
			w, err = storage.NewPostgresWriter(cfg.DSN(), cfg.TableName, &utils.RetryConfig{
				MaxAttempts: cfg.MaxRetries,
				BaseDelay:   2 * time.Second,
				Logger:      logger,
			})
		case config.SinkSQLite:
			w, err = storage.NewSQLiteWriter(cfg.SQLitePath, cfg.TableName)
		default:
			err = fmt.Errorf("unknown sink %q", name)
		}
		if err != nil {
			logger.Error("Failed to open %s sink: %v", name, err)
			closeAll()
			return nil, err
		}
		sinks = append(sinks, namedSink{name: name, TimeSeriesWriter: w})
	}
	return sinks, nil
}

// loadRows reads a previously simulated dataset from the named source.
func loadRows(cfg *config.Config, source string) ([]*models.DailySimRow, error) {
	switch source {
	case config.SinkCSV:
		return storage.ReadTimeSeries(cfg.OutputPath)
	case config.SinkSQLite:
		sw, err := storage.NewSQLiteWriter(cfg.SQLitePath, cfg.TableName)
		if err != nil {
			return nil, err
		}
		defer sw.Close()
		return sw.FetchAll()
	case config.SinkPostgres:
		pw, err := storage.NewPostgresWriter(cfg.DSN(), cfg.TableName, &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		defer pw.Close()
		return pw.FetchAll()
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}
