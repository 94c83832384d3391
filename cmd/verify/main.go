// Package main recomputes stored Kundali charts from their embedded
// birth inputs and prints a divergence report. A clean run is the
// operational check that the stored documents match the current engine.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"kundali-engine/internal/config"
	"kundali-engine/internal/engine"
	"kundali-engine/internal/reporting"
	"kundali-engine/internal/storage"
	"kundali-engine/internal/storage/migrations"
	pgstore "kundali-engine/internal/storage/postgres"
	"kundali-engine/internal/verification"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string holding the stored charts (required)")
	chartID := flag.String("chart-id", "", "Verify a single chart instead of the whole store")
	configPath := flag.String("config", "kundali.yaml", "YAML config file")
	outputJSON := flag.Bool("json", false, "Output the report as JSON instead of Markdown")
	resume := flag.Bool("resume", false, "Skip charts already recorded in the verification ledger")
	migrate := flag.Bool("migrate", false, "Run database migrations before verifying")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	// Setup structured logger
	logCfg := zap.NewProductionConfig()
	if *verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if *postgresDSN == "" {
		*postgresDSN = cfg.Storage.PostgresDSN
	}
	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required: verification reads previously stored charts")
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatal("connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if *migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatal("run postgres migrations", zap.Error(err))
		}
	}

	store := pgstore.NewKundaliStore(pool)
	ledger := pgstore.NewVerificationLedger(pool)

	// The verifying engine gets no cache: every chart must be recomputed
	// from scratch. Policies still come from the config so the recompute
	// matches how the charts were produced.
	eng := engine.New(engine.Options{
		Ayanamsa:         cfg.Engine.Ayanamsa,
		Logger:           logger,
		Factors:          cfg.Engine.Factors,
		SkipNavamsaYogas: !cfg.NavamsaYogaRerun(),
	})

	verifier := verification.NewRecomputeVerifier(verification.RecomputeVerifierOptions{
		Store:  store,
		Engine: eng,
	})

	var report *verification.Report
	if *chartID != "" {
		result, err := verifier.VerifyChart(ctx, *chartID)
		if err != nil {
			logger.Fatal("verify chart", zap.String("chart_id", *chartID), zap.Error(err))
		}
		report = &verification.Report{TotalCharts: 1, Results: []verification.Result{*result}}
		if result.Match {
			report.MatchedCharts = 1
		} else {
			report.DivergentCharts = 1
		}
		recordOutcome(ctx, ledger, result, logger)
	} else {
		report, err = verifyStore(ctx, verifier, store, ledger, *resume, logger)
		if err != nil {
			logger.Fatal("verify charts", zap.Error(err))
		}
	}

	// Output report
	if *outputJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Fatal("encode report", zap.Error(err))
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(reporting.RenderVerification(report))
	}

	if report.DivergentCharts > 0 {
		os.Exit(1)
	}
}

// verifyStore walks every stored chart, skipping ledger-verified charts
// when resume is on, and records each completed outcome so an
// interrupted pass can pick up where it stopped.
func verifyStore(ctx context.Context, verifier *verification.RecomputeVerifier, store storage.KundaliStore, ledger storage.VerificationLedger, resume bool, logger *zap.Logger) (*verification.Report, error) {
	ids, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}

	skip := make(map[string]bool)
	if resume {
		verified, err := ledger.LoadVerified(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ledger: %w", err)
		}
		for _, id := range verified {
			skip[id] = true
		}
		logger.Info("resuming verification",
			zap.Int("stored", len(ids)),
			zap.Int("already_verified", len(skip)))
	}

	report := &verification.Report{}
	for _, id := range ids {
		if skip[id] {
			continue
		}

		report.TotalCharts++

		result, err := verifier.VerifyChart(ctx, id)
		if err != nil {
			// Record the failure and keep going. The chart is not marked
			// verified, so a later pass retries it.
			logger.Warn("verify chart", zap.String("chart_id", id), zap.Error(err))
			report.DivergentCharts++
			report.Results = append(report.Results, verification.Result{
				ChartID: id,
				Match:   false,
				Divergences: []verification.FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			continue
		}

		if result.Match {
			report.MatchedCharts++
		} else {
			report.DivergentCharts++
			logger.Warn("chart diverged",
				zap.String("chart_id", id),
				zap.Int("fields", len(result.Divergences)))
		}
		report.Results = append(report.Results, *result)

		recordOutcome(ctx, ledger, result, logger)
	}

	return report, nil
}

// recordOutcome writes one verification result to the ledger. Ledger
// failures are logged, not fatal.
func recordOutcome(ctx context.Context, ledger storage.VerificationLedger, result *verification.Result, logger *zap.Logger) {
	rec := &storage.VerificationRecord{
		ChartID:     result.ChartID,
		Clean:       result.Match,
		Divergences: len(result.Divergences),
		VerifiedAt:  time.Now().UTC(),
	}
	if err := ledger.MarkVerified(ctx, rec); err != nil {
		logger.Warn("record verification",
			zap.String("chart_id", result.ChartID),
			zap.Error(err))
	}
}
