// Package main computes one Kundali from birth coordinates given on
// the command line: compute, render as Markdown or JSON, optionally
// persist the chart document and its feature vector.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kundali-engine/internal/cache"
	"kundali-engine/internal/config"
	"kundali-engine/internal/dasha"
	"kundali-engine/internal/domain"
	"kundali-engine/internal/engine"
	"kundali-engine/internal/features"
	"kundali-engine/internal/reporting"
	"kundali-engine/internal/storage"
	chstore "kundali-engine/internal/storage/clickhouse"
	"kundali-engine/internal/storage/migrations"
	pgstore "kundali-engine/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Parse flags (env vars as defaults)
	date := flag.String("date", "", "Birth date YYYY-MM-DD (required)")
	clock := flag.String("time", "", "Birth time HH:MM:SS; omit when the clock is unknown")
	lat := flag.String("lat", "", "Birth latitude in degrees, north positive (required)")
	lon := flag.String("lon", "", "Birth longitude in degrees, east positive (required)")
	tz := flag.String("tz", "", "IANA timezone of the birth place (required)")
	configPath := flag.String("config", "kundali.yaml", "YAML config file")
	outputJSON := flag.Bool("json", false, "Output the chart as JSON instead of Markdown")
	featureCSV := flag.Bool("features", false, "Output the feature vector as CSV instead of the chart")
	dashaAt := flag.String("dasha-at", "", "Print the running dasha period for a date (YYYY-MM-DD)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string for chart persistence")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string for feature persistence")
	redisURL := flag.String("redis-url", os.Getenv("REDIS_URL"), "Redis URL for the chart cache")
	migrate := flag.Bool("migrate", false, "Run database migrations before persisting")
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

	// Validate required flags
	if *date == "" || *lat == "" || *lon == "" || *tz == "" {
		logger.Fatal("--date, --lat, --lon and --tz are required")
	}
	if *outputJSON && *featureCSV {
		logger.Fatal("--json and --features are mutually exclusive")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	// Explicit flags win over the config file for shared endpoints.
	if *postgresDSN == "" {
		*postgresDSN = cfg.Storage.PostgresDSN
	}
	if *clickhouseDSN == "" {
		*clickhouseDSN = cfg.Storage.ClickhouseDSN
	}
	if *redisURL == "" {
		*redisURL = cfg.Cache.RedisURL
	}

	input, err := parseBirthInput(*date, *clock, *lat, *lon, *tz)
	if err != nil {
		logger.Fatal("invalid birth input", zap.Error(err))
	}

	var chartCache cache.Cache = cache.NewMemory()
	if *redisURL != "" {
		opts, err := redis.ParseURL(*redisURL)
		if err != nil {
			logger.Fatal("parse redis url", zap.Error(err))
		}
		chartCache = cache.NewRedis(redis.NewClient(opts), cfg.CacheTTL())
	}

	eng := engine.New(engine.Options{
		Ayanamsa:         cfg.Engine.Ayanamsa,
		Cache:            chartCache,
		Logger:           logger,
		Factors:          cfg.Engine.Factors,
		SkipNavamsaYogas: !cfg.NavamsaYogaRerun(),
	})

	ctx := context.Background()

	k, err := eng.Compute(ctx, input)
	if err != nil {
		logger.Fatal("compute kundali",
			zap.String("code", engine.ErrorCode(err)),
			zap.Error(err))
	}

	switch {
	case *featureCSV:
		fv, err := features.Extract(k, time.Now().UTC())
		if err != nil {
			logger.Fatal("extract features", zap.Error(err))
		}
		fmt.Print(reporting.RenderFeatureCSV([]*domain.FeatureVector{&fv}))
	case *outputJSON:
		out, err := json.MarshalIndent(k, "", "  ")
		if err != nil {
			logger.Fatal("encode kundali", zap.Error(err))
		}
		fmt.Println(string(out))
	default:
		fmt.Print(reporting.RenderMarkdown(k))
	}

	// Running-period lookup, human output only
	if *dashaAt != "" && !*outputJSON && !*featureCSV {
		at, err := time.Parse("2006-01-02", *dashaAt)
		if err != nil {
			logger.Fatal("parse dasha-at", zap.Error(err))
		}
		if major, sub, ok := dasha.ActiveAt(k.Dasha, at); ok {
			fmt.Printf("\nRunning period on %s: %s major, %s sub (%s to %s)\n",
				*dashaAt, major.Lord, sub.Lord,
				sub.Start.Format("2006-01-02"), sub.End.Format("2006-01-02"))
		} else {
			fmt.Printf("\n%s falls outside the 120 year dasha cycle\n", *dashaAt)
		}
	}

	if *postgresDSN != "" {
		if err := persistChart(ctx, *postgresDSN, *migrate, k, logger); err != nil {
			logger.Fatal("persist chart", zap.Error(err))
		}
	}
	if *clickhouseDSN != "" {
		if err := persistFeatures(ctx, *clickhouseDSN, *migrate, k, logger); err != nil {
			logger.Fatal("persist features", zap.Error(err))
		}
	}
}

// parseBirthInput builds the birth input from flag values. An empty
// clock selects the untimed noon-anchored variant.
func parseBirthInput(date, clock, lat, lon, tz string) (domain.BirthInput, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.BirthInput{}, fmt.Errorf("parse date: %w", err)
	}
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.BirthInput{}, fmt.Errorf("parse latitude: %w", err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.BirthInput{}, fmt.Errorf("parse longitude: %w", err)
	}

	if clock == "" {
		return domain.NewUntimedBirth(day.Year(), int(day.Month()), day.Day(), latitude, longitude, tz)
	}

	at, err := time.Parse("15:04:05", clock)
	if err != nil {
		return domain.BirthInput{}, fmt.Errorf("parse time: %w", err)
	}
	return domain.NewTimedBirth(day.Year(), int(day.Month()), day.Day(),
		at.Hour(), at.Minute(), at.Second(), latitude, longitude, tz)
}

// persistChart stores the chart document in PostgreSQL. A chart that is
// already stored is not an error; recomputing yields the same document.
func persistChart(ctx context.Context, dsn string, migrate bool, k *domain.Kundali, logger *zap.Logger) error {
	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return fmt.Errorf("run postgres migrations: %w", err)
		}
	}

	if err := pgstore.NewKundaliStore(pool).Insert(ctx, k); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			logger.Info("chart already stored", zap.String("chart_id", k.ChartID))
			return nil
		}
		return err
	}

	logger.Info("chart stored", zap.String("chart_id", k.ChartID))
	return nil
}

// persistFeatures extracts the feature vector and stores it in
// ClickHouse.
func persistFeatures(ctx context.Context, dsn string, migrate bool, k *domain.Kundali, logger *zap.Logger) error {
	var conn *chstore.Conn
	var err error
	if migrate {
		conn, err = migrations.RunClickhouseMigrations(ctx, dsn)
		if err != nil {
			return fmt.Errorf("run clickhouse migrations: %w", err)
		}
	} else {
		conn, err = chstore.NewConn(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connect to clickhouse: %w", err)
		}
	}
	defer conn.Close()

	fv, err := features.Extract(k, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("extract features: %w", err)
	}

	if err := chstore.NewFeatureStore(conn).InsertBulk(ctx, []*domain.FeatureVector{&fv}); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			logger.Info("features already stored",
				zap.String("chart_id", k.ChartID),
				zap.Int32("version", fv.Version))
			return nil
		}
		return err
	}

	logger.Info("features stored",
		zap.String("chart_id", k.ChartID),
		zap.Int32("version", fv.Version))
	return nil
}
