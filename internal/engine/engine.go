// Package engine computes complete kundalis from birth inputs.
// It coordinates: time normalization → chart construction → dignity
// analysis → {yoga, dasha, shad bala, divisional} stages → assembly.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kundali-engine/internal/cache"
	"kundali-engine/internal/chart"
	"kundali-engine/internal/dasha"
	"kundali-engine/internal/dignity"
	"kundali-engine/internal/domain"
	"kundali-engine/internal/ephemeris"
	"kundali-engine/internal/idhash"
	"kundali-engine/internal/shadbala"
	"kundali-engine/internal/timebase"
	"kundali-engine/internal/varga"
	"kundali-engine/internal/yoga"
)

// Stable error codes for the transport layer. ErrorCode maps
// computation errors onto them.
const (
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeInvalidTimezone  = "INVALID_TIMEZONE"
	CodeCoordinateRange  = "COORDINATE_RANGE"
	CodeEphemerisRange   = "EPHEMERIS_RANGE"
	CodeDegenerateHouses = "DEGENERATE_HOUSES"
	CodeInternal         = "INTERNAL"
)

// navamsaFactor is the one division yoga detection re-runs on.
const navamsaFactor = 9

// Engine coordinates the computation stages. Safe for concurrent use;
// every Compute call works on its own data.
type Engine struct {
	builder          *chart.Builder
	cache            cache.Cache
	logger           *zap.Logger
	factors          []int
	skipNavamsaYogas bool
}

// Options for creating an Engine. The zero value is usable: built-in
// analytic ephemeris, Lahiri ayanamsa, default divisional set, no
// cache, no logging.
type Options struct {
	Ephemeris        ephemeris.Source
	Ayanamsa         string // model name; unknown names resolve to Lahiri
	Cache            cache.Cache
	Logger           *zap.Logger
	Factors          []int // divisional factors to generate
	SkipNavamsaYogas bool  // omit the yoga re-run on the navamsa
}

// New creates an Engine.
func New(opts Options) *Engine {
	source := opts.Ephemeris
	if source == nil {
		source = ephemeris.NewAnalytic()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	factors := opts.Factors
	if len(factors) == 0 {
		factors = varga.DefaultFactors
	}
	return &Engine{
		builder:          chart.NewBuilder(source, chart.AyanamsaByName(opts.Ayanamsa)),
		cache:            opts.Cache,
		logger:           logger,
		factors:          factors,
		skipNavamsaYogas: opts.SkipNavamsaYogas,
	}
}

// Compute derives the full Kundali for one birth input. Every error is
// terminal; a partial Kundali is never returned. Identical inputs
// yield equal results, which the optional cache exploits.
func (e *Engine) Compute(ctx context.Context, input domain.BirthInput) (*domain.Kundali, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	chartID := idhash.ChartID(input)

	if e.cache != nil {
		k, ok, err := e.cache.Get(ctx, chartID)
		if err != nil {
			e.logger.Warn("cache lookup failed", zap.String("chart_id", chartID), zap.Error(err))
		} else if ok {
			e.logger.Debug("cache hit", zap.String("chart_id", chartID))
			return k, nil
		}
	}
	start := time.Now()

	moment, err := timebase.Normalize(input)
	if err != nil {
		return nil, fmt.Errorf("normalize birth input: %w", err)
	}

	frame, err := e.builder.Build(moment, input.Latitude)
	if err != nil {
		return nil, fmt.Errorf("build chart frame: %w", err)
	}

	analyzed := dignity.Analyze(frame.Planets)

	// Derived stages are independent given the analyzed frame; each
	// goroutine writes only its own result slot before Wait.
	var (
		yogas       []domain.Yoga
		timeline    domain.Dasha
		strengths   map[domain.Body]domain.ShadBalaScore
		divisionals map[int]domain.DivisionalChart
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		yogas = yoga.Detect(&yoga.ChartState{
			Ascendant: frame.Ascendant,
			Planets:   analyzed.Planets,
			Houses:    frame.Houses,
			Aspects:   analyzed.Aspects,
		})
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		moon, ok := placementOf(analyzed.Planets, domain.BodyMoon)
		if !ok {
			return errors.New("dasha stage: moon not placed")
		}
		timeline = dasha.Compute(moment.UTC, moon.Longitude, moment.TimeKnown)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		strengths = shadbala.Compute(analyzed.Planets)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		divisionals, err = e.buildDivisionals(frame.Ascendant, analyzed.Planets)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	k := &domain.Kundali{
		ChartID:     chartID,
		Input:       input,
		BirthUTC:    moment.UTC,
		JulianDay:   moment.JulianDay,
		Ayanamsa:    frame.Ayanamsa,
		TimeKnown:   moment.TimeKnown,
		Ascendant:   frame.Ascendant,
		Planets:     analyzed.Planets,
		Houses:      frame.Houses,
		Aspects:     analyzed.Aspects,
		Yogas:       yogas,
		Dasha:       timeline,
		ShadBala:    strengths,
		Divisionals: divisionals,
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, k); err != nil {
			e.logger.Warn("cache store failed", zap.String("chart_id", chartID), zap.Error(err))
		}
	}

	e.logger.Info("kundali computed",
		zap.String("chart_id", chartID),
		zap.String("ascendant", k.Ascendant.Sign.String()),
		zap.Int("yogas", len(yogas)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return k, nil
}

// buildDivisionals generates the configured harmonic charts. Yoga
// detection re-runs on the navamsa only; its sign-based rules carry
// over while aspect-based ones see an empty list.
func (e *Engine) buildDivisionals(asc domain.Ascendant, planets []domain.Planet) (map[int]domain.DivisionalChart, error) {
	out := make(map[int]domain.DivisionalChart, len(e.factors))
	for _, factor := range e.factors {
		d, err := varga.Generate(factor, asc, planets)
		if err != nil {
			return nil, fmt.Errorf("generate divisional D%d: %w", factor, err)
		}
		if factor == navamsaFactor && !e.skipNavamsaYogas {
			d.Yogas = yoga.Detect(&yoga.ChartState{
				Ascendant: d.Ascendant,
				Planets:   d.Planets,
				Houses:    d.Houses,
			})
		}
		out[factor] = d
	}
	return out, nil
}

// placementOf finds one body in a placement list.
func placementOf(planets []domain.Planet, body domain.Body) (domain.Planet, bool) {
	for _, p := range planets {
		if p.Body == body {
			return p, true
		}
	}
	return domain.Planet{}, false
}

// ErrorCode maps a Compute error onto its stable external code. A nil
// error maps to the empty string; unrecognized errors report INTERNAL.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMalformedBirthInput):
		return CodeMalformedInput
	case errors.Is(err, timebase.ErrInvalidTimeZone):
		return CodeInvalidTimezone
	case errors.Is(err, timebase.ErrCoordinateOutOfRange):
		return CodeCoordinateRange
	case errors.Is(err, ephemeris.ErrOutOfRange):
		return CodeEphemerisRange
	case errors.Is(err, chart.ErrDegenerateHouseSystem):
		return CodeDegenerateHouses
	default:
		return CodeInternal
	}
}
