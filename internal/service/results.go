package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/feedback360-server/internal/aggregation"
	"github.com/godilite/feedback360-server/internal/export"
	"github.com/godilite/feedback360-server/internal/repository/models"
	"github.com/godilite/feedback360-server/pkg/metrics"
)

const (
	defaultDBTimeout = 5 * time.Second
	tracerName       = "github.com/godilite/feedback360-server/internal/service"
)

var (
	ErrInvalidCycle   = errors.New("cycle id is required")
	ErrCycleNotFound  = errors.New("cycle not found")
	ErrNoResults      = errors.New("no results found")
	ErrPersonNotFound = errors.New("person has no results in cycle")
	ErrStorageFailure = errors.New("storage failure")
)

type Option func(*ResultsService)

// WithEngine replaces the default sequential aggregation engine.
func WithEngine(engine *aggregation.Engine) Option {
	return func(s *ResultsService) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithMetrics records aggregation runs on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ResultsService) { s.metrics = m }
}

// WithDBTimeout bounds the repository reads of a single call.
func WithDBTimeout(d time.Duration) Option {
	return func(s *ResultsService) {
		if d > 0 {
			s.dbTimeout = d
		}
	}
}

// WithTracerProvider traces calls through tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *ResultsService) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// ResultsService loads a cycle's raw feedback and aggregates it on demand.
type ResultsService struct {
	storage   FeedbackRepository
	engine    *aggregation.Engine
	logger    *zap.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	dbTimeout time.Duration
}

// NewResultsService creates a new ResultsService instance.
func NewResultsService(storage FeedbackRepository, logger *zap.Logger, opts ...Option) *ResultsService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	s := &ResultsService{
		storage:   storage,
		logger:    logger.Named("results-service"),
		tracer:    otel.Tracer(tracerName),
		dbTimeout: defaultDBTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = aggregation.New(aggregation.WithLogger(s.logger))
	}
	return s
}

func (s *ResultsService) loadSnapshot(ctx context.Context, cycleID string) (aggregation.Snapshot, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	exists, err := s.storage.CycleExists(dbCtx, cycleID)
	if err != nil {
		return aggregation.Snapshot{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if !exists {
		return aggregation.Snapshot{}, ErrCycleNotFound
	}

	var (
		persons     []models.EvaluatedPerson
		comps       []models.Competency
		evaluations []models.Evaluation
		responses   []models.Response
	)

	g, gctx := errgroup.WithContext(dbCtx)
	g.Go(func() (err error) {
		persons, err = s.storage.GetEvaluatedPersons(gctx)
		return err
	})
	g.Go(func() (err error) {
		comps, err = s.storage.GetCompetencies(gctx)
		return err
	})
	g.Go(func() (err error) {
		evaluations, err = s.storage.GetEvaluations(gctx, cycleID)
		return err
	})
	g.Go(func() (err error) {
		responses, err = s.storage.GetResponses(gctx, cycleID)
		return err
	})
	if err := g.Wait(); err != nil {
		return aggregation.Snapshot{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return aggregation.Snapshot{
		Persons:      toPersons(persons),
		Competencies: toCompetencies(comps),
		Evaluations:  toEvaluations(evaluations),
		Responses:    toResponses(responses),
	}, nil
}

// run loads and aggregates a cycle, returning the snapshot alongside the
// results so callers can join against the competency catalogue.
func (s *ResultsService) run(ctx context.Context, op, cycleID string) (aggregation.Snapshot, []aggregation.Result, error) {
	cycleID = strings.TrimSpace(cycleID)

	ctx, span := s.tracer.Start(ctx, "ResultsService."+op,
		trace.WithAttributes(attribute.String("cycle.id", cycleID)))
	defer span.End()

	if cycleID == "" {
		span.RecordError(ErrInvalidCycle)
		span.SetStatus(otelcodes.Error, ErrInvalidCycle.Error())
		return aggregation.Snapshot{}, nil, ErrInvalidCycle
	}

	start := time.Now()
	snap, err := s.loadSnapshot(ctx, cycleID)
	if err != nil {
		s.metrics.ObserveAggregation(time.Since(start), 0, 0, err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return aggregation.Snapshot{}, nil, err
	}

	report := s.engine.Run(snap)
	elapsed := time.Since(start)
	s.metrics.ObserveAggregation(elapsed, len(report.Results), report.Skipped, nil)
	span.SetAttributes(
		attribute.Int("results.count", len(report.Results)),
		attribute.Int("responses.skipped", report.Skipped),
	)

	s.logger.Info("aggregated cycle results",
		zap.String("op", op),
		zap.String("cycle", cycleID),
		zap.Int("persons", len(snap.Persons)),
		zap.Int("evaluations", len(snap.Evaluations)),
		zap.Int("responses", len(snap.Responses)),
		zap.Int("results", len(report.Results)),
		zap.Int("skipped_responses", report.Skipped),
		zap.Duration("elapsed", elapsed))

	return snap, report.Results, nil
}

// GetResults returns every person's aggregated result for the cycle,
// ordered by overall mean descending.
func (s *ResultsService) GetResults(ctx context.Context, cycleID string) ([]aggregation.Result, error) {
	_, results, err := s.run(ctx, "GetResults", cycleID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

// GetRanking returns the ranking chart rows for the cycle.
func (s *ResultsService) GetRanking(ctx context.Context, cycleID string) ([]export.RankingEntry, error) {
	_, results, err := s.run(ctx, "GetRanking", cycleID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return export.Ranking(results), nil
}

// GetPersonReport returns one person's result with radar, role and
// competency table views.
func (s *ResultsService) GetPersonReport(ctx context.Context, cycleID, personID string) (PersonReport, error) {
	snap, results, err := s.run(ctx, "GetPersonReport", cycleID)
	if err != nil {
		return PersonReport{}, err
	}

	for _, r := range results {
		if r.PersonID != personID {
			continue
		}
		return PersonReport{
			Result:       r,
			Radar:        export.Radar(r, snap.Competencies),
			RoleBars:     export.RoleBars(r),
			Competencies: export.CompetencyTable(r, snap.Competencies),
		}, nil
	}

	s.logger.Debug("person not found in results",
		zap.String("cycle", cycleID),
		zap.String("person", personID))
	return PersonReport{}, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
}

// GetCompetencies returns the competency catalogue in catalogue order.
func (s *ResultsService) GetCompetencies(ctx context.Context) ([]aggregation.Competency, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	rows, err := s.storage.GetCompetencies(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return toCompetencies(rows), nil
}

// ExportCSV writes the cycle's results as CSV to w.
func (s *ResultsService) ExportCSV(ctx context.Context, cycleID string, w io.Writer) error {
	snap, results, err := s.run(ctx, "ExportCSV", cycleID)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, results, snap.Competencies); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
