// Package reconciler runs several independent scorecard extraction
// strategies against one photo, scores each candidate, and selects a
// winner. Strategies fail soft: the pipeline only errors when every
// strategy does.
package reconciler

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/logging"
	"github.com/fairwaylab/scorelens/pkg/notation"
)

// Reconciler orchestrates layout probing, strategy fan-out, sanitation,
// validation, and winner selection for a single image at a time. It is
// safe for concurrent use.
type Reconciler struct {
	classifier LayoutClassifier
	strategies []Strategy
	logger     zerolog.Logger
}

// New creates a Reconciler. A structure reader and a handwriting reader
// produce the default strategy set (structure-only, handwriting-only,
// and the merged pass); WithStrategies replaces it wholesale.
func New(opts ...Option) (*Reconciler, error) {
	cfg := &config{notation: notation.DefaultConfig()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	strategies := cfg.strategies
	if len(strategies) == 0 {
		strategies = defaultStrategies(cfg)
		if len(strategies) == 0 {
			return nil, errors.NewConfigError("reconciler",
				"no strategies: provide readers or WithStrategies", errors.ErrInvalidInput)
		}
	}

	logger := logging.Default()
	if cfg.logger != nil {
		logger = cfg.logger
	}

	return &Reconciler{
		classifier: cfg.classifier,
		strategies: strategies,
		logger:     *logger,
	}, nil
}

func defaultStrategies(cfg *config) []Strategy {
	var strategies []Strategy
	if cfg.structure != nil {
		strategies = append(strategies, NewStructureStrategy(cfg.structure, cfg.notation))
	}
	if cfg.handwriting != nil {
		strategies = append(strategies, NewHandwritingStrategy(cfg.handwriting, cfg.notation))
	}
	if cfg.structure != nil && cfg.handwriting != nil {
		strategies = append(strategies, NewMergeStrategy(cfg.structure, cfg.handwriting, cfg.notation))
	}
	return strategies
}

// Reconcile runs the full pipeline for one image. It returns a Result
// whose Scorecard is the sanitized winning candidate, or a PipelineError
// when no strategy produced a usable card. Cancellation propagates
// through ctx to every backend call.
func (r *Reconciler) Reconcile(ctx context.Context, img Image) (*Result, error) {
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	log := r.logger.With().Str("request_id", requestID).Logger()
	ctx = logging.WithLogger(ctx, &log)

	result := NewResult(requestID)
	la := r.probeLayout(ctx, img, &log)
	result.Metadata.Layout = la

	candidates, failures := r.fanOut(ctx, img, la, &log)
	result.Failures = failures
	for _, s := range r.strategies {
		result.Metadata.StrategiesRun = append(result.Metadata.StrategiesRun, s.ID())
	}

	scored := r.rank(candidates, la)
	if len(scored) == 0 {
		result.Finalize()
		err := errors.NewPipelineError(failures)
		log.Error().Str("detail", err.Detail()).Msg("all extraction strategies failed")
		return nil, err
	}

	result.Candidates = scored
	result.Winner = scored[0]
	result.Scorecard = scored[0].Scorecard
	result.Finalize()

	log.Info().
		Str("winner", result.Winner.StrategyID).
		Int("validation_score", result.Winner.ValidationScore).
		Int("candidates", len(scored)).
		Int("failures", len(failures)).
		Dur("duration", result.Metadata.Duration).
		Msg("reconciliation complete")

	return result, nil
}

// probeLayout runs the advisory layout pass. Probe errors and
// low-confidence classifications degrade to the default layout; they
// are logged, never returned.
func (r *Reconciler) probeLayout(ctx context.Context, img Image, log *zerolog.Logger) *layout.Analysis {
	if r.classifier == nil {
		return layout.Default()
	}
	la, err := r.classifier.Classify(ctx, img)
	if err != nil {
		log.Warn().Err(err).Msg("layout probe failed, using defaults")
		return layout.Default()
	}
	if !la.Usable() {
		log.Debug().
			Int("hole_count", la.HoleCount).
			Float64("confidence", la.Confidence).
			Msg("layout probe below confidence threshold, using defaults")
		return layout.Default()
	}
	return la
}

type attempt struct {
	index int
	card  *StrategyResult
	err   error
}

// fanOut launches every strategy in its own goroutine and collects
// whatever comes back. A strategy that errors is excluded, never
// retried.
func (r *Reconciler) fanOut(ctx context.Context, img Image, la *layout.Analysis, log *zerolog.Logger) ([]StrategyResult, []error) {
	results := make(chan attempt, len(r.strategies))
	var wg sync.WaitGroup

	for i, s := range r.strategies {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			sctx := logging.WithStrategy(ctx, s.ID())
			card, err := s.Extract(sctx, img, la)
			if err != nil {
				results <- attempt{index: i, err: err}
				return
			}
			results <- attempt{index: i, card: &StrategyResult{
				Scorecard:      card,
				StrategyID:     s.ID(),
				BaseConfidence: s.BaseConfidence(),
			}}
		}(i, s)
	}
	wg.Wait()
	close(results)

	collected := make([]attempt, 0, len(r.strategies))
	for a := range results {
		collected = append(collected, a)
	}
	// Channel order is arrival order; restore launch order so runs are
	// reproducible in logs and tie-breaking.
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	var candidates []StrategyResult
	var failures []error
	for _, a := range collected {
		if a.err != nil {
			log.Warn().Err(a.err).Str("strategy", r.strategies[a.index].ID()).Msg("strategy excluded")
			failures = append(failures, a.err)
			continue
		}
		candidates = append(candidates, *a.card)
	}
	return candidates, failures
}

// rank sanitizes and validates each candidate, then orders them
// best-first: highest validation score wins, and scores within one
// point of each other fall back to strategy base confidence.
func (r *Reconciler) rank(candidates []StrategyResult, la *layout.Analysis) []StrategyResult {
	scored := make([]StrategyResult, 0, len(candidates))
	for _, c := range candidates {
		// Sanitize a copy so the strategy's raw output stays intact in
		// the candidate list.
		c.Scorecard = c.Scorecard.Copy()
		Sanitize(c.Scorecard)
		c.ValidationScore = Score(c.Scorecard, la.HoleCount)
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		di := scored[i].ValidationScore - scored[j].ValidationScore
		if di > 1 || di < -1 {
			return di > 0
		}
		if scored[i].BaseConfidence != scored[j].BaseConfidence {
			return scored[i].BaseConfidence > scored[j].BaseConfidence
		}
		return di > 0
	})
	return scored
}
