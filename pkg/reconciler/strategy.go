package reconciler

import (
	"context"

	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/notation"
	"github.com/fairwaylab/scorelens/pkg/scorecard"
	"github.com/fairwaylab/scorelens/pkg/structure"
)

// Strategy is a single independent attempt at turning a photo into a
// scorecard. Strategies run concurrently and fail soft: one error never
// takes down the pipeline, it just removes that candidate from the
// ranking.
type Strategy interface {
	// ID uniquely identifies the strategy in logs and results.
	ID() string

	// BaseConfidence is the prior belief in this strategy's output,
	// used only to break near-ties between validation scores.
	BaseConfidence() float64

	// Extract attempts a full scorecard extraction. The layout analysis
	// is advisory and never nil.
	Extract(ctx context.Context, img Image, la *layout.Analysis) (*scorecard.Extracted, error)
}

// StructureStrategy extracts a card from the document-structure pass
// alone. It is precise about the grid but blind to faint handwriting.
type StructureStrategy struct {
	reader StructureReader
	cfg    notation.Config
}

// NewStructureStrategy creates the structure-only strategy.
func NewStructureStrategy(reader StructureReader, cfg notation.Config) *StructureStrategy {
	return &StructureStrategy{reader: reader, cfg: cfg}
}

func (s *StructureStrategy) ID() string { return "structure" }

func (s *StructureStrategy) BaseConfidence() float64 { return 0.8 }

func (s *StructureStrategy) Extract(ctx context.Context, img Image, la *layout.Analysis) (*scorecard.Extracted, error) {
	cand, err := extractCandidate(ctx, s.reader, img, la)
	if err != nil {
		return nil, errors.NewStrategyError(s.ID(), "structure extraction failed", err)
	}
	return assembleCard(cand, cand.AllTokens(), s.cfg), nil
}

// HandwritingStrategy extracts a card from the handwriting re-read
// alone. It reads faint pencil marks the structure pass misses, but it
// invents its own grid and so is trusted less.
type HandwritingStrategy struct {
	reader HandwritingReader
	cfg    notation.Config
}

// NewHandwritingStrategy creates the handwriting-only strategy.
func NewHandwritingStrategy(reader HandwritingReader, cfg notation.Config) *HandwritingStrategy {
	return &HandwritingStrategy{reader: reader, cfg: cfg}
}

func (s *HandwritingStrategy) ID() string { return "handwriting" }

func (s *HandwritingStrategy) BaseConfidence() float64 { return 0.7 }

func (s *HandwritingStrategy) Extract(ctx context.Context, img Image, la *layout.Analysis) (*scorecard.Extracted, error) {
	hw, err := s.reader.ReadScores(ctx, img, &Hint{HoleCount: la.HoleCount})
	if err != nil {
		return nil, errors.NewStrategyError(s.ID(), "handwriting read failed", err)
	}
	card := cardFromHandwriting(hw, la.HoleCount, s.cfg)
	if card == nil {
		return nil, errors.NewStrategyError(s.ID(), "handwriting read returned no players",
			errors.ErrNoPlayerRows)
	}
	return card, nil
}

// MergeStrategy runs the structure pass for the grid skeleton, then the
// handwriting pass to fill the cells the structure pass could not read.
// The two passes vote once, jointly, on notation style.
type MergeStrategy struct {
	structure   StructureReader
	handwriting HandwritingReader
	cfg         notation.Config
}

// NewMergeStrategy creates the combined structure-plus-handwriting
// strategy.
func NewMergeStrategy(sr StructureReader, hr HandwritingReader, cfg notation.Config) *MergeStrategy {
	return &MergeStrategy{structure: sr, handwriting: hr, cfg: cfg}
}

func (s *MergeStrategy) ID() string { return "structure+handwriting" }

func (s *MergeStrategy) BaseConfidence() float64 { return 0.9 }

func (s *MergeStrategy) Extract(ctx context.Context, img Image, la *layout.Analysis) (*scorecard.Extracted, error) {
	cand, err := extractCandidate(ctx, s.structure, img, la)
	if err != nil {
		return nil, errors.NewStrategyError(s.ID(), "structure extraction failed", err)
	}

	hint := hintFromCandidate(cand)
	hw, hwErr := s.handwriting.ReadScores(ctx, img, hint)

	// Style detection sees the union of both passes so that a relative
	// marker visible to only one of them still flips the whole card.
	tokens := cand.AllTokens()
	if hwErr == nil {
		tokens = append(tokens, handwritingTokens(hw)...)
	}
	card := assembleCard(cand, tokens, s.cfg)

	if hwErr != nil {
		// The structural card stands on its own; degrade rather than fail.
		return card, nil
	}
	mergeHandwriting(card, hw)
	return card, nil
}

func extractCandidate(ctx context.Context, reader StructureReader, img Image, la *layout.Analysis) (*structure.Candidate, error) {
	grid, err := reader.ReadGrid(ctx, img)
	if err != nil {
		return nil, err
	}
	return structure.Extract(grid, la)
}

func hintFromCandidate(cand *structure.Candidate) *Hint {
	hint := &Hint{HoleCount: len(cand.Holes)}
	for _, h := range cand.Holes {
		hint.Pars = append(hint.Pars, h.Par)
	}
	for _, p := range cand.Players {
		hint.Players = append(hint.Players, p.Name)
	}
	return hint
}

func handwritingTokens(hw *HandwritingCard) []string {
	var tokens []string
	for _, row := range hw.Players {
		for _, tok := range row {
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// assembleCard converts a structural candidate into a scorecard under
// the style detected from the given token set. Detection runs exactly
// once per card; every cell converts under the same style.
func assembleCard(cand *structure.Candidate, tokens []string, cfg notation.Config) *scorecard.Extracted {
	det := notation.Detect(tokens, cfg)

	card := &scorecard.Extracted{
		Holes:           cand.Holes,
		NotationStyle:   det.Style,
		NotationFlagged: det.Heuristic,
	}

	for _, raw := range cand.Players {
		player := scorecard.PlayerInfo{Name: raw.Name}
		for i, h := range cand.Holes {
			cell := scorecard.PlayerHoleScore{HoleNumber: h.HoleNumber}
			if i < len(raw.Tokens) && raw.Tokens[i] != "" {
				if v := notation.Convert(raw.Tokens[i], h.Par, det.Style); v != nil {
					cell.Score = v
					cell.Confidence = scorecard.GradeConfidence(*v, h.Par)
					cell.Source = scorecard.SourceStructural
				}
			}
			player.Scores = append(player.Scores, cell)
		}
		card.Players = append(card.Players, player)
	}
	card.RecomputeTotals()
	return card
}

// cardFromHandwriting builds a scorecard from the handwriting pass
// alone. With no par row visible to this pass, pars come from the
// handwriting output when present and default to 4 otherwise. Returns
// nil when the read produced no players.
func cardFromHandwriting(hw *HandwritingCard, holeCount int, cfg notation.Config) *scorecard.Extracted {
	if hw == nil || len(hw.Players) == 0 {
		return nil
	}
	if holeCount <= 0 {
		holeCount = 9
	}
	for _, row := range hw.Players {
		if len(row) > holeCount {
			holeCount = len(row)
		}
	}

	cand := &structure.Candidate{}
	for i := 0; i < holeCount; i++ {
		par := 4
		if i < len(hw.Pars) {
			if v := notation.Convert(hw.Pars[i], 0, scorecard.NotationGross); v != nil && *v >= 3 && *v <= 5 {
				par = *v
			}
		}
		cand.Holes = append(cand.Holes, scorecard.HoleInfo{HoleNumber: i + 1, Par: par})
	}
	for _, name := range sortedPlayerNames(hw) {
		tokens := make([]string, holeCount)
		copy(tokens, hw.Players[name])
		cand.Players = append(cand.Players, structure.RawPlayer{Name: name, Tokens: tokens})
	}

	card := assembleCard(cand, handwritingTokens(hw), cfg)
	card.CourseName = hw.CourseName
	for pi := range card.Players {
		for si := range card.Players[pi].Scores {
			if card.Players[pi].Scores[si].Score != nil {
				card.Players[pi].Scores[si].Source = scorecard.SourceHandwriting
			}
		}
	}
	return card
}
