package reconciler

import (
	"context"

	"github.com/fairwaylab/scorelens/pkg/layout"
	"github.com/fairwaylab/scorelens/pkg/structure"
)

// Image is a scorecard photo handed to the recognition backends.
type Image struct {
	Data []byte
	MIME string
}

// Hint carries the structural context already known about a card so the
// handwriting backend can be prompted with expected holes and pars.
type Hint struct {
	HoleCount int
	Pars      []int
	Players   []string
}

// HandwritingCard is the handwriting-focused re-read of a card: a
// best-effort mapping of player name to raw per-hole score tokens.
// Tokens are unconverted; an empty token marks an unreadable cell.
type HandwritingCard struct {
	CourseName string              `json:"course_name,omitempty"`
	Pars       []string            `json:"pars,omitempty"`
	Players    map[string][]string `json:"players"`
}

// StructureReader is the document-structure collaborator: it returns a
// grid of recognized text cells or fails.
type StructureReader interface {
	ReadGrid(ctx context.Context, img Image) (*structure.Grid, error)
}

// HandwritingReader is the handwriting-recognition collaborator.
type HandwritingReader interface {
	ReadScores(ctx context.Context, img Image, hint *Hint) (*HandwritingCard, error)
}

// LayoutClassifier is the layout-classification collaborator. Errors
// and low-confidence results degrade to defaults; they never fail the
// pipeline.
type LayoutClassifier interface {
	Classify(ctx context.Context, img Image) (*layout.Analysis, error)
}
