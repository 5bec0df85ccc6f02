// Package scorelens turns photos of golf scorecards into structured,
// validated rounds. It is the library façade over the extraction
// pipeline: construct one Scorelens, hand it images, get scorecards.
package scorelens

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fairwaylab/scorelens/internal/recognition/gemini"
	"github.com/fairwaylab/scorelens/pkg/errors"
	"github.com/fairwaylab/scorelens/pkg/reconciler"
)

// Scorelens scans scorecard photos and reconciles them into scorecards.
type Scorelens interface {
	// Scan runs the extraction pipeline against one image.
	Scan(ctx context.Context, img reconciler.Image) (*reconciler.Result, error)

	// ScanFile reads an image from disk and scans it.
	ScanFile(ctx context.Context, path string) (*reconciler.Result, error)

	// OnScanComplete registers a callback invoked after every
	// successful scan.
	OnScanComplete(ScanHook)

	// Close releases backend resources.
	Close() error
}

// scorelens is the internal implementation of the Scorelens interface.
type scorelens struct {
	mu         sync.RWMutex
	reconciler *reconciler.Reconciler
	client     *gemini.Client
	hooks      *hooks
}

// New creates a new Scorelens instance with the given options.
func New(opts ...Option) (Scorelens, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	s := &scorelens{hooks: newHooks()}

	ropts := cfg.reconcilerOpts
	if len(ropts) == 0 {
		s.client = gemini.NewClient(gemini.Config{
			APIKey: cfg.apiKey,
			Model:  cfg.model,
		})
		ropts = []reconciler.Option{
			reconciler.WithStructureReader(s.client),
			reconciler.WithHandwritingReader(s.client),
			reconciler.WithLayoutClassifier(s.client),
		}
	}
	if cfg.logger != nil {
		ropts = append(ropts, reconciler.WithLogger(cfg.logger))
	}

	r, err := reconciler.New(ropts...)
	if err != nil {
		return nil, err
	}
	s.reconciler = r

	return s, nil
}

// Scan runs the extraction pipeline against one image.
func (s *scorelens) Scan(ctx context.Context, img reconciler.Image) (*reconciler.Result, error) {
	if len(img.Data) == 0 {
		return nil, errors.NewValidationError("image", nil, "empty image data")
	}

	result, err := s.reconciler.Reconcile(ctx, img)
	if err != nil {
		return nil, err
	}

	s.hooks.fireScanComplete(result)
	return result, nil
}

// ScanFile reads an image from disk and scans it.
func (s *scorelens) ScanFile(ctx context.Context, path string) (*reconciler.Result, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, img)
}

// Close releases backend resources.
func (s *scorelens) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// ReadImage loads an image file and determines its MIME type from the
// extension, with fallbacks for the common camera formats.
func ReadImage(path string) (reconciler.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reconciler.Image{}, errors.WrapIO("read", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		switch strings.TrimPrefix(ext, ".") {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		case "webp":
			mt = "image/webp"
		case "heic":
			mt = "image/heic"
		default:
			mt = "application/octet-stream"
		}
	}
	return reconciler.Image{Data: data, MIME: mt}, nil
}
