package service

import (
	"context"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/domain"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/logger"
	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/selector"
)

// CaptionConfig holds optional overrides for the caption service.
type CaptionConfig struct {
	Rand RandSource       // nil uses the process-wide source
	Now  func() time.Time // nil uses time.Now
}

// CaptionService produces placeholder captions. It holds no mutable state
// and may be called from any number of goroutines when its RandSource is
// concurrency-safe.
type CaptionService struct {
	rng RandSource
	now func() time.Time
}

// NewCaptionService creates a new caption service.
// Parameters:
//   - cfg: optional overrides; nil uses defaults.
//
// Returns:
//   - *CaptionService: initialized service.
func NewCaptionService(cfg *CaptionConfig) *CaptionService {
	s := &CaptionService{
		rng: globalRand{},
		now: time.Now,
	}
	if cfg != nil {
		if cfg.Rand != nil {
			s.rng = cfg.Rand
		}
		if cfg.Now != nil {
			s.now = cfg.Now
		}
	}
	return s
}

// Generate selects a caption for imageData and attaches synthetic metadata.
// Parameters:
//   - ctx: request context, used for logging.
//   - imageData: encoded image payload.
//
// Returns:
//   - *domain.CaptionResult: caption with confidence, processing time and timestamp.
//   - error: domain.ErrInvalidInput when imageData is empty.
func (s *CaptionService) Generate(ctx context.Context, imageData string) (*domain.CaptionResult, error) {
	if imageData == "" {
		logger.CtxWarn(ctx, "No image data provided")
		return nil, domain.ErrInvalidInput
	}

	sel := selector.Select(imageData)
	synth := Synthesize(s.rng)

	logger.With(logger.Fields{
		logger.FieldCaptionHash: sel.Hash,
		logger.FieldCategory:    selector.CategoryName(sel.Category),
		logger.FieldVariant:     sel.Variant,
		logger.FieldSize:        len(imageData),
	}).Info(ctx, "Caption generated")

	return &domain.CaptionResult{
		Caption:        sel.Caption,
		Confidence:     synth.Confidence,
		ProcessingTime: synth.ProcessingTime,
		Timestamp:      s.now().UTC().Format(domain.TimestampLayout),
	}, nil
}
