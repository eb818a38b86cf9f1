package estimates

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/calculation"
	"github.com/tonsuu/tonsuu/pkg/pipeline"
	"github.com/tonsuu/tonsuu/pkg/spec"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

// System defines the public contract for estimation domain operations.
type System interface {
	Handler() *Handler

	Analyze(ctx context.Context, cmd AnalyzeCommand) (*Estimate, error)
	Calculate(cmd CalculateCommand) *CalculateResult
	Validate(params validation.Params) *ValidateResult
	Spec() *spec.Document
}

type service struct {
	doc      *spec.Document
	sender   pipeline.Sender
	logger   *slog.Logger
	defaults config.PipelineConfig
	handler  *Handler
}

// NewSystem creates the estimation System backed by the given spec document
// and sender.
func NewSystem(
	doc *spec.Document,
	sender pipeline.Sender,
	logger *slog.Logger,
	defaults config.PipelineConfig,
) System {
	s := &service{
		doc:      doc,
		sender:   sender,
		logger:   logger,
		defaults: defaults,
	}
	s.handler = NewHandler(s, logger)
	return s
}

func (s *service) Handler() *Handler {
	return s.handler
}

// Analyze decodes the request images and runs the full ensemble pipeline.
func (s *service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Estimate, error) {
	if len(cmd.Images) == 0 {
		return nil, ErrNoImages
	}

	images := make([][]byte, len(cmd.Images))
	for i, enc := range cmd.Images {
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d", ErrBadImage, i)
		}
		images[i] = data
	}

	cfg := s.pipelineConfig(cmd)

	start := time.Now()
	result, err := pipeline.Analyze(ctx, s.doc, s.sender, images, cfg)
	if err != nil {
		return nil, err
	}

	s.logger.Info(
		"analysis complete",
		"truck", cfg.TruckClass,
		"material", result.MaterialType,
		"tonnage", result.Tonnage,
		"trials", cfg.EnsembleCount,
		"duration", time.Since(start),
	)

	return &Estimate{
		ID:            uuid.New(),
		CreatedAt:     time.Now().UTC(),
		TruckClass:    cfg.TruckClass,
		EnsembleCount: cfg.EnsembleCount,
		Result:        result,
	}, nil
}

// Calculate runs the tonnage formula directly on explicit parameters,
// reporting range violations alongside the result.
func (s *service) Calculate(cmd CalculateCommand) *CalculateResult {
	truck := cmd.TruckClass
	if truck == "" {
		truck = s.defaults.TruckClass
	}
	if cmd.MaterialType == "" {
		cmd.MaterialType = s.defaults.MaterialType
	}

	violations := validation.Validate(s.doc, validation.Params{
		Height:         &cmd.Height,
		FillRatioL:     &cmd.FillRatioL,
		FillRatioW:     &cmd.FillRatioW,
		TaperRatio:     &cmd.TaperRatio,
		PackingDensity: &cmd.PackingDensity,
	})

	return &CalculateResult{
		TruckClass: truck,
		Params:     cmd.CoreParams,
		Tonnage:    calculation.Calculate(s.doc, cmd.CoreParams, truck),
		Violations: violations,
	}
}

// Validate checks a parameter set against the spec ranges and returns the
// clamped equivalent.
func (s *service) Validate(params validation.Params) *ValidateResult {
	violations := validation.Validate(s.doc, params)
	clamped := validation.Clamp(s.doc, params)

	return &ValidateResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Clamped:    clamped,
	}
}

func (s *service) Spec() *spec.Document {
	return s.doc
}

func (s *service) pipelineConfig(cmd AnalyzeCommand) pipeline.Config {
	cfg := pipeline.Config{
		TruckClass:    s.defaults.TruckClass,
		MaterialType:  s.defaults.MaterialType,
		EnsembleCount: s.defaults.EnsembleCount,
	}
	if cmd.TruckClass != "" {
		cfg.TruckClass = cmd.TruckClass
	}
	if cmd.MaterialType != "" {
		cfg.MaterialType = cmd.MaterialType
	}
	if cmd.EnsembleCount > 0 {
		cfg.EnsembleCount = cmd.EnsembleCount
	}
	return cfg
}
