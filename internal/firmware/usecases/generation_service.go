package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/infra/cache"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	_metricKeyAccepted = "accepted"
	_metricKeyRejected = "rejected"

	artifactKeyPrefix = "artifact:"
)

// ArtifactTTL bounds how long a synthesized artifact stays memoized.
type ArtifactTTL time.Duration

type renderedArtifact struct {
	Source   string `json:"source"`
	Manifest string `json:"manifest"`
}

func NewGenerationService(
	catalog Catalog,
	validator Validator,
	synthesizer Synthesizer,
	artifacts cache.Cache,
	ttl ArtifactTTL,
	repository BuildRecordRepository,
	publisher BuildEventPublisher,
) *SimpleGenerationService {
	s := &SimpleGenerationService{
		catalog:        catalog,
		validator:      validator,
		synthesizer:    synthesizer,
		artifacts:      artifacts,
		ttl:            time.Duration(ttl),
		repository:     repository,
		publisher:      publisher,
		metricCounters: make(map[string]metric.Int64Counter),
	}
	s.setupOtelMetrics()
	return s
}

var _ GenerationService = &SimpleGenerationService{}

type SimpleGenerationService struct {
	catalog           Catalog
	validator         Validator
	synthesizer       Synthesizer
	artifacts         cache.Cache
	ttl               time.Duration
	repository        BuildRecordRepository
	publisher         BuildEventPublisher
	metricCounters    map[string]metric.Int64Counter
	synthesisDuration metric.Float64Histogram
}

func (s *SimpleGenerationService) setupOtelMetrics() {
	meter := otel.Meter("firmgen_server")

	for _, key := range []string{_metricKeyAccepted, _metricKeyRejected} {
		counter, _ := meter.Int64Counter(
			fmt.Sprintf("%s.%s.%s", "firmgen_server", "generation", key),
			metric.WithDescription(fmt.Sprintf("firmgen_server %s generation requests", key)),
		)
		s.metricCounters[key] = counter
	}

	s.synthesisDuration, _ = meter.Float64Histogram(
		fmt.Sprintf("%s.%s", "firmgen_server", "synthesis.duration"),
		metric.WithDescription("firmgen_server firmware synthesis duration"),
		metric.WithUnit("ms"),
	)
}

func (s *SimpleGenerationService) ListSensors(_ context.Context) []domain.SensorDescriptor {
	return s.catalog.ListSensors()
}

func (s *SimpleGenerationService) ListBoards(_ context.Context) []domain.BoardProfile {
	return s.catalog.ListBoards()
}

func (s *SimpleGenerationService) Generate(ctx context.Context, request domain.SelectionRequest) (domain.BuildRecord, error) {
	outcome := s.validator.Validate(request)
	config, accepted := outcome.Config()
	if !accepted {
		s.count(ctx, _metricKeyRejected, request.BoardID)
		slog.Info("selection rejected",
			slog.String("board", request.BoardID),
			slog.Int("diagnostics", len(outcome.Diagnostics())))
		return domain.BuildRecord{}, &RejectionError{Diagnostics: outcome.Diagnostics()}
	}

	fingerprint, err := config.Fingerprint()
	if err != nil {
		slog.Error("fingerprinting config", slog.String("error", err.Error()))
		return domain.BuildRecord{}, errUnknown
	}

	artifact, err := s.render(ctx, fingerprint, config)
	if err != nil {
		slog.Error("rendering artifact",
			slog.String("fingerprint", fingerprint),
			slog.String("error", err.Error()))
		return domain.BuildRecord{}, errUnknown
	}

	record, err := domain.NewBuildRecordBuilder().
		WithFingerprint(fingerprint).
		WithConfig(config).
		WithArtifact(domain.GeneratedArtifact{Source: artifact.Source}, artifact.Manifest).
		Build()
	if err != nil {
		slog.Error("building record", slog.String("error", err.Error()))
		return domain.BuildRecord{}, errUnknown
	}

	err = s.repository.Create(ctx, record)
	if err != nil {
		slog.Error("storing build record",
			slog.String("build_id", record.ID.String()),
			slog.String("error", err.Error()))
		return domain.BuildRecord{}, errUnknown
	}

	err = s.publisher.PublishBuild(ctx, record)
	if err != nil {
		slog.Warn("publishing build event",
			slog.String("build_id", record.ID.String()),
			slog.String("error", err.Error()))
	}

	s.count(ctx, _metricKeyAccepted, request.BoardID)
	slog.Debug("firmware generated",
		slog.String("build_id", record.ID.String()),
		slog.String("board", record.BoardID),
		slog.String("fingerprint", fingerprint))

	return record, nil
}

func (s *SimpleGenerationService) GetBuild(ctx context.Context, id domain.ID) (domain.BuildRecord, error) {
	record, err := s.repository.Get(ctx, id)
	if errors.Is(err, ErrBuildNotFound) {
		return domain.BuildRecord{}, ErrBuildNotFound
	}

	if err != nil {
		slog.Error("getting build", slog.String("build_id", id.String()), slog.String("error", err.Error()))
		return domain.BuildRecord{}, errUnknown
	}

	return record, nil
}

func (s *SimpleGenerationService) render(ctx context.Context, fingerprint string, config domain.NormalizedConfig) (renderedArtifact, error) {
	value, err := s.artifacts.GetOrSet(ctx, artifactKeyPrefix+fingerprint, s.ttl, func() (any, error) {
		start := time.Now()
		result := renderedArtifact{
			Source:   s.synthesizer.Synthesize(config).Source,
			Manifest: s.synthesizer.Manifest(config),
		}
		s.synthesisDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
			metric.WithAttributes(attribute.String("board", config.Board.ID)))
		return result, nil
	})
	if err != nil {
		return renderedArtifact{}, err
	}

	return decodeRendered(value)
}

func (s *SimpleGenerationService) count(ctx context.Context, key, board string) {
	s.metricCounters[key].Add(ctx, 1, metric.WithAttributes(attribute.String("board", board)))
}

// decodeRendered accepts both the in-process value and the JSON shape a
// remote cache hands back.
func decodeRendered(value any) (renderedArtifact, error) {
	switch v := value.(type) {
	case renderedArtifact:
		return v, nil
	case string:
		var result renderedArtifact
		if err := json.Unmarshal([]byte(v), &result); err != nil {
			return renderedArtifact{}, fmt.Errorf("decoding cached artifact: %w", err)
		}
		return result, nil
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return renderedArtifact{}, fmt.Errorf("encoding cached artifact: %w", err)
		}
		var result renderedArtifact
		if err := json.Unmarshal(data, &result); err != nil {
			return renderedArtifact{}, fmt.Errorf("decoding cached artifact: %w", err)
		}
		return result, nil
	default:
		return renderedArtifact{}, fmt.Errorf("unexpected cached artifact type %T", value)
	}
}
