package domain

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedArtifact struct {
	Source string
}

// BuildRecord is the audit entry kept for every produced artifact.
type BuildRecord struct {
	ID          ID
	Fingerprint string
	BoardID     string
	Sensors     []string
	MQTTEnabled bool
	Source      string
	Manifest    string
	CreatedAt   time.Time
}

func NewBuildRecordBuilder() *buildRecordBuilder {
	return &buildRecordBuilder{}
}

type buildRecordBuilder struct {
	actions []buildRecordHandler
}

type buildRecordHandler func(v *BuildRecord) error

func (b *buildRecordBuilder) WithFingerprint(value string) *buildRecordBuilder {
	b.actions = append(b.actions, func(r *BuildRecord) error {
		if value == "" {
			return ErrFingerprintRequired
		}
		r.Fingerprint = value
		return nil
	})
	return b
}

func (b *buildRecordBuilder) WithConfig(value NormalizedConfig) *buildRecordBuilder {
	b.actions = append(b.actions, func(r *BuildRecord) error {
		r.BoardID = value.Board.ID
		r.Sensors = value.SensorTypes()
		r.MQTTEnabled = value.NetworkingEnabled()
		return nil
	})
	return b
}

func (b *buildRecordBuilder) WithArtifact(artifact GeneratedArtifact, manifest string) *buildRecordBuilder {
	b.actions = append(b.actions, func(r *BuildRecord) error {
		if artifact.Source == "" {
			return ErrArtifactRequired
		}
		r.Source = artifact.Source
		r.Manifest = manifest
		return nil
	})
	return b
}

func (b *buildRecordBuilder) WithCreatedAt(value time.Time) *buildRecordBuilder {
	b.actions = append(b.actions, func(r *BuildRecord) error {
		r.CreatedAt = value
		return nil
	})
	return b
}

func (b *buildRecordBuilder) Build() (BuildRecord, error) {
	result := BuildRecord{
		ID:        ID(uuid.NewString()),
		CreatedAt: time.Now().UTC(),
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return BuildRecord{}, err
		}
	}
	return result, nil
}
