package internal

import (
	"strings"
	"time"

	"firmgen-server/internal/firmware/domain"
)

type BuildRecord struct {
	ID          string `gorm:"primaryKey"`
	Fingerprint string `gorm:"index"`
	BoardID     string `gorm:"column:board_id"`
	Sensors     string
	MQTTEnabled bool `gorm:"column:mqtt_enabled"`
	Source      string
	Manifest    string
	CreatedAt   time.Time `gorm:"index"`
}

func (BuildRecord) TableName() string {
	return "build_records"
}

func (r BuildRecord) ToDomain() domain.BuildRecord {
	var sensors []string
	if r.Sensors != "" {
		sensors = strings.Split(r.Sensors, ",")
	}

	return domain.BuildRecord{
		ID:          domain.ID(r.ID),
		Fingerprint: r.Fingerprint,
		BoardID:     r.BoardID,
		Sensors:     sensors,
		MQTTEnabled: r.MQTTEnabled,
		Source:      r.Source,
		Manifest:    r.Manifest,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func FromBuildRecord(value domain.BuildRecord) BuildRecord {
	return BuildRecord{
		ID:          value.ID.String(),
		Fingerprint: value.Fingerprint,
		BoardID:     value.BoardID,
		Sensors:     strings.Join(value.Sensors, ","),
		MQTTEnabled: value.MQTTEnabled,
		Source:      value.Source,
		Manifest:    value.Manifest,
		CreatedAt:   value.CreatedAt,
	}
}
