package internal

import (
	"time"

	"firmgen-server/internal/firmware/domain"
)

type BuildResponse struct {
	ID            string    `json:"id"`
	Fingerprint   string    `json:"fingerprint"`
	BoardID       string    `json:"board"`
	Sensors       []string  `json:"sensors"`
	MQTTEnabled   bool      `json:"mqtt_enabled"`
	Code          string    `json:"code"`
	PlatformIOIni string    `json:"platformio_ini"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromBuild(record domain.BuildRecord) BuildResponse {
	sensors := record.Sensors
	if sensors == nil {
		sensors = []string{}
	}

	return BuildResponse{
		ID:            record.ID.String(),
		Fingerprint:   record.Fingerprint,
		BoardID:       record.BoardID,
		Sensors:       sensors,
		MQTTEnabled:   record.MQTTEnabled,
		Code:          record.Source,
		PlatformIOIni: record.Manifest,
		CreatedAt:     record.CreatedAt,
	}
}
