package internal

import (
	"bytes"
	"encoding/json"
	"strings"

	"firmgen-server/internal/firmware/domain"
)

const DefaultBoard = "ESP32"

type GenerateRequest struct {
	MCU          string                   `json:"mcu"`
	Board        string                   `json:"board"`
	Sensors      []SensorSelectionRequest `json:"sensors"`
	MQTTEnabled  bool                     `json:"mqtt_enabled"`
	WiFiSSID     string                   `json:"wifi_ssid"`
	WiFiPassword string                   `json:"wifi_password"`
	MQTTBroker   string                   `json:"mqtt_broker"`
}

type SensorSelectionRequest struct {
	Type string          `json:"type"`
	Pin  json.RawMessage `json:"pin"`
}

// PinText returns the pin as text for the validator. Numbers keep their
// literal form, strings are unquoted, null and blank strings mean no pin and
// any other JSON value is passed through verbatim.
func (s SensorSelectionRequest) PinText() *string {
	raw := bytes.TrimSpace(s.Pin)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err == nil {
			text = unquoted
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}
	}

	return &text
}

func (r GenerateRequest) BoardID() string {
	switch {
	case r.Board != "":
		return r.Board
	case r.MCU != "":
		return r.MCU
	default:
		return DefaultBoard
	}
}

func (r GenerateRequest) ToDomain() domain.SelectionRequest {
	sensors := make([]domain.SensorSelection, 0, len(r.Sensors))
	for _, s := range r.Sensors {
		sensors = append(sensors, domain.SensorSelection{Type: s.Type, Pin: s.PinText()})
	}

	return domain.SelectionRequest{
		BoardID:      r.BoardID(),
		Sensors:      sensors,
		MQTTEnabled:  r.MQTTEnabled,
		WiFiSSID:     r.WiFiSSID,
		WiFiPassword: r.WiFiPassword,
		MQTTBroker:   r.MQTTBroker,
	}
}

type GenerateResponse struct {
	Code          string `json:"code"`
	PlatformIOIni string `json:"platformio_ini"`
	Fingerprint   string `json:"fingerprint"`
	BuildID       string `json:"build_id"`
}

func FromBuildRecord(record domain.BuildRecord) GenerateResponse {
	return GenerateResponse{
		Code:          record.Source,
		PlatformIOIni: record.Manifest,
		Fingerprint:   record.Fingerprint,
		BuildID:       record.ID.String(),
	}
}

type DiagnosticResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type RejectionResponse struct {
	SemanticErrors []string             `json:"semantic_errors"`
	Diagnostics    []DiagnosticResponse `json:"diagnostics"`
}

func FromDiagnostics(diagnostics []domain.Diagnostic) RejectionResponse {
	response := RejectionResponse{
		SemanticErrors: make([]string, 0, len(diagnostics)),
		Diagnostics:    make([]DiagnosticResponse, 0, len(diagnostics)),
	}
	for _, d := range diagnostics {
		response.SemanticErrors = append(response.SemanticErrors, d.Message)
		response.Diagnostics = append(response.Diagnostics, DiagnosticResponse{Kind: d.Kind.String(), Message: d.Message})
	}
	return response
}
