package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"firmgen-server/internal/firmware/domain"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const defaultBoard = "ESP32"

var ErrUnsupportedFormat = errors.New("unsupported selection file format")

// selectionFile is the on-disk form of a selection. Pins may be written as
// numbers or strings in both YAML and TOML.
type selectionFile struct {
	Board        string        `yaml:"board" toml:"board"`
	MCU          string        `yaml:"mcu" toml:"mcu"`
	MQTTEnabled  bool          `yaml:"mqtt_enabled" toml:"mqtt_enabled"`
	WiFiSSID     string        `yaml:"wifi_ssid" toml:"wifi_ssid"`
	WiFiPassword string        `yaml:"wifi_password" toml:"wifi_password"`
	MQTTBroker   string        `yaml:"mqtt_broker" toml:"mqtt_broker"`
	Sensors      []sensorEntry `yaml:"sensors" toml:"sensors"`
}

type sensorEntry struct {
	Type string `yaml:"type" toml:"type"`
	Pin  any    `yaml:"pin" toml:"pin"`
}

func loadSelection(path string) (domain.SelectionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SelectionRequest{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var file selectionFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return domain.SelectionRequest{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &file)
		if err != nil {
			return domain.SelectionRequest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return domain.SelectionRequest{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
		}
	default:
		return domain.SelectionRequest{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return file.toDomain(), nil
}

func (f selectionFile) toDomain() domain.SelectionRequest {
	board := f.Board
	if board == "" {
		board = f.MCU
	}
	if board == "" {
		board = defaultBoard
	}

	sensors := make([]domain.SensorSelection, 0, len(f.Sensors))
	for _, entry := range f.Sensors {
		sensors = append(sensors, domain.SensorSelection{Type: entry.Type, Pin: pinText(entry.Pin)})
	}

	return domain.SelectionRequest{
		BoardID:      board,
		Sensors:      sensors,
		MQTTEnabled:  f.MQTTEnabled,
		WiFiSSID:     f.WiFiSSID,
		WiFiPassword: f.WiFiPassword,
		MQTTBroker:   f.MQTTBroker,
	}
}

func pinText(value any) *string {
	if value == nil {
		return nil
	}

	text := fmt.Sprint(value)
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	return &text
}
