package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ResolvedSensor is a selected sensor bound to its concrete wiring. Exactly one
// of Pin or Bus is set for sensors that need wiring; both are nil otherwise.
type ResolvedSensor struct {
	Descriptor SensorDescriptor
	Pin        *Pin
	Bus        *BusChannel
}

type NetworkSettings struct {
	MQTTEnabled  bool
	WiFiSSID     string
	WiFiPassword string
	MQTTBroker   string
}

// NormalizedConfig is the accepted form of a SelectionRequest and the only
// input of code synthesis.
type NormalizedConfig struct {
	Board   BoardProfile
	Sensors []ResolvedSensor
	Network NetworkSettings
}

func (c NormalizedConfig) NetworkingEnabled() bool {
	return c.Network.MQTTEnabled && c.Board.SupportsNetworking
}

func (c NormalizedConfig) SensorTypes() []string {
	types := make([]string, 0, len(c.Sensors))
	for _, sensor := range c.Sensors {
		types = append(types, sensor.Descriptor.Type)
	}
	return types
}

func (c NormalizedConfig) UsesBus() bool {
	for _, sensor := range c.Sensors {
		if sensor.Bus != nil {
			return true
		}
	}
	return false
}

// Fingerprint identifies a configuration by content: equal configurations
// always produce the same fingerprint.
func (c NormalizedConfig) Fingerprint() (string, error) {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
