package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidTopic   = errors.New("invalid telemetry topic")
	ErrInvalidPayload = errors.New("invalid telemetry payload")
)

var topicRegex = regexp.MustCompile(`^daq/([\w-]+)/sensors$`)

// Sample is one reading set published by generated firmware. Quantities the
// device did not report stay nil.
type Sample struct {
	DeviceID    string    `json:"device_id"`
	ReceivedAt  time.Time `json:"received_at"`
	Temperature *float64  `json:"temperature,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	Pressure    *float64  `json:"pressure,omitempty"`
	Gas         *float64  `json:"gas,omitempty"`
	Light       *float64  `json:"light,omitempty"`
}

func (s Sample) Empty() bool {
	return s.Temperature == nil && s.Humidity == nil && s.Pressure == nil && s.Gas == nil && s.Light == nil
}

// DeviceFromTopic extracts the device id out of daq/<device>/sensors.
func DeviceFromTopic(topic string) (string, error) {
	result := topicRegex.FindStringSubmatch(topic)
	if len(result) < 2 {
		return "", fmt.Errorf("%w: %s", ErrInvalidTopic, topic)
	}
	return result[1], nil
}

// DecodeSample accepts the JSON document generated firmware publishes and the
// msgpack map compact firmware variants send. The device id in the payload
// wins over the one in the topic.
func DecodeSample(topic string, payload []byte, receivedAt time.Time) (Sample, error) {
	deviceID, err := DeviceFromTopic(topic)
	if err != nil {
		return Sample{}, err
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return Sample{}, err
	}

	sample := Sample{
		DeviceID:    deviceID,
		ReceivedAt:  receivedAt.UTC(),
		Temperature: number(fields["temperature"]),
		Humidity:    number(fields["humidity"]),
		Pressure:    number(fields["pressure"]),
		Gas:         number(fields["gas"]),
		Light:       number(fields["light"]),
	}
	if id, ok := fields["device_id"].(string); ok && id != "" {
		sample.DeviceID = id
	}

	return sample, nil
}

func decodeFields(payload []byte) (map[string]any, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}

	fields := make(map[string]any)
	var err error
	if payload[0] == '{' {
		err = json.Unmarshal(payload, &fields)
	} else {
		err = msgpack.Unmarshal(payload, &fields)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}

	return fields, nil
}

func number(value any) *float64 {
	var result float64
	switch v := value.(type) {
	case float64:
		result = v
	case float32:
		result = float64(v)
	case int8:
		result = float64(v)
	case int16:
		result = float64(v)
	case int32:
		result = float64(v)
	case int64:
		result = float64(v)
	case uint8:
		result = float64(v)
	case uint16:
		result = float64(v)
	case uint32:
		result = float64(v)
	case uint64:
		result = float64(v)
	default:
		return nil
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}
	return &result
}
