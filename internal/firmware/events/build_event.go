package events

import (
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/infra/pubsub"
)

const BuildsTopic pubsub.Topic = "firmgen.builds"

const buildEventSchema = `{
	"type": "record",
	"name": "BuildEvent",
	"namespace": "firmgen",
	"fields": [
		{"name": "build_id", "type": "string"},
		{"name": "fingerprint", "type": "string"},
		{"name": "board_id", "type": "string"},
		{"name": "sensors", "type": {"type": "array", "items": "string"}},
		{"name": "mqtt_enabled", "type": "boolean"},
		{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "trace", "type": {
			"type": "record",
			"name": "TraceHeaders",
			"fields": [
				{"name": "trace_id", "type": "string"},
				{"name": "span_id", "type": "string"},
				{"name": "trace_flags", "type": "string"}
			]
		}}
	]
}`

// BuildEvent announces a stored build. It carries the selection summary, not
// the generated source.
type BuildEvent struct {
	BuildID     string              `avro:"build_id" json:"build_id"`
	Fingerprint string              `avro:"fingerprint" json:"fingerprint"`
	BoardID     string              `avro:"board_id" json:"board_id"`
	Sensors     []string            `avro:"sensors" json:"sensors"`
	MQTTEnabled bool                `avro:"mqtt_enabled" json:"mqtt_enabled"`
	CreatedAt   time.Time           `avro:"created_at" json:"created_at"`
	Trace       pubsub.TraceHeaders `avro:"trace" json:"-"`
}

func NewBuildEventCodec() (*pubsub.AvroCodec, error) {
	return pubsub.NewAvroCodec(buildEventSchema, BuildEvent{})
}

func fromBuildRecord(record domain.BuildRecord) BuildEvent {
	sensors := record.Sensors
	if sensors == nil {
		sensors = []string{}
	}

	return BuildEvent{
		BuildID:     record.ID.String(),
		Fingerprint: record.Fingerprint,
		BoardID:     record.BoardID,
		Sensors:     sensors,
		MQTTEnabled: record.MQTTEnabled,
		CreatedAt:   record.CreatedAt,
	}
}
