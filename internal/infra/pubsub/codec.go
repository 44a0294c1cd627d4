package pubsub

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/hamba/avro/v2"
)

// Codec matches goka.Codec so the same value serves both transports.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

var _ Codec = (*AvroCodec)(nil)

// AvroCodec encodes values of the prototype's type with a static schema.
// Decode returns a pointer to a fresh value of that type.
type AvroCodec struct {
	schema    avro.Schema
	prototype reflect.Type
}

func NewAvroCodec(schema string, prototype any) (*AvroCodec, error) {
	parsed, err := avro.Parse(schema)
	if err != nil {
		return nil, fmt.Errorf("parsing avro schema: %w", err)
	}

	return &AvroCodec{
		schema:    parsed,
		prototype: baseType(prototype),
	}, nil
}

func (c *AvroCodec) Encode(value any) ([]byte, error) {
	data, err := avro.Marshal(c.schema, value)
	if err != nil {
		return nil, fmt.Errorf("encoding avro: %w", err)
	}

	return data, nil
}

func (c *AvroCodec) Decode(data []byte) (any, error) {
	instance := reflect.New(c.prototype).Interface()
	if err := avro.Unmarshal(c.schema, data, instance); err != nil {
		return nil, fmt.Errorf("decoding avro: %w", err)
	}

	return instance, nil
}

var _ Codec = (*JSONCodec)(nil)

type JSONCodec struct {
	prototype reflect.Type
}

func NewJSONCodec(prototype any) *JSONCodec {
	return &JSONCodec{prototype: baseType(prototype)}
}

func (c *JSONCodec) Encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshaling data: %w", err)
	}

	return data, nil
}

func (c *JSONCodec) Decode(data []byte) (any, error) {
	instance := reflect.New(c.prototype).Interface()
	if err := json.Unmarshal(data, instance); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}

	return instance, nil
}

func baseType(prototype any) reflect.Type {
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
