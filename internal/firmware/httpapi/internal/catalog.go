package internal

import "firmgen-server/internal/firmware/domain"

type SensorResponse struct {
	Type        string   `json:"type"`
	RequiresPin bool     `json:"requires_pin"`
	DefaultPin  *uint8   `json:"default_pin,omitempty"`
	PinClass    string   `json:"pin_class"`
	Quantities  []string `json:"quantities"`
}

func FromSensors(sensors []domain.SensorDescriptor) []SensorResponse {
	result := make([]SensorResponse, 0, len(sensors))
	for _, s := range sensors {
		response := SensorResponse{
			Type:        s.Type,
			RequiresPin: s.RequiresPin,
			PinClass:    string(s.PinClass),
			Quantities:  make([]string, 0, len(s.Quantities)),
		}
		if s.DefaultPin != nil {
			pin := uint8(*s.DefaultPin)
			response.DefaultPin = &pin
		}
		for _, q := range s.Quantities {
			response.Quantities = append(response.Quantities, string(q))
		}
		result = append(result, response)
	}
	return result
}

type BusChannelResponse struct {
	Name string `json:"name"`
	SDA  uint8  `json:"sda"`
	SCL  uint8  `json:"scl"`
}

type BoardResponse struct {
	ID                 string               `json:"id"`
	SupportsNetworking bool                 `json:"supports_networking"`
	MaxSensors         int                  `json:"max_sensors"`
	DigitalPins        []uint8              `json:"digital_pins"`
	AnalogPins         []uint8              `json:"analog_pins"`
	BusChannels        []BusChannelResponse `json:"bus_channels"`
}

func FromBoards(boards []domain.BoardProfile) []BoardResponse {
	result := make([]BoardResponse, 0, len(boards))
	for _, b := range boards {
		response := BoardResponse{
			ID:                 b.ID,
			SupportsNetworking: b.SupportsNetworking,
			MaxSensors:         b.MaxSensors,
			DigitalPins:        pinValues(b.DigitalPins),
			AnalogPins:         pinValues(b.AnalogPins),
			BusChannels:        make([]BusChannelResponse, 0, len(b.BusChannels)),
		}
		for _, bus := range b.BusChannels {
			response.BusChannels = append(response.BusChannels, BusChannelResponse{
				Name: bus.Name,
				SDA:  uint8(bus.SDA),
				SCL:  uint8(bus.SCL),
			})
		}
		result = append(result, response)
	}
	return result
}

func pinValues(pins []domain.Pin) []uint8 {
	values := make([]uint8, 0, len(pins))
	for _, p := range pins {
		values = append(values, uint8(p))
	}
	return values
}
