package domain

import "strconv"

type ID string

func (vo ID) String() string {
	return string(vo)
}

// Pin is a physical pin number as printed in the board pinout.
type Pin uint8

func (p Pin) String() string {
	return strconv.Itoa(int(p))
}

func (p Pin) Ptr() *Pin {
	return &p
}

type StrategyID string

func (s StrategyID) String() string {
	return string(s)
}

type PinClass string

const (
	PinClassDigital PinClass = "digital"
	PinClassAnalog  PinClass = "analog"
	PinClassBus     PinClass = "bus"
)

type Quantity string

const (
	QuantityTemperature Quantity = "temperature"
	QuantityHumidity    Quantity = "humidity"
	QuantityPressure    Quantity = "pressure"
	QuantityGas         Quantity = "gas"
	QuantityLight       Quantity = "light"
)
