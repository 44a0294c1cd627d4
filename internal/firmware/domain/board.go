package domain

import "slices"

type BusChannel struct {
	Name string
	SDA  Pin
	SCL  Pin
}

func (b BusChannel) Pins() []Pin {
	return []Pin{b.SDA, b.SCL}
}

// Platform holds the PlatformIO coordinates used to build for a board.
type Platform struct {
	Env         string
	Platform    string
	Board       string
	Framework   string
	MonitorBaud int
	// Options are extra platformio.ini lines emitted verbatim for the env.
	Options []string
}

type BoardProfile struct {
	ID                 string
	DigitalPins        []Pin
	AnalogPins         []Pin
	BusChannels        []BusChannel
	MaxSensors         int
	SupportsNetworking bool
	StrategyID         StrategyID
	Platform           Platform
}

// Clone returns a copy that shares no memory with b.
func (b BoardProfile) Clone() BoardProfile {
	b.DigitalPins = slices.Clone(b.DigitalPins)
	b.AnalogPins = slices.Clone(b.AnalogPins)
	b.BusChannels = slices.Clone(b.BusChannels)
	b.Platform.Options = slices.Clone(b.Platform.Options)
	return b
}

// HasPin reports whether pin belongs to the board's pin set for class.
func (b BoardProfile) HasPin(class PinClass, pin Pin) bool {
	switch class {
	case PinClassDigital:
		return slices.Contains(b.DigitalPins, pin)
	case PinClassAnalog:
		return slices.Contains(b.AnalogPins, pin)
	case PinClassBus:
		for _, channel := range b.BusChannels {
			if slices.Contains(channel.Pins(), pin) {
				return true
			}
		}
	}
	return false
}

func (b BoardProfile) PrimaryBus() (BusChannel, bool) {
	if len(b.BusChannels) == 0 {
		return BusChannel{}, false
	}
	return b.BusChannels[0], true
}
